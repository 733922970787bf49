package services

import (
	"errors"
	"log"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// ProgressService maintains per-lesson completion and the derived course
// progress stored on the enrollment row. Both the completion-toggle write
// path and GetProgress go through the same counting rule: published
// lessons under published chapters only.
type ProgressService struct {
	db *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

// SetLessonCompletion upserts the completion flag for (user, lesson) and
// recomputes the owning course's progress. Returns the progress record
// and the fresh course percentage.
func (s *ProgressService) SetLessonCompletion(userID, lessonID uint, isCompleted bool) (*courseModels.LessonProgress, float64, error) {
	var lesson courseModels.Lesson
	if err := s.db.Where("id = ? AND is_deleted = ? AND is_published = ?", lessonID, false, true).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, models.ErrNotFound
		}
		return nil, 0, err
	}

	var chapter courseModels.Chapter
	if err := s.db.Where("id = ? AND is_deleted = ?", lesson.ChapterID, false).First(&chapter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, models.ErrNotFound
		}
		return nil, 0, err
	}

	// Upsert: last write wins on the boolean flag
	var progress courseModels.LessonProgress
	err := s.db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		progress = courseModels.LessonProgress{
			UserID:      userID,
			LessonID:    lessonID,
			IsCompleted: isCompleted,
		}
		if err := s.db.Create(&progress).Error; err != nil {
			log.Printf("Error creating lesson progress for user %d lesson %d: %v", userID, lessonID, err)
			return nil, 0, err
		}
	case err != nil:
		return nil, 0, err
	default:
		progress.IsCompleted = isCompleted
		if err := s.db.Save(&progress).Error; err != nil {
			log.Printf("Error updating lesson progress for user %d lesson %d: %v", userID, lessonID, err)
			return nil, 0, err
		}
	}

	percentage := s.refreshEnrollmentProgress(userID, chapter.CourseID)

	return &progress, percentage, nil
}

// GetProgress recounts the course percentage from scratch through the
// same rule the write path uses, so the two can never disagree.
func (s *ProgressService) GetProgress(userID, courseID uint) (float64, error) {
	pct, err := s.courseProgress(userID, courseID)
	if err != nil {
		return 0, err
	}
	return pct, nil
}

// courseProgress is the canonical recomputation: published lessons under
// published chapters against the user's completed rows in that same set.
// An empty course yields 0, never a division error.
func (s *ProgressService) courseProgress(userID, courseID uint) (float64, error) {
	var total int64
	err := s.db.Model(&courseModels.Lesson{}).
		Joins("JOIN chapters ON chapters.id = lessons.chapter_id").
		Where("chapters.course_id = ? AND chapters.is_published = ? AND chapters.is_deleted = ?", courseID, true, false).
		Where("lessons.is_published = ? AND lessons.is_deleted = ?", true, false).
		Count(&total).Error
	if err != nil {
		return 0, err
	}

	if total == 0 {
		return 0, nil
	}

	var completed int64
	err = s.db.Model(&courseModels.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Joins("JOIN chapters ON chapters.id = lessons.chapter_id").
		Where("lesson_progresses.user_id = ? AND lesson_progresses.is_completed = ?", userID, true).
		Where("chapters.course_id = ? AND chapters.is_published = ? AND chapters.is_deleted = ?", courseID, true, false).
		Where("lessons.is_published = ? AND lessons.is_deleted = ?", true, false).
		Count(&completed).Error
	if err != nil {
		return 0, err
	}

	return float64(completed) / float64(total) * 100, nil
}

// refreshEnrollmentProgress writes the recomputed percentage onto the
// enrollment row. Progress tracking never creates an enrollment as a
// side effect: without one the write is skipped and only logged.
func (s *ProgressService) refreshEnrollmentProgress(userID, courseID uint) float64 {
	percentage, err := s.courseProgress(userID, courseID)
	if err != nil {
		log.Printf("Error recomputing progress for user %d course %d: %v", userID, courseID, err)
		return 0
	}

	var enrollment courseModels.Enrollment
	if err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		log.Printf("Skipping progress write for user %d course %d: no enrollment", userID, courseID)
		return percentage
	}

	enrollment.Progress = percentage

	if percentage >= 100 {
		enrollment.Status = "COMPLETED"
		completedAt := time.Now()
		enrollment.CompletedAt = &completedAt
	} else if percentage > 0 {
		enrollment.Status = "IN_PROGRESS"
	} else {
		enrollment.Status = "ENROLLED"
	}

	if err := s.db.Save(&enrollment).Error; err != nil {
		log.Printf("Error saving enrollment progress for user %d course %d: %v", userID, courseID, err)
	}

	return percentage
}
