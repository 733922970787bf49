package services

import (
	"errors"
	"log"

	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// EnrollmentService decides content access and owns the enroll lifecycle
type EnrollmentService struct {
	db *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{db: db}
}

// CheckEnrollment reports whether an enrollment exists for the pair. No side effects.
func (s *EnrollmentService) CheckEnrollment(userID, courseID uint) (bool, error) {
	var count int64
	err := s.db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Count(&count).Error
	if err != nil {
		log.Printf("Error checking enrollment for user %d course %d: %v", userID, courseID, err)
		return false, err
	}
	return count > 0, nil
}

// Enroll creates an enrollment with zero progress. Priced courses must
// present the reference of a captured payment session owned by the user.
func (s *EnrollmentService) Enroll(userID, courseID uint, paymentRef string) (*courseModels.Enrollment, error) {
	var course courseModels.Course
	if err := s.db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	if !course.IsPublished {
		return nil, models.ErrUnavailable
	}

	// Duplicate attempts are rejected, not silently accepted
	var existing courseModels.Enrollment
	err := s.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error
	if err == nil {
		return nil, models.ErrConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if course.Price > 0 {
		if err := s.verifyPayment(userID, courseID, paymentRef); err != nil {
			return nil, err
		}
	}

	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   "ENROLLED",
		Progress: 0,
	}

	tx := s.db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		// The unique index is the backstop when two enroll calls race
		// past the check above; the loser still gets a Conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrConflict
		}
		log.Printf("Error creating enrollment for user %d course %d: %v", userID, courseID, err)
		return nil, err
	}
	tx.Commit()

	return &enrollment, nil
}

func (s *EnrollmentService) verifyPayment(userID, courseID uint, paymentRef string) error {
	if paymentRef == "" {
		return models.ErrInvalidInput
	}

	var session courseModels.PaymentSession
	err := s.db.Where("reference = ? AND user_id = ? AND course_id = ? AND is_deleted = ?",
		paymentRef, userID, courseID, false).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrInvalidInput
		}
		return err
	}

	if session.Status != courseModels.PaymentCaptured {
		return models.ErrUnavailable
	}
	return nil
}

// IsLessonAccessible reports whether a lesson is viewable. A zero userID
// means an anonymous caller, who can only view free lessons.
func (s *EnrollmentService) IsLessonAccessible(userID uint, lesson *courseModels.Lesson, enrolled bool) bool {
	if lesson.IsFree {
		return true
	}
	return userID != 0 && enrolled
}
