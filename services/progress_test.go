package services

import (
	"testing"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLessonCompletion_HalfCourse(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db)

	course := seedCourse(t, db, 0, true)
	chapter := seedChapter(t, db, course.ID, 1, true)
	lessons := make([]courseModels.Lesson, 4)
	for i := range lessons {
		lessons[i] = seedLesson(t, db, chapter.ID, i+1, true, false)
	}
	seedEnrollment(t, db, 1, course.ID)

	_, pct, err := svc.SetLessonCompletion(1, lessons[0].ID, true)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, pct, 0.001)

	_, pct, err = svc.SetLessonCompletion(1, lessons[1].ID, true)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, pct, 0.001)

	// Read path agrees with the value just written
	got, err := svc.GetProgress(1, course.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, got, 0.001)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 1, course.ID).First(&enrollment).Error)
	assert.InDelta(t, 50.0, enrollment.Progress, 0.001)
	assert.Equal(t, "IN_PROGRESS", enrollment.Status)
}

func TestSetLessonCompletion_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db)

	course := seedCourse(t, db, 0, true)
	chapter := seedChapter(t, db, course.ID, 1, true)
	lesson := seedLesson(t, db, chapter.ID, 1, true, false)
	seedLesson(t, db, chapter.ID, 2, true, false)
	seedEnrollment(t, db, 1, course.ID)

	_, first, err := svc.SetLessonCompletion(1, lesson.ID, true)
	require.NoError(t, err)

	_, second, err := svc.SetLessonCompletion(1, lesson.ID, true)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var count int64
	db.Model(&courseModels.LessonProgress{}).Where("user_id = ? AND lesson_id = ?", 1, lesson.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSetLessonCompletion_ToggleBack(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db)

	course := seedCourse(t, db, 0, true)
	chapter := seedChapter(t, db, course.ID, 1, true)
	lesson := seedLesson(t, db, chapter.ID, 1, true, false)
	seedEnrollment(t, db, 1, course.ID)

	_, pct, err := svc.SetLessonCompletion(1, lesson.ID, true)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, pct, 0.001)

	// Progress is not monotonic; unchecking is allowed
	_, pct, err = svc.SetLessonCompletion(1, lesson.ID, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, pct, 0.001)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 1, course.ID).First(&enrollment).Error)
	assert.Equal(t, "ENROLLED", enrollment.Status)
}

func TestSetLessonCompletion_CompletesCourse(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db)

	course := seedCourse(t, db, 0, true)
	chapter := seedChapter(t, db, course.ID, 1, true)
	lesson := seedLesson(t, db, chapter.ID, 1, true, false)
	seedEnrollment(t, db, 1, course.ID)

	_, pct, err := svc.SetLessonCompletion(1, lesson.ID, true)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, pct, 0.001)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 1, course.ID).First(&enrollment).Error)
	assert.Equal(t, "COMPLETED", enrollment.Status)
	assert.NotNil(t, enrollment.CompletedAt)
}

func TestSetLessonCompletion_CompletedAtIsCompletionTime(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db)

	course := seedCourse(t, db, 0, true)
	chapter := seedChapter(t, db, course.ID, 1, true)
	lesson := seedLesson(t, db, chapter.ID, 1, true, false)
	enrollment := seedEnrollment(t, db, 1, course.ID)

	// An enrollment created long before completion must not leak its
	// old updated_at into the completion timestamp
	backdated := time.Now().Add(-48 * time.Hour)
	require.NoError(t, db.Model(&enrollment).UpdateColumn("updated_at", backdated).Error)

	_, pct, err := svc.SetLessonCompletion(1, lesson.ID, true)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, pct, 0.001)

	var stored courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 1, course.ID).First(&stored).Error)
	require.NotNil(t, stored.CompletedAt)
	assert.WithinDuration(t, time.Now(), *stored.CompletedAt, 5*time.Second)
}

func TestSetLessonCompletion_LessonNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db)

	_, _, err := svc.SetLessonCompletion(1, 9999, true)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSetLessonCompletion_UnpublishedLessonNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db)

	course := seedCourse(t, db, 0, true)
	chapter := seedChapter(t, db, course.ID, 1, true)
	hidden := seedLesson(t, db, chapter.ID, 1, false, false)

	_, _, err := svc.SetLessonCompletion(1, hidden.ID, true)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSetLessonCompletion_NoEnrollmentStillTracks(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db)

	course := seedCourse(t, db, 0, true)
	chapter := seedChapter(t, db, course.ID, 1, true)
	lesson := seedLesson(t, db, chapter.ID, 1, true, true)

	// No enrollment: the toggle succeeds but nothing is auto-created
	progress, pct, err := svc.SetLessonCompletion(1, lesson.ID, true)
	require.NoError(t, err)
	assert.True(t, progress.IsCompleted)
	assert.InDelta(t, 100.0, pct, 0.001)

	var count int64
	db.Model(&courseModels.Enrollment{}).Where("course_id = ?", course.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetProgress_EmptyCourseIsZero(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db)

	course := seedCourse(t, db, 0, true)
	seedEnrollment(t, db, 1, course.ID)

	pct, err := svc.GetProgress(1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), pct)
}

func TestGetProgress_CountsPublishedOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProgressService(db)

	course := seedCourse(t, db, 0, true)
	chapter := seedChapter(t, db, course.ID, 1, true)
	visible := seedLesson(t, db, chapter.ID, 1, true, false)
	seedLesson(t, db, chapter.ID, 2, true, false)
	seedLesson(t, db, chapter.ID, 3, false, false) // unpublished, excluded

	// Lessons under an unpublished chapter are excluded as well
	hiddenChapter := seedChapter(t, db, course.ID, 2, false)
	seedLesson(t, db, hiddenChapter.ID, 1, true, false)

	seedEnrollment(t, db, 1, course.ID)

	_, _, err := svc.SetLessonCompletion(1, visible.ID, true)
	require.NoError(t, err)

	pct, err := svc.GetProgress(1, course.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, pct, 0.001)
}
