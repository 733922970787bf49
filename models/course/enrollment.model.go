package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a user's enrollment in a course with progress.
// The composite unique index is the backstop against two concurrent
// enroll calls slipping past the application-level duplicate check.
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID    uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	Status      string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	Progress    float64    `json:"progress" gorm:"default:0"`        // Completion percentage (0-100)
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

// LessonProgress records per-lesson completion, upserted on toggle
type LessonProgress struct {
	gorm.Model
	UserID      uint `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_lesson"`
	LessonID    uint `json:"lesson_id" gorm:"not null;uniqueIndex:idx_progress_user_lesson"`
	IsCompleted bool `json:"is_completed" gorm:"default:false"`
}
