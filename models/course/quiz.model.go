package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz belongs to a lesson and is graded against a passing percentage
type Quiz struct {
	gorm.Model
	LessonID     uint    `json:"lesson_id" gorm:"index;not null"`
	Title        string  `json:"title"`
	Description  string  `json:"description" gorm:"type:text"`
	PassingScore float64 `json:"passing_score" gorm:"default:70"` // percentage
	IsDeleted    bool    `gorm:"default:false"`
}

// Question holds an ordered option list as JSON. CorrectAnswer is never
// serialized; it only leaves the server inside post-submission results.
type Question struct {
	gorm.Model
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	Prompt        string         `json:"prompt" gorm:"type:text"`
	Type          string         `json:"type" gorm:"default:'MULTIPLE_CHOICE'"`
	Options       datatypes.JSON `json:"options"`
	CorrectAnswer string         `json:"-"`
	Points        int            `json:"points" gorm:"default:1"`
	Position      int            `json:"position" gorm:"default:0"`
	Explanation   string         `json:"explanation" gorm:"type:text"`
	IsDeleted     bool           `gorm:"default:false"`
}

// QuizAttempt is append-only; every submission creates a new row
type QuizAttempt struct {
	gorm.Model
	UserID   uint           `json:"user_id" gorm:"index;not null"`
	QuizID   uint           `json:"quiz_id" gorm:"index;not null"`
	Answers  datatypes.JSON `json:"answers"` // submitted questionID -> answer map
	Score    float64        `json:"score"`   // percentage
	IsPassed bool           `json:"is_passed" gorm:"default:false"`
}
