package course

import "gorm.io/gorm"

// Course represents a marketplace course owned by an instructor
type Course struct {
	gorm.Model
	Title        string  `json:"title"`
	Description  string  `json:"description" gorm:"type:text"`
	Price        float64 `json:"price" gorm:"default:0"` // 0 means free
	ThumbnailURL string  `json:"thumbnail_url"`
	CategoryID   uint    `json:"category_id" gorm:"index"`
	InstructorID uint    `json:"instructor_id" gorm:"index;not null"`
	IsPublished  bool    `json:"is_published" gorm:"default:false"`
	IsDeleted    bool    `gorm:"default:false"`
}

// Chapter is a section within a course, ordered by position.
// IsFree here is catalog metadata only; lesson-level IsFree is what
// gates access.
type Chapter struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:text"`
	Position    int    `json:"position" gorm:"default:0"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsFree      bool   `json:"is_free" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// Lesson is a playable unit within a chapter
type Lesson struct {
	gorm.Model
	ChapterID   uint   `json:"chapter_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:text"`
	VideoURL    string `json:"video_url"`
	Duration    int    `json:"duration" gorm:"default:0"` // seconds
	Position    int    `json:"position" gorm:"default:0"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsFree      bool   `json:"is_free" gorm:"default:false"` // viewable without enrollment
	IsDeleted   bool   `gorm:"default:false"`
}
