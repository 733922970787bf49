package services

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"lms/config"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{
		JWTKey:            "test-secret",
		SaltRound:         4,
		PaymentSessionTTL: 60,
	}
	os.Exit(m.Run())
}

// setupTestDB opens a fresh in-memory database per test. The DSN is
// keyed by test name so parallel packages never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to connect test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Review{},
		&courseModels.Course{},
		&courseModels.Chapter{},
		&courseModels.Lesson{},
		&courseModels.Enrollment{},
		&courseModels.LessonProgress{},
		&courseModels.Quiz{},
		&courseModels.Question{},
		&courseModels.QuizAttempt{},
		&courseModels.PaymentSession{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedCourse(t *testing.T, db *gorm.DB, price float64, published bool) courseModels.Course {
	t.Helper()

	course := courseModels.Course{
		Title:        "Go from Zero",
		Price:        price,
		InstructorID: 99,
		IsPublished:  published,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func seedChapter(t *testing.T, db *gorm.DB, courseID uint, position int, published bool) courseModels.Chapter {
	t.Helper()

	chapter := courseModels.Chapter{
		CourseID:    courseID,
		Title:       fmt.Sprintf("Chapter %d", position),
		Position:    position,
		IsPublished: published,
	}
	require.NoError(t, db.Create(&chapter).Error)
	return chapter
}

func seedLesson(t *testing.T, db *gorm.DB, chapterID uint, position int, published, free bool) courseModels.Lesson {
	t.Helper()

	lesson := courseModels.Lesson{
		ChapterID:   chapterID,
		Title:       fmt.Sprintf("Lesson %d", position),
		Position:    position,
		IsPublished: published,
		IsFree:      free,
	}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}

func seedEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) courseModels.Enrollment {
	t.Helper()

	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   "ENROLLED",
	}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}
