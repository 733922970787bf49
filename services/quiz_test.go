package services

import (
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func setupQuizFixture(t *testing.T, svc *QuizService) (courseModels.Course, courseModels.Quiz, []courseModels.Question) {
	t.Helper()
	db := svc.db

	course := seedCourse(t, db, 0, true)
	chapter := seedChapter(t, db, course.ID, 1, true)
	lesson := seedLesson(t, db, chapter.ID, 1, true, false)

	quiz := courseModels.Quiz{
		LessonID:     lesson.ID,
		Title:        "Checkpoint",
		PassingScore: 60,
	}
	require.NoError(t, db.Create(&quiz).Error)

	questions := []courseModels.Question{
		{
			QuizID:        quiz.ID,
			Prompt:        "What does := do?",
			Options:       datatypes.JSON([]byte(`["declares and assigns","compares","dereferences"]`)),
			CorrectAnswer: "declares and assigns",
			Points:        5,
			Position:      1,
			Explanation:   "Short variable declaration.",
		},
		{
			QuizID:        quiz.ID,
			Prompt:        "Which keyword starts a goroutine?",
			Options:       datatypes.JSON([]byte(`["go","run","spawn"]`)),
			CorrectAnswer: "go",
			Points:        10,
			Position:      2,
		},
	}
	for i := range questions {
		require.NoError(t, db.Create(&questions[i]).Error)
	}

	return course, quiz, questions
}

func TestGetQuizForTaking_StripsAnswers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewQuizService(db)

	course, quiz, questions := setupQuizFixture(t, svc)
	seedEnrollment(t, db, 1, course.ID)

	view, err := svc.GetQuizForTaking(quiz.ID, 1)
	require.NoError(t, err)
	require.Len(t, view.Questions, 2)

	// Ordered by position, answer material withheld
	assert.Equal(t, questions[0].ID, view.Questions[0].ID)
	assert.Equal(t, questions[1].ID, view.Questions[1].ID)
	assert.Equal(t, 5, view.Questions[0].Points)
	assert.Equal(t, 10, view.Questions[1].Points)
}

func TestGetQuizForTaking_RequiresEnrollment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewQuizService(db)

	_, quiz, _ := setupQuizFixture(t, svc)

	_, err := svc.GetQuizForTaking(quiz.ID, 1)
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestGetQuizForTaking_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewQuizService(db)

	_, err := svc.GetQuizForTaking(4242, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSubmitAttempt_PartialScore(t *testing.T) {
	db := setupTestDB(t)
	svc := NewQuizService(db)

	course, quiz, questions := setupQuizFixture(t, svc)
	seedEnrollment(t, db, 1, course.ID)

	// First question right, second wrong: 5 of 15 points
	result, err := svc.SubmitAttempt(quiz.ID, 1, map[uint]string{
		questions[0].ID: "declares and assigns",
		questions[1].ID: "spawn",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, result.EarnedPoints)
	assert.Equal(t, 15, result.TotalPoints)
	assert.InDelta(t, 33.333, result.Attempt.Score, 0.01)
	assert.False(t, result.Attempt.IsPassed)

	require.Len(t, result.Results, 2)
	assert.True(t, result.Results[0].IsCorrect)
	assert.False(t, result.Results[1].IsCorrect)
	// Correct answers are revealed only after submission
	assert.Equal(t, "go", result.Results[1].CorrectAnswer)
	assert.Equal(t, "Short variable declaration.", result.Results[0].Explanation)
}

func TestSubmitAttempt_Deterministic(t *testing.T) {
	db := setupTestDB(t)
	svc := NewQuizService(db)

	course, quiz, questions := setupQuizFixture(t, svc)
	seedEnrollment(t, db, 1, course.ID)

	answers := map[uint]string{questions[0].ID: "declares and assigns"}

	first, err := svc.SubmitAttempt(quiz.ID, 1, answers)
	require.NoError(t, err)
	second, err := svc.SubmitAttempt(quiz.ID, 1, answers)
	require.NoError(t, err)

	assert.Equal(t, first.Attempt.Score, second.Attempt.Score)
}

func TestSubmitAttempt_PassingScore(t *testing.T) {
	db := setupTestDB(t)
	svc := NewQuizService(db)

	course, quiz, questions := setupQuizFixture(t, svc)
	seedEnrollment(t, db, 1, course.ID)

	result, err := svc.SubmitAttempt(quiz.ID, 1, map[uint]string{
		questions[0].ID: "declares and assigns",
		questions[1].ID: "go",
	})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, result.Attempt.Score, 0.001)
	assert.True(t, result.Attempt.IsPassed)
}

func TestSubmitAttempt_AppendOnlyHistory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewQuizService(db)

	course, quiz, questions := setupQuizFixture(t, svc)
	seedEnrollment(t, db, 1, course.ID)

	_, err := svc.SubmitAttempt(quiz.ID, 1, map[uint]string{questions[0].ID: "declares and assigns"})
	require.NoError(t, err)
	_, err = svc.SubmitAttempt(quiz.ID, 1, map[uint]string{questions[1].ID: "go"})
	require.NoError(t, err)

	attempts, err := svc.ListAttempts(quiz.ID, 1)
	require.NoError(t, err)
	assert.Len(t, attempts, 2)
}

func TestSubmitAttempt_EmptyAnswersGradeToZero(t *testing.T) {
	db := setupTestDB(t)
	svc := NewQuizService(db)

	course, quiz, _ := setupQuizFixture(t, svc)
	seedEnrollment(t, db, 1, course.ID)

	// An empty map is a valid all-blank submission, not bad input
	result, err := svc.SubmitAttempt(quiz.ID, 1, map[uint]string{})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, result.Attempt.Score, 0.001)
	assert.False(t, result.Attempt.IsPassed)
}

func TestSubmitAttempt_InvalidInput(t *testing.T) {
	db := setupTestDB(t)
	svc := NewQuizService(db)

	course, quiz, _ := setupQuizFixture(t, svc)
	seedEnrollment(t, db, 1, course.ID)

	_, err := svc.SubmitAttempt(quiz.ID, 1, nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestSubmitAttempt_RequiresEnrollment(t *testing.T) {
	db := setupTestDB(t)
	svc := NewQuizService(db)

	_, quiz, questions := setupQuizFixture(t, svc)

	_, err := svc.SubmitAttempt(quiz.ID, 7, map[uint]string{questions[0].ID: "go"})
	assert.ErrorIs(t, err, models.ErrForbidden)
}
