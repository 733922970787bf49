package services

import (
	"encoding/json"
	"errors"
	"log"

	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizService scores submissions and persists attempts. Correct answers
// never leave the server before an attempt is submitted.
type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

// QuestionView is a question stripped for quiz taking
type QuestionView struct {
	ID       uint           `json:"id"`
	Prompt   string         `json:"prompt"`
	Type     string         `json:"type"`
	Options  datatypes.JSON `json:"options"`
	Points   int            `json:"points"`
	Position int            `json:"position"`
}

// QuizView bundles a quiz with its answer-stripped questions
type QuizView struct {
	Quiz      courseModels.Quiz `json:"quiz"`
	Questions []QuestionView    `json:"questions"`
}

// QuestionResult is the post-submission per-question breakdown
type QuestionResult struct {
	QuestionID    uint   `json:"question_id"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Points        int    `json:"points"`
	Explanation   string `json:"explanation"`
}

// AttemptResult bundles the persisted attempt with the breakdown
type AttemptResult struct {
	Attempt      courseModels.QuizAttempt `json:"attempt"`
	EarnedPoints int                      `json:"earned_points"`
	TotalPoints  int                      `json:"total_points"`
	PassingScore float64                  `json:"passing_score"`
	Results      []QuestionResult         `json:"results"`
}

// GetQuizForTaking returns the quiz with questions ordered by position
// and stripped of correct answers. Requires enrollment in the owning course.
func (s *QuizService) GetQuizForTaking(quizID, userID uint) (*QuizView, error) {
	quiz, courseID, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}

	if err := s.requireEnrollment(userID, courseID); err != nil {
		return nil, err
	}

	questions, err := s.loadQuestions(quizID)
	if err != nil {
		return nil, err
	}

	views := make([]QuestionView, len(questions))
	for i, q := range questions {
		views[i] = QuestionView{
			ID:       q.ID,
			Prompt:   q.Prompt,
			Type:     q.Type,
			Options:  q.Options,
			Points:   q.Points,
			Position: q.Position,
		}
	}

	return &QuizView{Quiz: *quiz, Questions: views}, nil
}

// SubmitAttempt grades the answer map by exact match, persists a new
// attempt and reveals correct answers in the returned breakdown.
// Attempts are append-only; retakes create new rows.
func (s *QuizService) SubmitAttempt(quizID, userID uint, answers map[uint]string) (*AttemptResult, error) {
	if answers == nil {
		return nil, models.ErrInvalidInput
	}

	quiz, courseID, err := s.loadQuiz(quizID)
	if err != nil {
		return nil, err
	}

	if err := s.requireEnrollment(userID, courseID); err != nil {
		return nil, err
	}

	questions, err := s.loadQuestions(quizID)
	if err != nil {
		return nil, err
	}

	totalPoints := 0
	earnedPoints := 0
	results := make([]QuestionResult, 0, len(questions))

	for _, question := range questions {
		totalPoints += question.Points
		userAnswer := answers[question.ID]

		// Exact match, case sensitive, no partial credit
		isCorrect := userAnswer == question.CorrectAnswer
		if isCorrect {
			earnedPoints += question.Points
		}

		results = append(results, QuestionResult{
			QuestionID:    question.ID,
			UserAnswer:    userAnswer,
			CorrectAnswer: question.CorrectAnswer,
			IsCorrect:     isCorrect,
			Points:        question.Points,
			Explanation:   question.Explanation,
		})
	}

	scorePercentage := float64(0)
	if totalPoints > 0 {
		scorePercentage = float64(earnedPoints) / float64(totalPoints) * 100
	}
	isPassed := scorePercentage >= quiz.PassingScore

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, models.ErrInvalidInput
	}

	attempt := courseModels.QuizAttempt{
		UserID:   userID,
		QuizID:   quizID,
		Answers:  datatypes.JSON(answersJSON),
		Score:    scorePercentage,
		IsPassed: isPassed,
	}

	if err := s.db.Create(&attempt).Error; err != nil {
		log.Printf("Error saving quiz attempt for user %d quiz %d: %v", userID, quizID, err)
		return nil, err
	}

	return &AttemptResult{
		Attempt:      attempt,
		EarnedPoints: earnedPoints,
		TotalPoints:  totalPoints,
		PassingScore: quiz.PassingScore,
		Results:      results,
	}, nil
}

// ListAttempts returns the full attempt history, newest first
func (s *QuizService) ListAttempts(quizID, userID uint) ([]courseModels.QuizAttempt, error) {
	if _, _, err := s.loadQuiz(quizID); err != nil {
		return nil, err
	}

	var attempts []courseModels.QuizAttempt
	err := s.db.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at desc").Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

// loadQuiz resolves a quiz and the course that owns it via the lesson's chapter
func (s *QuizService) loadQuiz(quizID uint) (*courseModels.Quiz, uint, error) {
	var quiz courseModels.Quiz
	if err := s.db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, models.ErrNotFound
		}
		return nil, 0, err
	}

	var lesson courseModels.Lesson
	if err := s.db.Where("id = ? AND is_deleted = ?", quiz.LessonID, false).First(&lesson).Error; err != nil {
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

	return &quiz, chapter.CourseID, nil
}

func (s *QuizService) requireEnrollment(userID, courseID uint) error {
	var count int64
	err := s.db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return models.ErrForbidden
	}
	return nil
}

func (s *QuizService) loadQuestions(quizID uint) ([]courseModels.Question, error) {
	var questions []courseModels.Question
	err := s.db.Where("quiz_id = ? AND is_deleted = ?", quizID, false).
		Order("position asc").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}
