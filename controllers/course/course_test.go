package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestEnrollInCourse_FreeCourse(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := signupUser(t, db, models.RoleStudent)

	course, _ := seedPublishedCourse(t, db, 0)
	path := fmt.Sprintf("/course/%d/enroll", course.ID)

	status, envelope := request(t, app, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, envelope["status"])

	// Second enrollment attempt is rejected
	status, envelope = request(t, app, http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, false, envelope["status"])
}

func TestEnrollInCourse_RequiresAuth(t *testing.T) {
	app, db := setupTestApp(t)
	course, _ := seedPublishedCourse(t, db, 0)

	status, _ := request(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestEnrollInCourse_PricedNeedsCapturedPayment(t *testing.T) {
	app, db := setupTestApp(t)
	user, token := signupUser(t, db, models.RoleStudent)

	course, _ := seedPublishedCourse(t, db, 49.99)
	path := fmt.Sprintf("/course/%d/enroll", course.ID)

	// No payment reference
	status, _ := request(t, app, http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	session := courseModels.PaymentSession{
		UserID:    user.ID,
		CourseID:  course.ID,
		Amount:    course.Price,
		Reference: "ref-captured",
		Status:    courseModels.PaymentCaptured,
	}
	require.NoError(t, db.Create(&session).Error)

	status, envelope := request(t, app, http.MethodPost, path, token, map[string]string{
		"payment_reference": "ref-captured",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, envelope["status"])
}

func TestCourseList_PublishedOnly(t *testing.T) {
	app, db := setupTestApp(t)

	seedPublishedCourse(t, db, 0)
	draft := courseModels.Course{Title: "Unfinished Draft"}
	require.NoError(t, db.Create(&draft).Error)

	status, envelope := request(t, app, http.MethodGet, "/course/list", "", nil)
	require.Equal(t, http.StatusOK, status)

	data := dataOf(t, envelope)
	courses := data["courses"].([]interface{})
	assert.Len(t, courses, 1)
}

func TestLessonDetail_Gating(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := signupUser(t, db, models.RoleStudent)

	course, lessons := seedPublishedCourse(t, db, 0)
	freePath := fmt.Sprintf("/course/%d/lesson/%d", course.ID, lessons[0].ID)
	paidPath := fmt.Sprintf("/course/%d/lesson/%d", course.ID, lessons[1].ID)

	// Free lesson is viewable anonymously
	status, _ := request(t, app, http.MethodGet, freePath, "", nil)
	assert.Equal(t, http.StatusOK, status)

	// Gated lesson is not, even with an identity
	status, _ = request(t, app, http.MethodGet, paidPath, "", nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = request(t, app, http.MethodGet, paidPath, token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Enrollment unlocks it
	status, _ = request(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = request(t, app, http.MethodGet, paidPath, token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestMarkLessonComplete_ProgressRoundTrip(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := signupUser(t, db, models.RoleStudent)

	course, lessons := seedPublishedCourse(t, db, 0)

	status, _ := request(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	completePath := fmt.Sprintf("/course/%d/lesson/%d/complete", course.ID, lessons[0].ID)
	status, envelope := request(t, app, http.MethodPost, completePath, token, map[string]bool{"is_completed": true})
	require.Equal(t, http.StatusOK, status)

	data := dataOf(t, envelope)
	assert.InDelta(t, 50.0, data["course_progress"].(float64), 0.01)

	status, envelope = request(t, app, http.MethodGet, fmt.Sprintf("/course/%d/progress", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.InDelta(t, 50.0, dataOf(t, envelope)["progress"].(float64), 0.01)
}

func TestMarkLessonComplete_LessonOutsideCourse(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := signupUser(t, db, models.RoleStudent)

	course, _ := seedPublishedCourse(t, db, 0)
	other, otherLessons := seedPublishedCourse(t, db, 0)

	status, _ := request(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = request(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", other.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	// Completing another course's lesson through this course's URL is a 404
	path := fmt.Sprintf("/course/%d/lesson/%d/complete", course.ID, otherLessons[0].ID)
	status, _ = request(t, app, http.MethodPost, path, token, map[string]bool{"is_completed": true})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSubmitQuiz_OverHTTP(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := signupUser(t, db, models.RoleStudent)

	course, lessons := seedPublishedCourse(t, db, 0)

	quiz := courseModels.Quiz{LessonID: lessons[0].ID, Title: "Checkpoint", PassingScore: 60}
	require.NoError(t, db.Create(&quiz).Error)
	question := courseModels.Question{
		QuizID:        quiz.ID,
		Prompt:        "Pick A",
		Options:       datatypes.JSON([]byte(`["A","B"]`)),
		CorrectAnswer: "A",
		Points:        10,
		Position:      1,
	}
	require.NoError(t, db.Create(&question).Error)

	status, _ := request(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	// Taking view never exposes the correct answer
	status, envelope := request(t, app, http.MethodGet, fmt.Sprintf("/quiz/%d", quiz.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	questions := dataOf(t, envelope)["questions"].([]interface{})
	require.Len(t, questions, 1)
	_, leaked := questions[0].(map[string]interface{})["correct_answer"]
	assert.False(t, leaked)

	submitBody := map[string]map[string]string{
		"answers": {fmt.Sprint(question.ID): "A"},
	}
	status, envelope = request(t, app, http.MethodPost, fmt.Sprintf("/quiz/%d/submit", quiz.ID), token, submitBody)
	require.Equal(t, http.StatusOK, status)

	data := dataOf(t, envelope)
	attempt := data["attempt"].(map[string]interface{})
	assert.InDelta(t, 100.0, attempt["score"].(float64), 0.001)
	assert.Equal(t, true, attempt["is_passed"])

	status, envelope = request(t, app, http.MethodGet, fmt.Sprintf("/quiz/%d/attempts", quiz.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	attempts := dataOf(t, envelope)["attempts"].([]interface{})
	assert.Len(t, attempts, 1)
}

func TestInstructorRoutes_RoleGate(t *testing.T) {
	app, db := setupTestApp(t)
	_, studentToken := signupUser(t, db, models.RoleStudent)
	_, instructorToken := signupUser(t, db, models.RoleInstructor)

	body := map[string]interface{}{
		"title":       "Distributed Systems",
		"description": "Consensus and replication",
		"price":       99.0,
	}

	status, _ := request(t, app, http.MethodPost, "/instructor/course", studentToken, body)
	assert.Equal(t, http.StatusForbidden, status)

	status, envelope := request(t, app, http.MethodPost, "/instructor/course", instructorToken, body)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, envelope["status"])
}
