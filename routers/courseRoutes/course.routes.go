package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Catalog browsing (public; free lessons are viewable anonymously)
	userGroup.Get("/categories", controllers.GetCategories)
	userGroup.Get("/list", middleware.OptionalJWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	userGroup.Get("/:id", middleware.OptionalJWTMiddleware, validators.GetCourseDetail(), controllers.GetCourseDetails)
	userGroup.Get("/:course_id/lesson/:lesson_id", middleware.OptionalJWTMiddleware, validators.CourseParam(), validators.LessonParam(), controllers.GetLessonDetail)

	// Enrollment
	userGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), validators.EnrollBody(), controllers.EnrollInCourse)

	// Payment sessions for priced courses
	userGroup.Post("/:id/payment/session", middleware.JWTMiddleware, validators.GetCourseDetail(), controllers.CreatePaymentSession)
	app.Post("/payment/confirm", middleware.JWTMiddleware, validators.ConfirmPayment(), controllers.ConfirmPayment)

	// Lesson completion and progress tracking
	userGroup.Post("/:course_id/lesson/:lesson_id/complete", middleware.JWTMiddleware, validators.CourseParam(), validators.LessonParam(), validators.MarkLessonComplete(), controllers.MarkLessonComplete)
	userGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.CourseParam(), controllers.GetCourseProgress)

	// Reviews
	userGroup.Post("/:id/review", middleware.JWTMiddleware, validators.GetCourseDetail(), validators.CreateReview(), controllers.CreateReview)
	userGroup.Get("/:id/reviews", validators.GetCourseDetail(), controllers.GetCourseReviews)

	// Quizzes
	quizGroup := app.Group("/quiz")
	quizGroup.Get("/:id", middleware.JWTMiddleware, validators.QuizParam(), controllers.GetQuiz)
	quizGroup.Post("/:id/submit", middleware.JWTMiddleware, validators.QuizParam(), validators.SubmitQuiz(), controllers.SubmitQuiz)
	quizGroup.Get("/:id/attempts", middleware.JWTMiddleware, validators.QuizParam(), controllers.GetQuizAttempts)
}
