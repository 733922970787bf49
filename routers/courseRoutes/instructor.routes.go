package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorRoutes sets up course management routes for instructors
func SetupInstructorRoutes(app *fiber.App) {
	instructorGroup := app.Group("/instructor", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor))

	// Course management
	instructorGroup.Post("/course", validators.CourseBody(), controllers.CreateCourse)
	instructorGroup.Put("/course/:id", validators.GetCourseDetail(), validators.CourseBody(), controllers.UpdateCourse)
	instructorGroup.Put("/course/:id/publish", validators.GetCourseDetail(), validators.PublishBody(), controllers.PublishCourse)

	// Curriculum management
	instructorGroup.Post("/course/:course_id/chapter", validators.CourseParam(), validators.ChapterBody(), controllers.CreateChapter)
	instructorGroup.Post("/course/:course_id/chapter/:chapter_id/lesson", validators.CourseParam(), validators.ChapterParam(), validators.LessonBody(), controllers.CreateLesson)
	instructorGroup.Post("/course/:course_id/lesson/:lesson_id/quiz", validators.CourseParam(), validators.LessonParam(), validators.QuizBody(), controllers.CreateQuiz)

	// Roster and analytics
	instructorGroup.Get("/course/:course_id/enrollments", validators.CourseParam(), controllers.GetCourseEnrollments)
	instructorGroup.Get("/analytics", controllers.GetInstructorAnalytics)
}
