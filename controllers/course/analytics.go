package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// GetInstructorAnalytics aggregates revenue, enrollments and ratings
// across the caller's courses. Revenue comes from captured payment
// sessions, so free enrollments never count towards it.
func GetInstructorAnalytics(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("instructor_id = ? AND is_deleted = ?", userID, false).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch analytics!", nil)
	}

	type CourseStats struct {
		CourseID     uint    `json:"course_id"`
		Title        string  `json:"title"`
		Enrollments  int64   `json:"enrollments"`
		Revenue      float64 `json:"revenue"`
		Rating       float64 `json:"rating"`
		ReviewsCount int64   `json:"reviews_count"`
	}

	totalRevenue := float64(0)
	monthRevenue := float64(0)
	totalEnrollments := int64(0)
	totalLessons := int64(0)
	monthStart := now.BeginningOfMonth()

	stats := make([]CourseStats, len(courses))
	for i, course := range courses {
		var enrollments int64
		db.Model(&courseModels.Enrollment{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).Count(&enrollments)

		var revenue float64
		db.Model(&courseModels.PaymentSession{}).
			Where("course_id = ? AND status = ? AND is_deleted = ?", course.ID, courseModels.PaymentCaptured, false).
			Select("COALESCE(SUM(amount), 0)").Scan(&revenue)

		var monthPart float64
		db.Model(&courseModels.PaymentSession{}).
			Where("course_id = ? AND status = ? AND is_deleted = ? AND updated_at >= ?",
				course.ID, courseModels.PaymentCaptured, false, monthStart).
			Select("COALESCE(SUM(amount), 0)").Scan(&monthPart)

		var rating float64
		db.Model(&models.Review{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Select("COALESCE(AVG(rating), 0)").Scan(&rating)

		var reviewsCount int64
		db.Model(&models.Review{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).Count(&reviewsCount)

		var lessons int64
		db.Model(&courseModels.Lesson{}).
			Joins("JOIN chapters ON chapters.id = lessons.chapter_id").
			Where("chapters.course_id = ? AND chapters.is_deleted = ? AND lessons.is_deleted = ?", course.ID, false, false).
			Count(&lessons)

		stats[i] = CourseStats{
			CourseID:     course.ID,
			Title:        course.Title,
			Enrollments:  enrollments,
			Revenue:      revenue,
			Rating:       rating,
			ReviewsCount: reviewsCount,
		}

		totalRevenue += revenue
		monthRevenue += monthPart
		totalEnrollments += enrollments
		totalLessons += lessons
	}

	// Recent enrollments across all of the instructor's courses
	type RecentEnrollment struct {
		EnrollmentID uint   `json:"enrollment_id"`
		CourseTitle  string `json:"course_title"`
		UserName     string `json:"user_name"`
		CreatedAt    string `json:"created_at"`
	}

	var recent []RecentEnrollment
	db.Model(&courseModels.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Joins("JOIN users ON users.id = enrollments.user_id").
		Where("courses.instructor_id = ? AND enrollments.is_deleted = ?", userID, false).
		Order("enrollments.created_at desc").Limit(10).
		Select("enrollments.id as enrollment_id, courses.title as course_title, users.name as user_name, enrollments.created_at as created_at").
		Scan(&recent)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analytics fetched successfully!", fiber.Map{
		"total_revenue":      totalRevenue,
		"month_revenue":      monthRevenue,
		"total_enrollments":  totalEnrollments,
		"total_courses":      len(courses),
		"total_lessons":      totalLessons,
		"courses":            stats,
		"recent_enrollments": recent,
	})
}
