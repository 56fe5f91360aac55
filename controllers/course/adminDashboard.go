package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"

	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	progressModels "lms/models/progress"
)

// DashboardStats reports platform-wide counters for the admin dashboard:
// totals, signups and enrollments for the current week and month, and the
// latest enrollments with user and course names.
func (ctrl *Controller) DashboardStats(c *fiber.Ctx) error {
	var totalUsers, totalCourses, totalEnrollments, completedCourses int64

	ctrl.DB.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	ctrl.DB.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	ctrl.DB.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	ctrl.DB.Model(&progressModels.CourseProgress{}).Where("completed = ?", true).Count(&completedCourses)

	weekStart := now.BeginningOfWeek()
	monthStart := now.BeginningOfMonth()

	var newUsersThisWeek, newUsersThisMonth int64
	ctrl.DB.Model(&models.User{}).Where("is_deleted = ? AND created_at >= ?", false, weekStart).Count(&newUsersThisWeek)
	ctrl.DB.Model(&models.User{}).Where("is_deleted = ? AND created_at >= ?", false, monthStart).Count(&newUsersThisMonth)

	var enrollmentsThisWeek, enrollmentsThisMonth int64
	ctrl.DB.Model(&courseModels.Enrollment{}).Where("is_deleted = ? AND created_at >= ?", false, weekStart).Count(&enrollmentsThisWeek)
	ctrl.DB.Model(&courseModels.Enrollment{}).Where("is_deleted = ? AND created_at >= ?", false, monthStart).Count(&enrollmentsThisMonth)

	type RecentEnrollment struct {
		UserName   string    `json:"user_name"`
		CourseName string    `json:"course_name"`
		EnrolledAt time.Time `json:"enrolled_at"`
	}

	var recentEnrollments []courseModels.Enrollment
	ctrl.DB.Where("is_deleted = ?", false).Order("created_at desc").Limit(5).Find(&recentEnrollments)

	recent := make([]RecentEnrollment, len(recentEnrollments))
	for i, e := range recentEnrollments {
		var enrolledUser models.User
		var course courseModels.Course
		ctrl.DB.Where("id = ?", e.UserID).First(&enrolledUser)
		ctrl.DB.Where("id = ?", e.CourseID).First(&course)
		recent[i] = RecentEnrollment{
			UserName:   enrolledUser.Username,
			CourseName: course.Title,
			EnrolledAt: e.CreatedAt,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"stats": fiber.Map{
			"total_users":            totalUsers,
			"total_courses":          totalCourses,
			"total_enrollments":      totalEnrollments,
			"completed_courses":      completedCourses,
			"new_users_this_week":    newUsersThisWeek,
			"new_users_this_month":   newUsersThisMonth,
			"enrollments_this_week":  enrollmentsThisWeek,
			"enrollments_this_month": enrollmentsThisMonth,
		},
		"recent_enrollments": recent,
	})
}
