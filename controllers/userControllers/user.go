package userController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/middleware"
	"lms/models"
	"lms/services/progressService"
)

// Controller serves user profiles and their progress overviews
type Controller struct {
	DB  *gorm.DB
	Svc *progressService.Service
}

func New(db *gorm.DB, svc *progressService.Service) *Controller {
	return &Controller{DB: db, Svc: svc}
}

// GetAllUsers returns every user with the full per-course progress
// breakdown. Admin only.
func (ctrl *Controller) GetAllUsers(c *fiber.Ctx) error {
	overviews, err := ctrl.Svc.AllUserOverviews()
	if err != nil {
		log.Printf("Error building user overviews: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", overviews)
}

// GetUserByID returns one user's progress overview
func (ctrl *Controller) GetUserByID(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(uint)

	overview, err := ctrl.Svc.UserOverview(userID)
	if err != nil {
		if errors.Is(err, progressService.ErrUserNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		log.Printf("Error building user overview: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully!", overview)
}

// GetMyOverview returns the authenticated user's progress overview
func (ctrl *Controller) GetMyOverview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	overview, err := ctrl.Svc.UserOverview(userID)
	if err != nil {
		if errors.Is(err, progressService.ErrUserNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		log.Printf("Error building user overview: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch overview!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Overview fetched successfully!", overview)
}

// GetEnrolledCourses lists the authenticated user's enrolled courses with
// summary progress, without the module breakdown.
func (ctrl *Controller) GetEnrolledCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courses, err := ctrl.Svc.EnrolledCourses(userID)
	if err != nil {
		if errors.Is(err, progressService.ErrUserNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		log.Printf("Error fetching enrolled courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrolled courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled courses fetched successfully!", courses)
}

// DeleteUser soft deletes a user account. Admin only.
func (ctrl *Controller) DeleteUser(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(uint)

	var user models.User
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.IsDeleted = true
	if err := ctrl.DB.Save(&user).Error; err != nil {
		log.Printf("Error deleting user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", nil)
}
