package userRoutes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "lms/controllers/userControllers"
	"lms/middleware"
	userValidator "lms/validators/user"
)

// SetupUserRoutes sets up profile and progress overview routes
func SetupUserRoutes(app *fiber.App, ctrl *userController.Controller, db *gorm.DB, jwtKey string) {
	user := app.Group("/user", middleware.Protected(jwtKey))

	// Own account
	user.Get("/overview", ctrl.GetMyOverview)
	user.Get("/enrolled-courses", ctrl.GetEnrolledCourses)

	// Admin user management
	user.Get("/list", middleware.RequireRole(db, "admin"), ctrl.GetAllUsers)
	user.Get("/:id", middleware.RequireRole(db, "admin"), userValidator.UserID(), ctrl.GetUserByID)
	user.Delete("/:id", middleware.RequireRole(db, "admin"), userValidator.UserID(), ctrl.DeleteUser)
}
