package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authController "lms/controllers/auth"
	authValidator "lms/validators/auth"
)

// SetupAuthRoutes sets up signup, login and verification routes
func SetupAuthRoutes(app *fiber.App, ctrl *authController.Controller) {
	auth := app.Group("/auth")

	auth.Post("/signup", authValidator.Signup(), ctrl.Signup)
	auth.Post("/login", authValidator.Login(), ctrl.Login)
	auth.Get("/verify/:token", ctrl.VerifyEmail)
	auth.Post("/google", ctrl.GoogleAuth)
}
