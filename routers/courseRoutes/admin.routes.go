package courseRoutes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controllers "lms/controllers/course"
	"lms/middleware"
	courseValidator "lms/validators/course"
)

// SetupAdminCourseRoutes sets up catalog management and dashboard routes.
// Every route requires the admin role.
func SetupAdminCourseRoutes(app *fiber.App, ctrl *controllers.Controller, db *gorm.DB, jwtKey string) {
	admin := app.Group("/admin", middleware.Protected(jwtKey), middleware.RequireRole(db, "admin"))

	// Courses
	admin.Post("/course", courseValidator.CourseBody(), ctrl.CreateCourse)
	admin.Put("/course/:id", courseValidator.CourseID(), courseValidator.CourseBody(), ctrl.UpdateCourse)
	admin.Delete("/course/:id", courseValidator.CourseID(), ctrl.DeleteCourse)

	// Modules
	admin.Post("/module", courseValidator.ModuleBody(true), ctrl.CreateModule)
	admin.Put("/module/:id", courseValidator.ModuleID(), courseValidator.ModuleBody(false), ctrl.UpdateModule)
	admin.Delete("/module/:id", courseValidator.ModuleID(), ctrl.DeleteModule)

	// Submodules
	admin.Post("/submodule", courseValidator.SubmoduleBody(true), ctrl.CreateSubmodule)
	admin.Put("/submodule/:id", courseValidator.SubmoduleID(), courseValidator.SubmoduleBody(false), ctrl.UpdateSubmodule)
	admin.Delete("/submodule/:id", courseValidator.SubmoduleID(), ctrl.DeleteSubmodule)

	// Final quiz
	admin.Post("/final-quiz", courseValidator.FinalQuizBody(), ctrl.UpsertFinalQuiz)
	admin.Delete("/course/:id/final-quiz", courseValidator.CourseID(), ctrl.DeleteFinalQuiz)

	// Dashboard
	admin.Get("/dashboard/stats", ctrl.DashboardStats)
}
