package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/course"
	"lms/middleware"
	courseValidator "lms/validators/course"
)

// SetupCourseRoutes sets up the user-facing catalog, enrollment and
// submodule routes
func SetupCourseRoutes(app *fiber.App, ctrl *controllers.Controller, jwtKey string) {
	course := app.Group("/course", middleware.Protected(jwtKey))

	// Catalog
	course.Get("/list", courseValidator.CourseList(), ctrl.GetAllCourses)
	course.Get("/:id", courseValidator.CourseID(), ctrl.GetCourseDetails)

	// Enrollment
	course.Post("/:id/enroll", courseValidator.CourseID(), ctrl.EnrollInCourse)
	course.Delete("/:id/enroll", courseValidator.CourseID(), ctrl.UnenrollFromCourse)
	course.Get("/:id/enrollment-status", courseValidator.CourseID(), ctrl.EnrollmentStatus)

	// Final quiz (questions only, answers stripped)
	course.Get("/:id/final-quiz", courseValidator.CourseID(), ctrl.GetFinalQuiz)

	// Submodule completion toggle
	submodule := app.Group("/submodule", middleware.Protected(jwtKey))
	submodule.Patch("/:id/toggle", courseValidator.SubmoduleID(), ctrl.ToggleSubmoduleCompletion)
}
