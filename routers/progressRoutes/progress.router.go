package progressRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/course"
	"lms/middleware"
	courseValidator "lms/validators/course"
)

// SetupProgressRoutes sets up quiz submission and module completion routes
func SetupProgressRoutes(app *fiber.App, ctrl *controllers.Controller, jwtKey string) {
	progress := app.Group("/progress", middleware.Protected(jwtKey))

	progress.Post("/quiz-score", courseValidator.QuizScore(), ctrl.UpdateQuizScore)
	progress.Post("/final-quiz", courseValidator.FinalQuizScore(), ctrl.UpdateFinalQuiz)
	progress.Post("/complete-module", courseValidator.CompleteModule(), ctrl.CompleteModule)
}
