package courseValidator

import (
	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/course"
	"lms/middleware"
)

// QuizScore validates a module quiz submission
func QuizScore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.QuizScoreRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}

		if reqData.ModuleID == 0 {
			errors["moduleId"] = "Module ID is required!"
		}

		if reqData.Score < 0 || reqData.Score > 100 {
			errors["score"] = "Score must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuizScore", reqData)
		return c.Next()
	}
}

// FinalQuizScore validates a final quiz submission
func FinalQuizScore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.FinalQuizScoreRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}

		if reqData.Score < 0 || reqData.Score > 100 {
			errors["score"] = "Score must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFinalQuizScore", reqData)
		return c.Next()
	}
}

// CompleteModule validates a module completion request
func CompleteModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.CompleteModuleRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}

		if reqData.ModuleID == 0 {
			errors["moduleId"] = "Module ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCompleteModule", reqData)
		return c.Next()
	}
}
