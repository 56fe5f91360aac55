package courseValidator

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/course"
	"lms/middleware"
)

// FinalQuizBody validates the create/update final quiz payload. Every
// question needs at least two options, and each correct answer must be one
// of the listed options.
func FinalQuizBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.FinalQuizRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}

		if len(reqData.Questions) == 0 {
			errors["questions"] = "At least one question is required!"
		}

		for i, q := range reqData.Questions {
			key := fmt.Sprintf("questions[%d]", i)

			if strings.TrimSpace(q.Question) == "" {
				errors[key] = "Question text is required!"
				continue
			}
			if len(q.Options) < 2 {
				errors[key] = "Each question needs at least 2 options!"
				continue
			}
			if len(q.CorrectAnswer) == 0 {
				errors[key] = "Each question needs at least one correct answer!"
				continue
			}

			options := make(map[string]bool, len(q.Options))
			for _, opt := range q.Options {
				options[opt] = true
			}
			for _, ans := range q.CorrectAnswer {
				if !options[ans] {
					errors[key] = "Correct answers must be among the options!"
					break
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFinalQuiz", reqData)
		return c.Next()
	}
}
