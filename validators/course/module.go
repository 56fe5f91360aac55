package courseValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/course"
	"lms/middleware"
)

// ModuleID validates the :id route parameter and stashes it as moduleID
func ModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if id == 0 {
			return err
		}
		c.Locals("moduleID", id)
		return c.Next()
	}
}

// ModuleBody validates the create/update module payload
func ModuleBody(requireCourse bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.ModuleRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if requireCourse && reqData.CourseID == 0 {
			errors["courseId"] = "Course ID is required!"
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}

		if reqData.OrderIndex < 0 {
			errors["orderIndex"] = "Order index cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}
