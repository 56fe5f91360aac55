package courseValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/course"
	"lms/middleware"
)

// SubmoduleID validates the :id route parameter and stashes it as
// submoduleID
func SubmoduleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if id == 0 {
			return err
		}
		c.Locals("submoduleID", id)
		return c.Next()
	}
}

// SubmoduleBody validates the create/update submodule payload
func SubmoduleBody(requireModule bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.SubmoduleRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if requireModule && reqData.ModuleID == 0 {
			errors["moduleId"] = "Module ID is required!"
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

		c.Locals("validatedSubmodule", reqData)
		return c.Next()
	}
}
