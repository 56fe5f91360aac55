package discussionValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	discussionController "lms/controllers/discussion"
	"lms/middleware"
)

// DiscussionID validates the :id route parameter
func DiscussionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid discussion ID!", nil)
		}
		c.Locals("discussionID", uint(id))
		return c.Next()
	}
}

// DiscussionBody validates the create/update discussion payload
func DiscussionBody(requireSubmodule bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(discussionController.DiscussionRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if requireSubmodule && reqData.SubmoduleID == 0 {
			errors["submoduleId"] = "Submodule ID is required!"
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}

		if strings.TrimSpace(reqData.Body) == "" {
			errors["body"] = "Body is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDiscussion", reqData)
		return c.Next()
	}
}

// DiscussionList validates optional list filters
func DiscussionList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SubmoduleID *uint `json:"submoduleId"`
			Page        *int  `json:"page"`
			Limit       *int  `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}

		if reqData.Limit != nil && (*reqData.Limit < 1 || *reqData.Limit > 100) {
			errors["limit"] = "Limit must be between 1 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDiscussionList", reqData)
		return c.Next()
	}
}
