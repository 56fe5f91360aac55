package discussionRoutes

import (
	"github.com/gofiber/fiber/v2"

	discussionController "lms/controllers/discussion"
	"lms/middleware"
	discussionValidator "lms/validators/discussion"
)

// SetupDiscussionRoutes sets up discussion thread routes
func SetupDiscussionRoutes(app *fiber.App, ctrl *discussionController.Controller, jwtKey string) {
	discussion := app.Group("/discussion", middleware.Protected(jwtKey))

	discussion.Post("/", discussionValidator.DiscussionBody(true), ctrl.CreateDiscussion)
	discussion.Get("/", discussionValidator.DiscussionList(), ctrl.GetDiscussions)
	discussion.Get("/:id", discussionValidator.DiscussionID(), ctrl.GetDiscussion)
	discussion.Put("/:id", discussionValidator.DiscussionID(), discussionValidator.DiscussionBody(false), ctrl.UpdateDiscussion)
	discussion.Delete("/:id", discussionValidator.DiscussionID(), ctrl.DeleteDiscussion)
}
