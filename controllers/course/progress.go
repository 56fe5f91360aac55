package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/services/progressService"
)

// QuizScoreRequest is the parsed module quiz submission body
type QuizScoreRequest struct {
	CourseID uint `json:"courseId"`
	ModuleID uint `json:"moduleId"`
	Score    int  `json:"score"`
}

// FinalQuizScoreRequest is the parsed final quiz submission body
type FinalQuizScoreRequest struct {
	CourseID uint `json:"courseId"`
	Score    int  `json:"score"`
}

// CompleteModuleRequest is the parsed module completion body
type CompleteModuleRequest struct {
	CourseID uint `json:"courseId"`
	ModuleID uint `json:"moduleId"`
}

func (ctrl *Controller) quizError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, progressService.ErrUserNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	case errors.Is(err, progressService.ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	case errors.Is(err, progressService.ErrCourseNotInProgress), errors.Is(err, progressService.ErrNotEnrolled):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User is not enrolled in this course", nil)
	case errors.Is(err, progressService.ErrModuleNotInProgress):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module not found in course progress", nil)
	case errors.Is(err, progressService.ErrRateLimited):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Maximum attempts reached. Try again after 10 minutes.", nil)
	case errors.Is(err, progressService.ErrScoreBelowThreshold):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module not completed: Quiz score below 80", nil)
	}
	log.Printf("Error updating progress: %v", err)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
}

// UpdateQuizScore records a module quiz submission for the authenticated
// user. A score of 80 or above marks the module complete; after two
// attempts a ten minute cooldown applies.
func (ctrl *Controller) UpdateQuizScore(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedQuizScore").(*QuizScoreRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := ctrl.Svc.SubmitModuleQuiz(userID, reqData.CourseID, reqData.ModuleID, reqData.Score)
	if err != nil {
		return ctrl.quizError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz score updated successfully!", result)
}

// UpdateFinalQuiz records a final quiz submission for the authenticated
// user. Passing marks the whole course complete.
func (ctrl *Controller) UpdateFinalQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedFinalQuizScore").(*FinalQuizScoreRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := ctrl.Svc.SubmitFinalQuiz(userID, reqData.CourseID, reqData.Score)
	if err != nil {
		return ctrl.quizError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Final quiz updated successfully!", result)
}

// CompleteModule marks a module complete for the authenticated user. It
// requires a stored passing quiz score for that module.
func (ctrl *Controller) CompleteModule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCompleteModule").(*CompleteModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := ctrl.Svc.CompleteModule(userID, reqData.CourseID, reqData.ModuleID); err != nil {
		return ctrl.quizError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module marked as completed!", nil)
}
