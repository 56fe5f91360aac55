package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	courseModels "lms/models/course"
	"lms/services/progressService"
)

// SubmoduleRequest is the parsed create/update body, stashed in Locals by
// the validator
type SubmoduleRequest struct {
	ModuleID    uint   `json:"moduleId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"orderIndex"`
}

// CreateSubmodule adds a submodule to a module. Admin only.
func (ctrl *Controller) CreateSubmodule(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSubmodule").(*SubmoduleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var module courseModels.Module
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", reqData.ModuleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	submodule := courseModels.Submodule{
		ModuleID:    reqData.ModuleID,
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	}

	if err := ctrl.DB.Create(&submodule).Error; err != nil {
		log.Printf("Error creating submodule: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create submodule!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Submodule created successfully!", submodule)
}

// UpdateSubmodule edits a submodule's catalog fields. Admin only.
func (ctrl *Controller) UpdateSubmodule(c *fiber.Ctx) error {
	submoduleID := c.Locals("submoduleID").(uint)

	reqData, ok := c.Locals("validatedSubmodule").(*SubmoduleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var submodule courseModels.Submodule
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", submoduleID, false).First(&submodule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submodule not found!", nil)
	}

	submodule.Title = reqData.Title
	submodule.Description = reqData.Description
	submodule.OrderIndex = reqData.OrderIndex

	if err := ctrl.DB.Save(&submodule).Error; err != nil {
		log.Printf("Error updating submodule: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update submodule!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submodule updated successfully!", submodule)
}

// DeleteSubmodule soft deletes a submodule. Admin only.
func (ctrl *Controller) DeleteSubmodule(c *fiber.Ctx) error {
	submoduleID := c.Locals("submoduleID").(uint)

	var submodule courseModels.Submodule
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", submoduleID, false).First(&submodule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submodule not found!", nil)
	}

	submodule.IsDeleted = true
	if err := ctrl.DB.Save(&submodule).Error; err != nil {
		log.Printf("Error deleting submodule: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete submodule!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submodule deleted successfully!", nil)
}

// ToggleSubmoduleCompletion flips the authenticated user's completion flag
// for one submodule and reports the resulting module and course completion.
func (ctrl *Controller) ToggleSubmoduleCompletion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	submoduleID := c.Locals("submoduleID").(uint)

	result, err := ctrl.Svc.ToggleSubmodule(userID, submoduleID)
	if err != nil {
		switch {
		case errors.Is(err, progressService.ErrUserNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		case errors.Is(err, progressService.ErrSubmoduleNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submodule not found!", nil)
		case errors.Is(err, progressService.ErrModuleNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent module not found!", nil)
		case errors.Is(err, progressService.ErrCourseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent course not found!", nil)
		case errors.Is(err, progressService.ErrNotEnrolled):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User is not enrolled in this course", nil)
		case errors.Is(err, progressService.ErrModuleNotInProgress):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found in course progress", nil)
		case errors.Is(err, progressService.ErrSubmoduleNotInProgress):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submodule not found in module progress", nil)
		}
		log.Printf("Error toggling submodule: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update submodule completion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submodule completion updated successfully!", result)
}
