package discussionController

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
)

// Controller serves discussion threads attached to submodules
type Controller struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Controller {
	return &Controller{DB: db}
}

// DiscussionRequest is the parsed create/update body, stashed in Locals by
// the validator
type DiscussionRequest struct {
	SubmoduleID uint   `json:"submoduleId"`
	Title       string `json:"title"`
	Body        string `json:"body"`
}

// CreateDiscussion opens a thread on a submodule. The course, module and
// submodule names are denormalized onto the row at creation time.
func (ctrl *Controller) CreateDiscussion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedDiscussion").(*DiscussionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var submodule courseModels.Submodule
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", reqData.SubmoduleID, false).First(&submodule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submodule not found!", nil)
	}

	var module courseModels.Module
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", submodule.ModuleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent module not found!", nil)
	}

	var course courseModels.Course
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", module.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent course not found!", nil)
	}

	discussion := models.Discussion{
		UserID:        userID,
		CourseID:      course.ID,
		CourseName:    course.Title,
		ModuleID:      module.ID,
		ModuleName:    module.Title,
		SubmoduleID:   submodule.ID,
		SubmoduleName: submodule.Title,
		Title:         reqData.Title,
		Body:          reqData.Body,
	}

	if err := ctrl.DB.Create(&discussion).Error; err != nil {
		log.Printf("Error creating discussion: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create discussion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Discussion created successfully!", discussion)
}

// GetDiscussions lists threads, optionally filtered to one submodule
func (ctrl *Controller) GetDiscussions(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedDiscussionList").(*struct {
		SubmoduleID *uint `json:"submoduleId"`
		Page        *int  `json:"page"`
		Limit       *int  `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := ctrl.DB.Model(&models.Discussion{}).Where("is_deleted = ?", false)
	if reqData != nil && reqData.SubmoduleID != nil {
		db = db.Where("submodule_id = ?", *reqData.SubmoduleID)
	}

	var total int64
	db.Count(&total)

	var discussions []models.Discussion
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&discussions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch discussions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discussions fetched successfully!", fiber.Map{
		"discussions": discussions,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetDiscussion returns one thread
func (ctrl *Controller) GetDiscussion(c *fiber.Ctx) error {
	discussionID := c.Locals("discussionID").(uint)

	var discussion models.Discussion
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", discussionID, false).First(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Discussion not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discussion fetched successfully!", discussion)
}

// UpdateDiscussion edits a thread. Only the author can edit.
func (ctrl *Controller) UpdateDiscussion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	discussionID := c.Locals("discussionID").(uint)

	reqData, ok := c.Locals("validatedDiscussion").(*DiscussionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var discussion models.Discussion
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", discussionID, false).First(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Discussion not found!", nil)
	}

	if discussion.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only edit your own discussions!", nil)
	}

	discussion.Title = reqData.Title
	discussion.Body = reqData.Body
	if err := ctrl.DB.Save(&discussion).Error; err != nil {
		log.Printf("Error updating discussion: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update discussion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discussion updated successfully!", discussion)
}

// DeleteDiscussion soft deletes a thread. The author or an admin can
// delete.
func (ctrl *Controller) DeleteDiscussion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	discussionID := c.Locals("discussionID").(uint)

	var discussion models.Discussion
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", discussionID, false).First(&discussion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Discussion not found!", nil)
	}

	if discussion.UserID != userID {
		var user models.User
		if err := ctrl.DB.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil || user.Role != "admin" {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own discussions!", nil)
		}
	}

	discussion.IsDeleted = true
	if err := ctrl.DB.Save(&discussion).Error; err != nil {
		log.Printf("Error deleting discussion: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete discussion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Discussion deleted successfully!", nil)
}
