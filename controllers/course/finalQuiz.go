package controllers

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"lms/middleware"
	courseModels "lms/models/course"
	"lms/services/progressService"
)

// FinalQuizRequest is the parsed create/update body, stashed in Locals by
// the validator
type FinalQuizRequest struct {
	CourseID  uint                             `json:"courseId"`
	Title     string                           `json:"title"`
	Questions []courseModels.FinalQuizQuestion `json:"questions"`
}

// UpsertFinalQuiz creates or replaces the final quiz of a course. One quiz
// per course. Admin only.
func (ctrl *Controller) UpsertFinalQuiz(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedFinalQuiz").(*FinalQuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := ctrl.DB.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	questionsJSON, err := json.Marshal(reqData.Questions)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid questions payload!", nil)
	}

	var quiz courseModels.FinalQuiz
	result := ctrl.DB.Where("course_id = ?", reqData.CourseID).First(&quiz)
	if result.Error != nil {
		quiz = courseModels.FinalQuiz{
			CourseID:  reqData.CourseID,
			Title:     reqData.Title,
			Questions: datatypes.JSON(questionsJSON),
		}
		if err := ctrl.DB.Create(&quiz).Error; err != nil {
			log.Printf("Error creating final quiz: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save final quiz!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Final quiz created successfully!", quiz)
	}

	quiz.Title = reqData.Title
	quiz.Questions = datatypes.JSON(questionsJSON)
	quiz.IsDeleted = false
	if err := ctrl.DB.Save(&quiz).Error; err != nil {
		log.Printf("Error updating final quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save final quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Final quiz updated successfully!", quiz)
}

// GetFinalQuiz returns a course's final quiz with the correct answers
// stripped, for enrolled users taking the exam.
func (ctrl *Controller) GetFinalQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	enrolled, err := ctrl.Svc.IsEnrolled(userID, courseID)
	if err != nil {
		if errors.Is(err, progressService.ErrUserNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
		}
		log.Printf("Error checking enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch final quiz!", nil)
	}
	if !enrolled {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User is not enrolled in this course", nil)
	}

	var quiz courseModels.FinalQuiz
	if err := ctrl.DB.Where("course_id = ? AND is_deleted = ?", courseID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Final quiz not found!", nil)
	}

	var questions []courseModels.FinalQuizQuestion
	if err := json.Unmarshal(quiz.Questions, &questions); err != nil {
		log.Printf("Error decoding final quiz questions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch final quiz!", nil)
	}
	for i := range questions {
		questions[i].CorrectAnswer = nil
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Final quiz fetched successfully!", fiber.Map{
		"courseId":  quiz.CourseID,
		"title":     quiz.Title,
		"questions": questions,
	})
}

// DeleteFinalQuiz soft deletes a course's final quiz. Admin only.
func (ctrl *Controller) DeleteFinalQuiz(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var quiz courseModels.FinalQuiz
	if err := ctrl.DB.Where("course_id = ? AND is_deleted = ?", courseID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Final quiz not found!", nil)
	}

	quiz.IsDeleted = true
	if err := ctrl.DB.Save(&quiz).Error; err != nil {
		log.Printf("Error deleting final quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete final quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Final quiz deleted successfully!", nil)
}
