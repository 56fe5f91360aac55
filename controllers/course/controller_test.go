package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services/progressService"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{JWTKey: "test-secret", SaltRound: 4}
	ctrl := New(db, cfg, progressService.New(db))

	app := fiber.New()

	course := app.Group("/course", middleware.Protected(cfg.JWTKey))
	course.Post("/:id/enroll", stubCourseID(), ctrl.EnrollInCourse)
	course.Delete("/:id/enroll", stubCourseID(), ctrl.UnenrollFromCourse)
	course.Get("/:id/enrollment-status", stubCourseID(), ctrl.EnrollmentStatus)

	submodule := app.Group("/submodule", middleware.Protected(cfg.JWTKey))
	submodule.Patch("/:id/toggle", stubSubmoduleID(), ctrl.ToggleSubmoduleCompletion)

	progress := app.Group("/progress", middleware.Protected(cfg.JWTKey))
	progress.Post("/quiz-score", stubQuizScore(), ctrl.UpdateQuizScore)

	return &testEnv{app: app, db: db, cfg: cfg}
}

// Route-param stubs matching the production validators' Locals contract
func stubCourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid id parameter!", nil)
		}
		c.Locals("courseID", uint(id))
		return c.Next()
	}
}

func stubSubmoduleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid id parameter!", nil)
		}
		c.Locals("submoduleID", uint(id))
		return c.Next()
	}
}

func stubQuizScore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(QuizScoreRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		c.Locals("validatedQuizScore", reqData)
		return c.Next()
	}
}

func seedStudent(t *testing.T, env *testEnv) (uint, string) {
	t.Helper()

	user := models.User{Username: "student", Email: "student@example.com", Password: "hashed", Role: "student", IsVerified: true}
	require.NoError(t, env.db.Create(&user).Error)

	token, err := middleware.GenerateJWT(env.cfg.JWTKey, user.ID, user.Username, user.Role, user.Email)
	require.NoError(t, err)
	return user.ID, token
}

func seedCourse(t *testing.T, db *gorm.DB) (courseID, submoduleID uint) {
	t.Helper()

	crs := courseModels.Course{Title: "Soil Basics"}
	require.NoError(t, db.Create(&crs).Error)
	module := courseModels.Module{CourseID: crs.ID, Title: "Module 1", OrderIndex: 1}
	require.NoError(t, db.Create(&module).Error)
	sub := courseModels.Submodule{ModuleID: module.ID, Title: "Lesson 1", OrderIndex: 1}
	require.NoError(t, db.Create(&sub).Error)
	return crs.ID, sub.ID
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestEnrollEndpoint(t *testing.T) {
	env := setupEnv(t)
	_, token := seedStudent(t, env)
	courseID, _ := seedCourse(t, env.db)

	resp, body := doRequest(t, env.app, "POST", fmt.Sprintf("/course/%d/enroll", courseID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, body.Status)
	assert.Equal(t, "Enrolled in course successfully!", body.Message)

	resp, body = doRequest(t, env.app, "GET", fmt.Sprintf("/course/%d/enrollment-status", courseID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var status struct {
		IsEnrolled bool `json:"isEnrolled"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &status))
	assert.True(t, status.IsEnrolled)
}

func TestEnrollmentStatusUnknownUser(t *testing.T) {
	env := setupEnv(t)
	courseID, _ := seedCourse(t, env.db)

	// Valid token for a user row that does not exist
	token, err := middleware.GenerateJWT(env.cfg.JWTKey, 9999, "ghost", "student", "ghost@example.com")
	require.NoError(t, err)

	resp, body := doRequest(t, env.app, "GET", fmt.Sprintf("/course/%d/enrollment-status", courseID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.False(t, body.Status)
	assert.Equal(t, "User not found!", body.Message)
}

func TestEnrollUnknownCourse(t *testing.T) {
	env := setupEnv(t)
	_, token := seedStudent(t, env)

	resp, body := doRequest(t, env.app, "POST", "/course/9999/enroll", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.False(t, body.Status)
	assert.Equal(t, "Course not found!", body.Message)
}

func TestEnrollRequiresToken(t *testing.T) {
	env := setupEnv(t)
	seedCourse(t, env.db)

	resp, body := doRequest(t, env.app, "POST", "/course/1/enroll", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.False(t, body.Status)
}

func TestToggleEndpoint(t *testing.T) {
	env := setupEnv(t)
	_, token := seedStudent(t, env)
	courseID, submoduleID := seedCourse(t, env.db)

	// Toggling before enrolling is rejected
	resp, body := doRequest(t, env.app, "PATCH", fmt.Sprintf("/submodule/%d/toggle", submoduleID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User is not enrolled in this course", body.Message)

	_, _ = doRequest(t, env.app, "POST", fmt.Sprintf("/course/%d/enroll", courseID), token, nil)

	resp, body = doRequest(t, env.app, "PATCH", fmt.Sprintf("/submodule/%d/toggle", submoduleID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result progressService.ToggleResult
	require.NoError(t, json.Unmarshal(body.Data, &result))
	assert.True(t, result.Completed)
	assert.True(t, result.ModuleCompleted, "single submodule completes the module")
	assert.True(t, result.CourseCompleted, "single module completes the course")
}

func TestQuizScoreEndpointCooldown(t *testing.T) {
	env := setupEnv(t)
	_, token := seedStudent(t, env)
	courseID, _ := seedCourse(t, env.db)
	_, _ = doRequest(t, env.app, "POST", fmt.Sprintf("/course/%d/enroll", courseID), token, nil)

	var moduleID uint
	var module courseModels.Module
	require.NoError(t, env.db.Where("course_id = ?", courseID).First(&module).Error)
	moduleID = module.ID

	payload := map[string]interface{}{"courseId": courseID, "moduleId": moduleID, "score": 50}

	for i := 0; i < 2; i++ {
		resp, _ := doRequest(t, env.app, "POST", "/progress/quiz-score", token, payload)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	// Third submission inside the window is rejected
	resp, body := doRequest(t, env.app, "POST", "/progress/quiz-score", token, payload)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Maximum attempts reached. Try again after 10 minutes.", body.Message)
}

func TestQuizScoreEndpointNotEnrolled(t *testing.T) {
	env := setupEnv(t)
	_, token := seedStudent(t, env)
	courseID, _ := seedCourse(t, env.db)

	var module courseModels.Module
	require.NoError(t, env.db.Where("course_id = ?", courseID).First(&module).Error)

	payload := map[string]interface{}{"courseId": courseID, "moduleId": module.ID, "score": 90}
	resp, body := doRequest(t, env.app, "POST", "/progress/quiz-score", token, payload)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "User is not enrolled in this course", body.Message)
}

func TestUnenrollEndpoint(t *testing.T) {
	env := setupEnv(t)
	_, token := seedStudent(t, env)
	courseID, submoduleID := seedCourse(t, env.db)

	_, _ = doRequest(t, env.app, "POST", fmt.Sprintf("/course/%d/enroll", courseID), token, nil)
	_, _ = doRequest(t, env.app, "PATCH", fmt.Sprintf("/submodule/%d/toggle", submoduleID), token, nil)

	resp, body := doRequest(t, env.app, "DELETE", fmt.Sprintf("/course/%d/enroll", courseID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, body.Status)

	resp, body = doRequest(t, env.app, "GET", fmt.Sprintf("/course/%d/enrollment-status", courseID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var status struct {
		IsEnrolled bool `json:"isEnrolled"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &status))
	assert.False(t, status.IsEnrolled)

	// Re-enrolling starts from a clean snapshot
	_, _ = doRequest(t, env.app, "POST", fmt.Sprintf("/course/%d/enroll", courseID), token, nil)
	resp, body = doRequest(t, env.app, "PATCH", fmt.Sprintf("/submodule/%d/toggle", submoduleID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result progressService.ToggleResult
	require.NoError(t, json.Unmarshal(body.Data, &result))
	assert.True(t, result.Completed, "old completion did not survive unenroll")
}
