package authController

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lms/config"
	"lms/middleware"
	"lms/models"
	"lms/utils"
)

// Controller handles signup, login and account verification. All
// dependencies are injected at construction.
type Controller struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Mailer *utils.Mailer
}

func New(db *gorm.DB, cfg *config.Config, mailer *utils.Mailer) *Controller {
	return &Controller{DB: db, Cfg: cfg, Mailer: mailer}
}

func (ctrl *Controller) Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*SignupRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Check if email already exists
	if err := ctrl.DB.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), ctrl.Cfg.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Username:          reqData.Username,
		Email:             reqData.Email,
		Password:          string(hashedPassword),
		Type:              reqData.Type,
		Organisation:      reqData.Organisation,
		VerificationToken: uuid.NewString(),
	}

	if err := ctrl.DB.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	ctrl.Mailer.SendVerificationEmail(newUser.Email, newUser.Username, newUser.VerificationToken)

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully. Please verify your email.", newUser)
}

func (ctrl *Controller) Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	result := ctrl.DB.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if user.GoogleID != "" && user.Password == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "This account uses Google sign-in!", nil)
	}

	if !user.IsVerified {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Email not verified!", nil)
	}

	// Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Wrong Password", nil)
	}

	// Update last login time
	now := time.Now()
	user.LastLogin = &now
	if err := ctrl.DB.Save(&user).Error; err != nil {
		log.Printf("Error saving last login time: %v", err)
	}

	user.Password = ""

	token, err := middleware.GenerateJWT(ctrl.Cfg.JWTKey, user.ID, user.Username, user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
	})
}

func (ctrl *Controller) VerifyEmail(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Verification token is required!", nil)
	}

	var user models.User
	result := ctrl.DB.Where("verification_token = ? AND is_deleted = ?", token, false).First(&user)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Invalid or expired verification token!", nil)
	}

	if user.IsVerified {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Email already verified.", nil)
	}

	user.IsVerified = true
	user.VerificationToken = ""
	if err := ctrl.DB.Save(&user).Error; err != nil {
		log.Printf("Error updating verification status: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify email!", nil)
	}

	ctrl.Mailer.SendWelcomeEmail(user.Email, user.Username)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Email verified successfully.", nil)
}

// SignupRequest is the parsed signup body, stashed in Locals by the validator
type SignupRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Type         string `json:"type"`
	Organisation string `json:"organisation"`
}

// LoginRequest is the parsed login body, stashed in Locals by the validator
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
