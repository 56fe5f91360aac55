package authController

import (
	"encoding/json"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/models"
)

const (
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type googleTokenResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleAuth exchanges the authorization code sent by the frontend for a
// Google access token, fetches the profile, and signs the user in. Accounts
// are created on first sign-in; Google accounts skip email verification.
func (ctrl *Controller) GoogleAuth(c *fiber.Ctx) error {
	reqData := new(struct {
		Code string `json:"code"`
	})

	if err := c.BodyParser(reqData); err != nil || reqData.Code == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Authorization code is required!", nil)
	}

	client := resty.New().SetTimeout(10 * time.Second)

	// Exchange the code for tokens
	tokenResp, err := client.R().
		SetFormData(map[string]string{
			"code":          reqData.Code,
			"client_id":     ctrl.Cfg.GoogleClientID,
			"client_secret": ctrl.Cfg.GoogleClientSecret,
			"redirect_uri":  ctrl.Cfg.GoogleRedirectURL,
			"grant_type":    "authorization_code",
		}).
		Post(googleTokenURL)
	if err != nil {
		log.Printf("Error exchanging Google auth code: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to reach Google!", nil)
	}
	if tokenResp.IsError() {
		log.Printf("Google token exchange failed: %s", tokenResp.String())
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid authorization code!", nil)
	}

	var tokens googleTokenResponse
	if err := json.Unmarshal(tokenResp.Body(), &tokens); err != nil || tokens.AccessToken == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token response from Google!", nil)
	}

	// Fetch the profile
	infoResp, err := client.R().
		SetAuthToken(tokens.AccessToken).
		Get(googleUserInfoURL)
	if err != nil || infoResp.IsError() {
		log.Printf("Error fetching Google profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to fetch Google profile!", nil)
	}

	var info googleUserInfo
	if err := json.Unmarshal(infoResp.Body(), &info); err != nil || info.Email == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid profile response from Google!", nil)
	}

	// Find by Google ID first, then by email so an existing password
	// account gets linked instead of duplicated
	var user models.User
	result := ctrl.DB.Where("google_id = ? AND is_deleted = ?", info.ID, false).First(&user)
	if result.Error != nil {
		result = ctrl.DB.Where("email = ? AND is_deleted = ?", info.Email, false).First(&user)
	}

	if result.Error != nil {
		user = models.User{
			Username:           info.Name,
			Email:              info.Email,
			IsVerified:         true,
			GoogleID:           info.ID,
			GoogleName:         info.Name,
			GoogleProfileImage: info.Picture,
		}
		if err := ctrl.DB.Create(&user).Error; err != nil {
			log.Printf("Error creating Google user: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
		}
	} else {
		user.GoogleID = info.ID
		user.GoogleName = info.Name
		user.GoogleProfileImage = info.Picture
		user.IsVerified = true
		now := time.Now()
		user.LastLogin = &now
		if err := ctrl.DB.Save(&user).Error; err != nil {
			log.Printf("Error updating Google profile: %v", err)
		}
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
