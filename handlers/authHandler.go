package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yogimardilah/klinik-api/middlewares"
	"github.com/yogimardilah/klinik-api/services"
	"github.com/yogimardilah/klinik-api/utils"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login authenticates the user and returns tokens along with user info.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	user, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), credentials.Email, credentials.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		middlewares.HttpError(c, "Failed to log in", http.StatusInternalServerError, err)
		return
	}

	utils.SetAuthCookies(c, accessToken, refreshToken)
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

// RefreshToken exchanges a valid refresh token for a fresh access token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var data struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.ShouldBindJSON(&data); err != nil || data.RefreshToken == "" {
		if cookie, cerr := c.Cookie(utils.RefreshTokenCookie); cerr == nil {
			data.RefreshToken = cookie
		}
	}
	if data.RefreshToken == "" {
		middlewares.HttpError(c, "Refresh token is required", http.StatusBadRequest, nil)
		return
	}

	accessToken, err := h.service.Refresh(c.Request.Context(), data.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// Logoff revokes the session and clears cookies.
func (h *AuthHandler) Logoff(c *gin.Context) {
	userID, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err == nil {
		if err := h.service.Logoff(c.Request.Context(), userID); err != nil {
			middlewares.HttpError(c, "Failed to log off", http.StatusInternalServerError, err)
			return
		}
	}
	utils.ClearAuthCookies(c)
	middlewares.RespondData(c, http.StatusOK, nil, "Logged off successfully")
}

// SendResetCode sends a password reset code to the user's email.
func (h *AuthHandler) SendResetCode(c *gin.Context) {
	var data struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	if err := h.service.SendResetCode(c.Request.Context(), data.Email); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			middlewares.NotFound(c, "User not found")
			return
		}
		middlewares.HttpError(c, "Failed to send reset code", http.StatusInternalServerError, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, nil, "Reset code sent")
}

// ChangePassword sets a new password after verifying the reset code.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var data struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		middlewares.HttpError(c, "Invalid request body", http.StatusBadRequest, err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), data.Email, data.Code, data.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidResetCode):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid reset code"})
		case errors.Is(err, services.ErrNotFound):
			middlewares.NotFound(c, "User not found")
		default:
			middlewares.HttpError(c, "Failed to change password", http.StatusInternalServerError, err)
		}
		return
	}
	middlewares.RespondData(c, http.StatusOK, nil, "Password changed successfully")
}
