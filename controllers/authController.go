package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/yogimardilah/klinik-api/handlers"
	"github.com/yogimardilah/klinik-api/middlewares"
	"github.com/yogimardilah/klinik-api/utils"
)

type AuthController struct {
	Handler  *handlers.AuthHandler
	Sessions utils.SessionStore
}

// NewAuthController creates a new AuthController with the given AuthHandler.
func NewAuthController(authHandler *handlers.AuthHandler, sessions utils.SessionStore) *AuthController {
	return &AuthController{
		Handler:  authHandler,
		Sessions: sessions,
	}
}

// RegisterRoutes initializes all authentication routes directly on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	// Public routes: no authentication required
	router.POST("/auth/login", ac.Handler.Login)
	router.POST("/auth/refresh-token", ac.Handler.RefreshToken)
	router.POST("/auth/send-reset-code", ac.Handler.SendResetCode)
	router.POST("/auth/change-password", ac.Handler.ChangePassword)

	// Protected routes: requires a valid token and live session
	authGroup := router.Group("/auth").Use(middlewares.TokenAuthMiddleware(ac.Sessions))
	{
		authGroup.POST("/logoff", ac.Handler.Logoff)
	}
}
