package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yogimardilah/klinik-api/middlewares"
)

// rootHandler handles requests to the root path.
func rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":   "klinik-api",
		"status": "ok",
	})
}

// SetupRootRoute sets up the root and metrics routes.
func SetupRootRoute(router *gin.Engine) {
	router.GET("/", rootHandler)
	router.GET("/metrics", middlewares.MetricsHandler())
}
