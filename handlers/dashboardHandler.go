package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yogimardilah/klinik-api/middlewares"
	"github.com/yogimardilah/klinik-api/services"
)

type DashboardHandler struct {
	stats         *services.StatsService
	notifications *services.NotificationService
}

func NewDashboardHandler(stats *services.StatsService, notifications *services.NotificationService) *DashboardHandler {
	return &DashboardHandler{stats: stats, notifications: notifications}
}

// DashboardStats serves the full dashboard snapshot.
func (h *DashboardHandler) DashboardStats(c *gin.Context) {
	stats, err := h.stats.DashboardStats(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Failed to retrieve dashboard statistics", http.StatusInternalServerError, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, stats, "")
}

// RecentActivities serves the merged registration feed.
func (h *DashboardHandler) RecentActivities(c *gin.Context) {
	activities, err := h.stats.RecentActivities(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Failed to retrieve recent activities", http.StatusInternalServerError, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, activities, "")
}

// Notifications serves the derived advisory list.
func (h *DashboardHandler) Notifications(c *gin.Context) {
	notifications, err := h.notifications.Notifications(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Failed to retrieve notifications", http.StatusInternalServerError, err)
		return
	}
	middlewares.RespondData(c, http.StatusOK, notifications, "")
}
