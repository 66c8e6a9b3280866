package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/yogimardilah/klinik-api/handlers"
	"github.com/yogimardilah/klinik-api/middlewares"
	"github.com/yogimardilah/klinik-api/models"
	"github.com/yogimardilah/klinik-api/utils"
)

// SetupPatientRoutes registers the patient, doctor, dashboard, and export
// routes. All routes require a live session; mutations and doctor account
// management additionally require the admin role.
func SetupPatientRoutes(router *gin.Engine, sessions utils.SessionStore, patientHandler *handlers.PatientHandler, doctorHandler *handlers.DoctorHandler, dashboardHandler *handlers.DashboardHandler, exportHandler *handlers.ExportHandler) {
	auth := middlewares.TokenAuthMiddleware(sessions)
	adminOnly := middlewares.RoleAuthMiddleware(models.RoleAdmin)

	patients := router.Group("/pasiens").Use(auth)
	{
		patients.GET("", patientHandler.ListPatients)
		patients.POST("", patientHandler.CreatePatient)
		patients.GET("/search", patientHandler.SearchPatients)
		patients.GET("/statistics", patientHandler.PatientStatistics)
		patients.GET("/export", exportHandler.Export)
		patients.GET("/export/excel", exportHandler.ExportExcel)
		patients.GET("/export/pdf", exportHandler.ExportPDF)
		patients.GET("/:patient_id", patientHandler.GetPatientByID)
		patients.PUT("/:patient_id", patientHandler.UpdatePatient)
		patients.DELETE("/:patient_id", patientHandler.DeletePatient)
	}

	doctors := router.Group("/doctors").Use(auth, adminOnly)
	{
		doctors.GET("", doctorHandler.ListDoctors)
		doctors.POST("", doctorHandler.CreateDoctor)
		doctors.GET("/:doctor_id", doctorHandler.GetDoctorByID)
		doctors.PUT("/:doctor_id", doctorHandler.UpdateDoctor)
		doctors.DELETE("/:doctor_id", doctorHandler.DeleteDoctor)
	}

	dashboard := router.Group("/dashboard").Use(auth)
	{
		dashboard.GET("/stats", dashboardHandler.DashboardStats)
		dashboard.GET("/activities", dashboardHandler.RecentActivities)
		dashboard.GET("/notifications", dashboardHandler.Notifications)
	}
}
