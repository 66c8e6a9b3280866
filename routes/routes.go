package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yogimardilah/klinik-api/cache"
	"github.com/yogimardilah/klinik-api/config"
	"github.com/yogimardilah/klinik-api/controllers"
	"github.com/yogimardilah/klinik-api/handlers"
	"github.com/yogimardilah/klinik-api/middlewares"
	"github.com/yogimardilah/klinik-api/repositories"
	"github.com/yogimardilah/klinik-api/services"
	"github.com/yogimardilah/klinik-api/utils"
)

// SetupRoutes initializes the routes and middleware for the server.
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB, sessions utils.SessionStore) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	router.Use(middlewares.LoggingMiddleware())
	router.Use(middlewares.MetricsMiddleware())

	// Repositories, services, and handlers
	patientRepo := repositories.NewPatientRepository(db, cache)
	userRepo := repositories.NewUserRepository(db, cache)

	patientService := services.NewPatientService(patientRepo)
	statsService := services.NewStatsService(patientRepo, userRepo)
	notificationService := services.NewNotificationService(patientRepo, userRepo)
	exportService := services.NewExportService(patientRepo)
	doctorService := services.NewDoctorService(userRepo, sessions)
	authService := services.NewAuthService(userRepo, sessions)

	patientHandler := handlers.NewPatientHandler(patientService, statsService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	dashboardHandler := handlers.NewDashboardHandler(statsService, notificationService)
	exportHandler := handlers.NewExportHandler(exportService)
	authHandler := handlers.NewAuthHandler(authService)

	// Register routes
	controllers.SetupPatientRoutes(router, sessions, patientHandler, doctorHandler, dashboardHandler, exportHandler)

	authController := controllers.NewAuthController(authHandler, sessions)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
