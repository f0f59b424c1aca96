package server

import (
	"os"
	"time"

	"monitoreo-server/db"
	httpHandler "monitoreo-server/handlers/http"
	"monitoreo-server/repositories"
	"monitoreo-server/services"
	"monitoreo-server/usecases"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	sessionTTL        = 12 * time.Hour
	dashboardCacheTTL = time.Minute
)

type Server struct {
	app *gin.Engine
	db  db.Database
	log *zap.Logger
}

func NewServer(database db.Database, log *zap.Logger) *Server {
	return &Server{
		app: gin.Default(),
		db:  database,
		log: log,
	}
}

func (s *Server) Start() error {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true // Allow all origins for development
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	rbacRepo := repositories.NewRBACPgRepository(s.db)

	// Initialize use cases
	scope := usecases.NewTenantScope(s.db, userRepo)
	matrix := usecases.NewPermissionMatrix(userRepo, rbacRepo)
	catalog := usecases.NewCatalogUseCase(s.db, scope)
	accounts := usecases.NewAccountUseCase(s.db, userRepo)
	directory := usecases.NewDirectoryUseCase(s.db, scope, userRepo)

	// Initialize services
	dashboard := services.NewDashboardService(s.db, scope, dashboardCacheTTL, s.log)
	exporter := services.NewExportService(catalog)

	// Sessions and middleware
	sessions := httpHandler.NewSessionManager(sessionTTL)
	auth := httpHandler.NewAuthMiddleware(sessions, accounts, matrix, s.log)

	// Initialize handlers
	authHandler := httpHandler.NewAuthHandler(accounts, sessions)
	profileHandler := httpHandler.NewProfileHandler(accounts)
	categoryHandler := httpHandler.NewCategoryHandler(catalog)
	zoneHandler := httpHandler.NewZoneHandler(catalog)
	deviceHandler := httpHandler.NewDeviceHandler(catalog)
	sensorHandler := httpHandler.NewSensorHandler(catalog)
	measurementHandler := httpHandler.NewMeasurementHandler(catalog)
	alertHandler := httpHandler.NewAlertHandler(catalog)
	userHandler := httpHandler.NewUserHandler(directory)
	organizationHandler := httpHandler.NewOrganizationHandler(directory)
	dashboardHandler := httpHandler.NewDashboardHandler(dashboard)
	exportHandler := httpHandler.NewExportHandler(exporter)
	adminHandler := httpHandler.NewAdminHandler(dashboard, matrix, catalog)

	const (
		dispositivos = "dispositivos"
		usuarios     = "usuarios"
	)

	// Setup API routes
	api := s.app.Group("/api/v1")
	{
		// Auth routes (no session required)
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.POST("/password-reset", authHandler.PasswordReset)
		}

		authed := api.Group("", auth.Required())

		// Self-service profile routes
		profile := authed.Group("/profile")
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PUT("", profileHandler.UpdateProfile)
			profile.POST("/change-password", profileHandler.ChangePassword)
		}

		// Dashboard
		authed.GET("/dashboard", auth.Permission(dispositivos, "view"), dashboardHandler.GetDashboard)

		// User directory
		users := authed.Group("/users")
		{
			users.GET("", auth.Permission(usuarios, "view"), userHandler.ListUsers)
			users.GET("/:id", auth.Permission(usuarios, "view"), userHandler.GetUser)
			users.POST("/:id/roles", auth.Permission(usuarios, "change"), userHandler.AssignRole)
		}

		// Own organization
		organization := authed.Group("/organization")
		{
			organization.GET("", auth.Permission(usuarios, "view"), organizationHandler.GetOrganization)
			organization.PUT("", auth.Permission(usuarios, "change"), organizationHandler.UpdateOrganization)
		}

		// Category routes
		categories := authed.Group("/categories")
		{
			categories.POST("", auth.Permission(dispositivos, "add"), categoryHandler.CreateCategory)
			categories.GET("", auth.Permission(dispositivos, "view"), categoryHandler.ListCategories)
			categories.GET("/:id", auth.Permission(dispositivos, "view"), categoryHandler.GetCategory)
			categories.PUT("/:id", auth.Permission(dispositivos, "change"), categoryHandler.UpdateCategory)
			categories.DELETE("/:id", auth.Permission(dispositivos, "delete"), categoryHandler.DeleteCategory)
			categories.POST("/:id/restore", auth.Permission(dispositivos, "delete"), categoryHandler.RestoreCategory)
		}

		// Zone routes
		zones := authed.Group("/zones")
		{
			zones.POST("", auth.Permission(dispositivos, "add"), zoneHandler.CreateZone)
			zones.GET("", auth.Permission(dispositivos, "view"), zoneHandler.ListZones)
			zones.GET("/:id", auth.Permission(dispositivos, "view"), zoneHandler.GetZone)
			zones.PUT("/:id", auth.Permission(dispositivos, "change"), zoneHandler.UpdateZone)
			zones.DELETE("/:id", auth.Permission(dispositivos, "delete"), zoneHandler.DeleteZone)
			zones.POST("/:id/restore", auth.Permission(dispositivos, "delete"), zoneHandler.RestoreZone)
		}

		// Device routes
		devices := authed.Group("/devices")
		{
			devices.POST("", auth.Permission(dispositivos, "add"), deviceHandler.CreateDevice)
			devices.GET("", auth.Permission(dispositivos, "view"), deviceHandler.ListDevices)
			devices.GET("/:id", auth.Permission(dispositivos, "view"), deviceHandler.GetDevice)
			devices.PUT("/:id", auth.Permission(dispositivos, "change"), deviceHandler.UpdateDevice)
			devices.DELETE("/:id", auth.Permission(dispositivos, "delete"), deviceHandler.DeleteDevice)
			devices.POST("/:id/restore", auth.Permission(dispositivos, "delete"), deviceHandler.RestoreDevice)
		}

		// Sensor routes
		sensors := authed.Group("/sensors")
		{
			sensors.POST("", auth.Permission(dispositivos, "add"), sensorHandler.CreateSensor)
			sensors.GET("", auth.Permission(dispositivos, "view"), sensorHandler.ListSensors)
			sensors.GET("/:id", auth.Permission(dispositivos, "view"), sensorHandler.GetSensor)
			sensors.PUT("/:id", auth.Permission(dispositivos, "change"), sensorHandler.UpdateSensor)
			sensors.DELETE("/:id", auth.Permission(dispositivos, "delete"), sensorHandler.DeleteSensor)
			sensors.POST("/:id/restore", auth.Permission(dispositivos, "delete"), sensorHandler.RestoreSensor)
		}

		// Measurement routes
		measurements := authed.Group("/measurements")
		{
			measurements.POST("", auth.Permission(dispositivos, "add"), measurementHandler.CreateMeasurement)
			measurements.GET("", auth.Permission(dispositivos, "view"), measurementHandler.ListMeasurements)
			measurements.GET("/:id", auth.Permission(dispositivos, "view"), measurementHandler.GetMeasurement)
			measurements.PUT("/:id", auth.Permission(dispositivos, "change"), measurementHandler.UpdateMeasurement)
			measurements.DELETE("/:id", auth.Permission(dispositivos, "delete"), measurementHandler.DeleteMeasurement)
			measurements.POST("/:id/restore", auth.Permission(dispositivos, "delete"), measurementHandler.RestoreMeasurement)
		}

		// Alert routes
		alerts := authed.Group("/alerts")
		{
			alerts.POST("", auth.Permission(dispositivos, "add"), alertHandler.CreateAlert)
			alerts.GET("", auth.Permission(dispositivos, "view"), alertHandler.ListAlerts)
			alerts.GET("/:id", auth.Permission(dispositivos, "view"), alertHandler.GetAlert)
			alerts.PUT("/:id/read", auth.Permission(dispositivos, "change"), alertHandler.MarkRead)
			alerts.DELETE("/:id", auth.Permission(dispositivos, "delete"), alertHandler.DeleteAlert)
			alerts.POST("/:id/restore", auth.Permission(dispositivos, "delete"), alertHandler.RestoreAlert)
		}

		// Export routes
		export := authed.Group("/export", auth.Permission(dispositivos, "view"))
		{
			export.GET("/measurements", exportHandler.ExportMeasurements)
			export.GET("/devices", exportHandler.ExportDevices)
		}

		// Admin routes (superuser maintenance surface)
		admin := authed.Group("/admin", auth.SuperuserOnly())
		{
			admin.GET("/dashboard", adminHandler.GetAdminDashboard)
			admin.GET("/organizations", organizationHandler.ListOrganizations)
			admin.GET("/permissions", adminHandler.ListGrants)
			admin.PUT("/permissions", adminHandler.SetGrant)
			admin.GET("/audit/devices", adminHandler.AuditDevices)
			admin.DELETE("/devices/:id", adminHandler.HardDeleteDevice)
			admin.GET("/cache", adminHandler.GetCacheStats)
			admin.DELETE("/cache", adminHandler.ClearCache)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	s.log.Info("starting HTTP server", zap.String("port", port))
	return s.app.Run(":" + port)
}
