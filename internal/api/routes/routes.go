package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/openreception/porteiro/internal/api/handlers"
	"github.com/openreception/porteiro/internal/api/middleware"
	"github.com/openreception/porteiro/internal/config"
	"github.com/openreception/porteiro/internal/metrics"
	"github.com/openreception/porteiro/internal/models"
	"github.com/openreception/porteiro/internal/screening"
	"github.com/openreception/porteiro/internal/services"
)

// Register wires up API routes and performs automatic migrations.
func Register(router *gin.Engine, db *gorm.DB, cfg config.Config) error {
	if err := db.AutoMigrate(
		&models.Operator{},
		&models.DocumentType{},
		&models.Destination{},
		&models.Visitor{},
		&models.CheckIn{},
		&models.CommonRestriction{},
		&models.PartialRestriction{},
		&models.PredictiveRestriction{},
		&models.Occurrence{},
		&models.Setting{},
		&models.NotificationProvider{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics.Register(registry)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	router.GET("/api/v1/health", handlers.HealthHandler)

	api := router.Group("/api/v1")

	authService := services.NewAuthService(db, cfg)
	authHandler := handlers.NewAuthHandler(authService)
	authMiddleware := middleware.AuthMiddleware(authService)

	notificationService := services.NewNotificationService(db)
	settingsService := services.NewSettingsService(db)
	visitorService := services.NewVisitorService(db)
	restrictionService := services.NewRestrictionService(db)
	occurrenceService := services.NewOccurrenceService(db)
	authorizationService := services.NewAuthorizationService(db)

	resolver := screening.NewResolver(db)
	emitter := screening.NewEmitter(occurrenceService, settingsService)
	checkInService := services.NewCheckInService(
		db, visitorService, resolver, authorizationService, emitter, notificationService)

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register", authHandler.Register)

	protected := api.Group("/")
	protected.Use(authMiddleware)
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.Me)
		protected.POST("/auth/change-password", authHandler.ChangePassword)

		// Visitor directory and catalogs
		visitorHandler := handlers.NewVisitorHandler(visitorService)
		protected.GET("/visitors", visitorHandler.List)
		protected.GET("/directory/lookup", visitorHandler.Lookup)
		protected.GET("/visitors/:id", visitorHandler.Get)
		protected.POST("/visitors", visitorHandler.Create)
		protected.GET("/destinations", visitorHandler.ListDestinations)
		protected.POST("/destinations", visitorHandler.CreateDestination)
		protected.GET("/document-types", visitorHandler.ListDocumentTypes)
		protected.POST("/document-types", visitorHandler.CreateDocumentType)

		// Screening: standalone resolve + step-up gate
		screeningHandler := handlers.NewScreeningHandler(resolver, authorizationService)
		protected.POST("/screening/resolve", screeningHandler.Resolve)
		protected.POST("/screening/authorize", screeningHandler.Authorize)

		// Check-ins
		checkInHandler := handlers.NewCheckInHandler(checkInService)
		protected.POST("/check-ins", checkInHandler.Create)
		protected.POST("/check-ins/:id/check-out", checkInHandler.CheckOut)
		protected.GET("/check-ins", checkInHandler.List)

		// Restrictions. Writes are supervisor-and-up.
		restrictionHandler := handlers.NewRestrictionHandler(restrictionService)
		protected.GET("/restrictions/common", restrictionHandler.ListCommon)
		protected.GET("/restrictions/common/:id", restrictionHandler.GetCommon)
		protected.GET("/restrictions/partial", restrictionHandler.ListPartials)
		protected.GET("/restrictions/predictive", restrictionHandler.ListPredictives)

		manage := protected.Group("/")
		manage.Use(middleware.RequireRole(models.RoleSupervisor, models.RoleSecurityChief, models.RoleAdmin))
		{
			manage.POST("/restrictions/common", restrictionHandler.CreateCommon)
			manage.POST("/restrictions/common/:id/activate", restrictionHandler.ActivateCommon)
			manage.POST("/restrictions/common/:id/deactivate", restrictionHandler.DeactivateCommon)
			manage.POST("/restrictions/bulk-activate", restrictionHandler.BulkActivateCommon)
			manage.POST("/restrictions/partial", restrictionHandler.CreatePartial)
			manage.POST("/restrictions/predictive", restrictionHandler.CreatePredictive)
		}

		// Occurrence audit trail (append-only)
		occurrenceHandler := handlers.NewOccurrenceHandler(occurrenceService)
		protected.GET("/occurrences", occurrenceHandler.List)
		protected.POST("/occurrences", occurrenceHandler.Create)

		// Settings and notification providers are admin-only.
		admin := protected.Group("/")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			settingsHandler := handlers.NewSettingsHandler(settingsService)
			admin.GET("/settings", settingsHandler.GetSettings)
			admin.POST("/settings", settingsHandler.UpdateSetting)

			providerHandler := handlers.NewNotificationProviderHandler(notificationService)
			admin.GET("/notifications/providers", providerHandler.List)
			admin.POST("/notifications/providers", providerHandler.Create)
			admin.DELETE("/notifications/providers/:id", providerHandler.Delete)
		}
	}

	return nil
}
