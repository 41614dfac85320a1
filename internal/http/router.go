package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/crypto/bcrypt"

	"github.com/jantavoice/backend/internal/ai"
	"github.com/jantavoice/backend/internal/config"
	"github.com/jantavoice/backend/internal/db"
	"github.com/jantavoice/backend/internal/geocode"
	"github.com/jantavoice/backend/internal/http/handlers"
	"github.com/jantavoice/backend/internal/http/middleware"

	_ "github.com/jantavoice/backend/docs"
)

func Router(cfg config.Config, store *db.Store, transcriber ai.Transcriber, extractor ai.FieldExtractor, assistant ai.Assistant, geocoder geocode.Geocoder, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		// Credentials cannot ride on a wildcard origin, so reflect the caller.
		corsCfg.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal().Err(err).Msg("admin password hash failed")
	}

	h := &handlers.Handler{
		Store:             store,
		Transcriber:       transcriber,
		Extractor:         extractor,
		Assistant:         assistant,
		Geocoder:          geocoder,
		Validator:         validator.New(),
		Logger:            logger,
		UploadDir:         cfg.UploadDir,
		AdminUsername:     cfg.AdminUsername,
		AdminPasswordHash: passwordHash,
		SessionTTL:        cfg.SessionTTL,
		CookieSecure:      cfg.CookieSecure,
	}

	r.GET("/healthz", h.Healthz)
	r.Static("/uploads", cfg.UploadDir)
	r.Static("/audios", cfg.UploadDir+"/audios")

	api := r.Group("/api")
	{
		api.POST("/complaint", h.CreateComplaint)
		api.POST("/complaint/women-child", h.WomenChildComplaint)
		api.GET("/complaint/:id", h.GetComplaint)
		api.POST("/pickup", h.CreatePickup)
		api.POST("/pickup/request", h.CreatePickup)
		api.GET("/pickup/options", h.PickupOptions)
		api.GET("/geocode", h.Geocode)
		api.GET("/voice-status", h.VoiceStatus)
		api.POST("/admin/login", h.Login)
		api.POST("/admin/logout", h.Logout)
	}

	// Management endpoints under /api/pickup, as the dashboard calls them.
	pickupAdmin := api.Group("/pickup")
	pickupAdmin.Use(middleware.AdminSession(store))
	{
		pickupAdmin.GET("/requests", h.ListPickups)
		pickupAdmin.GET("/request/:id", h.GetPickup)
		pickupAdmin.PUT("/request/:id/status", h.UpdatePickupStatus)
		pickupAdmin.GET("/stats", h.PickupStats)
		pickupAdmin.GET("/search", h.SearchPickups)
	}

	aiRoutes := api.Group("")
	aiRoutes.Use(middleware.RateLimit(cfg.AIRateRPM))
	{
		aiRoutes.POST("/complaint/voice", h.VoiceComplaint)
		aiRoutes.POST("/chat", h.Chat)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminSession(store))
	{
		admin.GET("/complaints", h.ListComplaints)
		admin.POST("/update-status", h.UpdateComplaintStatus)
		admin.POST("/update_status", h.UpdateComplaintStatus)
		admin.GET("/pickups", h.ListPickups)
		admin.GET("/pickups/stats", h.PickupStats)
		admin.GET("/pickups/search", h.SearchPickups)
		admin.GET("/pickups/:id", h.GetPickup)
		admin.PUT("/pickups/:id/status", h.UpdatePickupStatus)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
