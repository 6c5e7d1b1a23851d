package routes

import (
	"net/http"
	"time"

	"digibook/config"
	"digibook/handlers"
	"digibook/middleware"
	"digibook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RegisterWizardRoutes registers the session-backed booking wizard.
func RegisterWizardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/wizard/sessions")
	{
		api.POST("", hb.Wizard.CreateSession)
		api.GET("/:id", hb.Wizard.GetSession)
		api.DELETE("/:id", hb.Wizard.DeleteSession)

		api.PUT("/:id/service", hb.Wizard.SelectService)
		api.PATCH("/:id/details", hb.Wizard.UpdateDetails)
		api.PUT("/:id/contact", hb.Wizard.UpdateContact)
		api.POST("/:id/files", hb.Wizard.UploadFiles)
		api.DELETE("/:id/files/:fileId", hb.Wizard.RemoveFile)

		api.POST("/:id/advance", hb.Wizard.Advance)
		api.POST("/:id/retreat", hb.Wizard.Retreat)
		api.POST("/:id/jump", hb.Wizard.JumpTo)
		api.POST("/:id/change-service", hb.Wizard.ChangeService)

		api.GET("/:id/review", hb.Wizard.Review)
		api.POST("/:id/checkout", hb.Wizard.Checkout)
		api.POST("/:id/handoff", hb.Wizard.Handoff)
	}
}

// RegisterPaymentRoutes registers payment verification and the gateway webhook.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("/verify", hb.Payment.VerifyPayment)
		api.POST("/webhook", hb.Payment.Webhook)
	}
}

// RegisterCatalogueRoutes registers the public service list.
func RegisterCatalogueRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/services", hb.Services.GetAvailableServices)
}

// RegisterHealthRoute registers health and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Hi, I'm Digibook"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware())
		adminGroup.GET("/bookings", hb.Admin.ListBookingsHandler)
		adminGroup.GET("/bookings/:id", hb.Admin.GetBookingHandler)
	}
}

// corsConfig allows the storefront origin, or any origin without credentials when none is configured.
func corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if origin := config.AppConfig.PublicURL; origin != "" {
		cfg.AllowOrigins = []string{origin}
		cfg.AllowCredentials = true
	} else {
		cfg.AllowAllOrigins = true
	}
	return cfg
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, logger *zap.Logger) {
	r.Use(cors.New(corsConfig()))
	r.Use(func(c *gin.Context) {
		c.Set("logger", logger)
		c.Next()
	})
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin, logger))

	RegisterWizardRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterCatalogueRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterAdminRoutes(r, hb)
}
