package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/billcraft-api/internal/config"
	"github.com/sangkips/billcraft-api/internal/presentation/http/handler"
	"github.com/sangkips/billcraft-api/internal/presentation/http/middleware"
	"github.com/sangkips/billcraft-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Profile  *handler.ProfileHandler
	Template *handler.TemplateHandler
	Invoice  *handler.InvoiceHandler
	Team     *handler.TeamHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	api := router.Group("/api")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(api, h)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-account rate limiter
		rateLimiter := middleware.NewAccountRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(api *gin.RouterGroup, h *Handlers) {
	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Session and account routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/profile", h.Auth.UpdateProfile)
	protected.PUT("/auth/change-password", h.Auth.ChangePassword)
	protected.DELETE("/auth/account", h.Auth.DeleteAccount)

	// Catalog
	catalog := protected.Group("")
	catalog.Use(middleware.RequireCapability("can_manage_catalog"))
	{
		catalog.POST("/services", h.Catalog.CreateService)
		catalog.PUT("/services/:id", h.Catalog.UpdateService)
		catalog.DELETE("/services/:id", h.Catalog.DeleteService)
		catalog.POST("/packages", h.Catalog.CreatePackage)
		catalog.PUT("/packages/:id", h.Catalog.UpdatePackage)
		catalog.DELETE("/packages/:id", h.Catalog.DeletePackage)
	}
	// Reads stay open to every team member so the composer can list
	// catalog entries.
	protected.GET("/services", h.Catalog.ListServices)
	protected.GET("/packages", h.Catalog.ListPackages)

	// Company profiles and payment methods
	profiles := protected.Group("")
	profiles.Use(middleware.RequireCapability("can_manage_profiles"))
	{
		profiles.POST("/company-profiles", h.Profile.CreateProfile)
		profiles.PUT("/company-profiles/:id", h.Profile.UpdateProfile)
		profiles.DELETE("/company-profiles/:id", h.Profile.DeleteProfile)
		profiles.POST("/payment-methods", h.Profile.CreatePaymentMethod)
		profiles.PUT("/payment-methods/:id", h.Profile.UpdatePaymentMethod)
		profiles.DELETE("/payment-methods/:id", h.Profile.DeletePaymentMethod)
	}
	protected.GET("/company-profiles", h.Profile.ListProfiles)
	protected.GET("/payment-methods", h.Profile.ListPaymentMethods)

	// Templates
	templates := protected.Group("")
	templates.Use(middleware.RequireCapability("can_manage_templates"))
	{
		templates.POST("/templates", h.Template.CreateTemplate)
		templates.PUT("/templates/:id", h.Template.UpdateTemplate)
		templates.DELETE("/templates/:id", h.Template.DeleteTemplate)
		templates.POST("/templates/:id/set-default", h.Template.SetDefaultTemplate)
	}
	protected.GET("/templates", h.Template.ListTemplates)
	protected.GET("/templates/:id", h.Template.GetTemplate)

	// Invoices. Capability checks live in the service layer because
	// visibility rules depend on who created each invoice.
	protected.POST("/invoices", h.Invoice.Create)
	protected.GET("/invoices", h.Invoice.List)
	protected.GET("/invoices/:id", h.Invoice.Get)
	protected.PUT("/invoices/:id", h.Invoice.Update)
	protected.DELETE("/invoices/:id", h.Invoice.Delete)
	protected.GET("/invoices/:id/render", h.Invoice.Render)
	protected.GET("/invoices/:id/export", h.Invoice.Export)

	// Team members
	team := protected.Group("/team-members")
	team.Use(middleware.RequireCapability("can_manage_team"))
	{
		team.POST("", h.Team.Create)
		team.GET("", h.Team.List)
		team.GET("/:id", h.Team.Get)
		team.PUT("/:id", h.Team.Update)
		team.DELETE("/:id", h.Team.Delete)
	}
}
