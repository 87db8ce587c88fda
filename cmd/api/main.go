package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/billcraft-api/internal/application/service"
	"github.com/sangkips/billcraft-api/internal/config"
	"github.com/sangkips/billcraft-api/internal/infrastructure/database"
	"github.com/sangkips/billcraft-api/internal/infrastructure/repository"
	"github.com/sangkips/billcraft-api/internal/presentation/http/handler"
	"github.com/sangkips/billcraft-api/internal/presentation/http/routes"
	"github.com/sangkips/billcraft-api/pkg/email"
	"github.com/sangkips/billcraft-api/pkg/oauth"
	"github.com/sangkips/billcraft-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	teamMemberRepo := repository.NewTeamMemberRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	profileRepo := repository.NewCompanyProfileRepository(db)
	methodRepo := repository.NewPaymentMethodRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.App.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, teamMemberRepo, passwordResetRepo, templateRepo, jwtManager, emailService, googleOAuthService)
	catalogService := service.NewCatalogService(serviceRepo, packageRepo)
	profileService := service.NewProfileService(profileRepo, methodRepo)
	templateService := service.NewTemplateService(templateRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, serviceRepo, packageRepo, profileRepo, methodRepo, templateRepo, cfg.Invoice.NumberPrefix)
	teamService := service.NewTeamService(teamMemberRepo, userRepo, emailService)

	// Initialize handlers
	cookieMaxAge := int(cfg.JWT.ExpiryHours / time.Second)
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService, cookieMaxAge),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Profile:  handler.NewProfileHandler(profileService),
		Template: handler.NewTemplateHandler(templateService),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
		Team:     handler.NewTeamHandler(teamService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s on port %s", cfg.App.Name, port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
