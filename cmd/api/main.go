package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/application/scheduler"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/application/service"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/config"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/infrastructure/database"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/infrastructure/repository"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/presentation/http/handler"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/presentation/http/routes"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/email"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/printer"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/utils"
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

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	saleItemRepo := repository.NewSaleItemRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	returnRepo := repository.NewReturnRepository(db)
	returnItemRepo := repository.NewReturnItemRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service when SMTP is configured. Statement emailing
	// stays disabled otherwise and the API reports it as unconfigured.
	var emailService *email.EmailService
	if cfg.SMTP.Host != "" {
		emailService = email.NewEmailService(email.EmailConfig{
			SMTPHost:     cfg.SMTP.Host,
			SMTPPort:     cfg.SMTP.Port,
			SMTPUsername: cfg.SMTP.Username,
			SMTPPassword: cfg.SMTP.Password,
			FromName:     cfg.SMTP.FromName,
			FromEmail:    cfg.SMTP.FromEmail,
		})
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	customerService := service.NewCustomerService(customerRepo)
	brandService := service.NewBrandService(brandRepo)
	productService := service.NewProductService(productRepo, brandRepo)
	saleService := service.NewSaleService(saleRepo, saleItemRepo, paymentRepo, productRepo, customerRepo)
	paymentService := service.NewPaymentService(paymentRepo, saleRepo)
	returnService := service.NewReturnService(returnRepo, returnItemRepo, saleRepo, productRepo)
	statementService := service.NewStatementService(customerRepo, saleRepo, paymentRepo, returnRepo, settingsRepo, emailService)
	reportService := service.NewReportService(analyticsRepo, customerRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, saleRepo, paymentRepo, settingsRepo, cfg.Printer.Type)

	// Start the overdue scanner
	if cfg.Scheduler.Enabled {
		overdueScanner := scheduler.NewOverdueScanner(
			cfg.Scheduler.OverdueSpec,
			saleRepo,
			analyticsRepo,
			settingsRepo,
			idempotencyRepo,
		)
		if err := overdueScanner.Start(); err != nil {
			log.Printf("Warning: Failed to start overdue scanner: %v", err)
		} else {
			defer overdueScanner.Stop()
		}
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
		Customer:  handler.NewCustomerHandler(customerService),
		Product:   handler.NewProductHandler(productService),
		Brand:     handler.NewBrandHandler(brandService),
		Sale:      handler.NewSaleHandler(saleService),
		Payment:   handler.NewPaymentHandler(paymentService),
		Return:    handler.NewReturnHandler(returnService),
		Statement: handler.NewStatementHandler(statementService),
		Report:    handler.NewReportHandler(reportService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Printer:   handler.NewPrinterHandler(printerService, statementService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
