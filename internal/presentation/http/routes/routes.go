package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/config"
	domainRepo "github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/repository"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/presentation/http/handler"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/presentation/http/middleware"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Customer  *handler.CustomerHandler
	Product   *handler.ProductHandler
	Brand     *handler.BrandHandler
	Sale      *handler.SaleHandler
	Payment   *handler.PaymentHandler
	Return    *handler.ReturnHandler
	Statement *handler.StatementHandler
	Report    *handler.ReportHandler
	Settings  *handler.SettingsHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
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

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-client rate limiter; sweep intervals use the defaults.
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.GetProfile)
	protected.PUT("/auth/change-password", h.Auth.ChangePassword)

	// Settings
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", h.Settings.UpdateSettings)

	// Users
	registerUserRoutes(protected, h)

	// Customers
	registerCustomerRoutes(protected, h)

	// Products
	registerProductRoutes(protected, h)

	// Brands
	registerBrandRoutes(protected, h)

	// Sales
	registerSaleRoutes(protected, h, deps)

	// Payments
	registerPaymentRoutes(protected, h, deps)

	// Returns
	registerReturnRoutes(protected, h, deps)

	// Customer statements
	registerStatementRoutes(protected, h)

	// Reports
	registerReportRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/phone/:phone", h.Customer.GetByPhone)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.POST("/import", h.Product.Import)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/:slug", h.Product.Get)
		products.PUT("/:slug", h.Product.Update)
		products.DELETE("/:slug", h.Product.Delete)
		products.POST("/:slug/adjust-stock", h.Product.AdjustStock)
	}
}

func registerBrandRoutes(protected *gin.RouterGroup, h *Handlers) {
	brands := protected.Group("/brands")
	{
		brands.GET("", h.Brand.List)
		brands.POST("", h.Brand.Create)
		brands.GET("/:slug", h.Brand.Get)
		brands.PUT("/:slug", h.Brand.Update)
		brands.DELETE("/:slug", h.Brand.Delete)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := protected.Group("/sales")
	{
		// Sale creation uses idempotency middleware to prevent duplicates
		requireKey := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		})
		replayKey := middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		})

		sales.GET("", h.Sale.List)
		sales.POST("", requireKey, h.Sale.Create)
		sales.POST("/manual-balance", requireKey, h.Sale.CreateManualBalance)
		sales.GET("/due", h.Sale.GetDueSales)
		sales.GET("/:id", h.Sale.Get)
		sales.PUT("/:id", replayKey, h.Sale.Update)
		sales.DELETE("/:id", h.Sale.Delete)
		sales.GET("/:id/payments", h.Payment.ListForSale)
	}
}

func registerPaymentRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	payments := protected.Group("/payments")
	{
		// Payment creation uses idempotency middleware to prevent duplicates
		requireKey := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		})
		replayKey := middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		})

		payments.GET("", h.Payment.List)
		payments.POST("", requireKey, h.Payment.Create)
		payments.GET("/daily-collections", h.Payment.GetDailyCollections)
		payments.GET("/:id", h.Payment.Get)
		payments.PUT("/:id", replayKey, h.Payment.Update)
		payments.DELETE("/:id", h.Payment.Delete)
	}
}

func registerReturnRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	returns := protected.Group("/returns")
	{
		requireKey := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		})

		returns.GET("", h.Return.List)
		returns.POST("", requireKey, h.Return.Create)
		returns.GET("/:id", h.Return.Get)
		returns.DELETE("/:id", h.Return.Delete)
	}
}

func registerStatementRoutes(protected *gin.RouterGroup, h *Handlers) {
	statements := protected.Group("/statements")
	{
		statements.GET("/:phone", h.Statement.Get)
		statements.GET("/:phone/export", h.Statement.Export)
		statements.POST("/:phone/email", h.Statement.Email)
		statements.POST("/:phone/print", h.Printer.PrintStatement)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	{
		reports.GET("/dashboard", h.Report.GetDashboard)
		reports.GET("/top-debtors", h.Report.GetTopDebtors)
		reports.GET("/sales-by-brand", h.Report.GetSalesByBrand)
		reports.GET("/daily-sales", h.Report.GetDailySales)
		reports.GET("/payment-methods", h.Report.GetPaymentMethodTotals)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/receipt", h.Printer.PrintReceipt)
	}
}
