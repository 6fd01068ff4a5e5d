package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/billing-api/internal/config"
	"github.com/sangkips/billing-api/internal/domain/enum"
	domainRepo "github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/internal/presentation/http/handler"
	"github.com/sangkips/billing-api/internal/presentation/http/middleware"
	"github.com/sangkips/billing-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Cart     *handler.CartHandler
	Bill     *handler.BillHandler
	Product  *handler.ProductHandler
	Customer *handler.CustomerHandler
	Expense  *handler.ExpenseHandler
	Purchase *handler.PurchaseHandler
	Report   *handler.ReportHandler
	Settings *handler.SettingsHandler
	Profile  *handler.ProfileHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *slog.Logger
	// MetricsHandler serves /metrics; promhttp.Handler() when nil
	MetricsHandler http.Handler
}

var (
	managers = []enum.StaffRole{enum.StaffRoleOwner, enum.StaffRoleManager}
	bookkeep = []enum.StaffRole{enum.StaffRoleOwner, enum.StaffRoleManager, enum.StaffRoleAccountant}
)

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	handler.RegisterValidators()

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	metricsHandler := deps.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	router.GET("/metrics", gin.WrapH(metricsHandler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		v1.POST("/auth/login", h.Auth.Login)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-staff rate limiter
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: deps.Cfg.RateLimit.RequestsPerSecond,
			Burst:             deps.Cfg.RateLimit.Burst,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth
	protected.GET("/auth/me", h.Auth.Me)
	protected.POST("/auth/change-password", h.Auth.ChangePassword)

	registerCartRoutes(protected, h, deps)
	registerBillRoutes(protected, h)
	registerSettingsRoutes(protected, h)
	registerProductRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerExpenseRoutes(protected, h)
	registerPurchaseRoutes(protected, h)
	registerReportRoutes(protected, h)
	registerStaffRoutes(protected, h)

	// Business profile
	protected.GET("/profile", h.Profile.Get)
	protected.PUT("/profile", middleware.RequireRole(managers...), h.Profile.Update)

	// Printer
	protected.GET("/printer/status", h.Printer.GetStatus)
	protected.POST("/printer/test", h.Printer.TestPrint)
}

func registerCartRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	cart := protected.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:product_id", h.Cart.UpdateQuantity)
		cart.PUT("/items/:product_id/discount", h.Cart.SetLineDiscount)
		cart.DELETE("/items/:product_id", h.Cart.RemoveItem)
		cart.PUT("/discount", h.Cart.ApplyDiscount)
		cart.PUT("/customer", h.Cart.SelectCustomer)
		// Retried checkouts with the same key return the first bill
		cart.POST("/checkout", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo:   deps.IdempotencyRepo,
			TTL:    deps.Cfg.Billing.IdempotencyTTL,
			Logger: deps.Logger,
		}), h.Cart.Checkout)
	}
}

func registerBillRoutes(protected *gin.RouterGroup, h *Handlers) {
	bills := protected.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		bills.GET("/:id", h.Bill.Get)
		bills.GET("/:id/receipt", h.Bill.Receipt)
		bills.GET("/:id/pdf", h.Bill.PDF)
		bills.POST("/:id/print", h.Bill.Print)
	}
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers) {
	settings := protected.Group("/settings")
	{
		settings.GET("", h.Settings.GetAll)
		settings.GET("/options", h.Settings.Options)
		settings.GET("/payment-modes/enabled", h.Settings.EnabledPaymentModes)
		settings.GET("/:section", h.Settings.GetSection)

		writes := settings.Group("")
		writes.Use(middleware.RequireRole(managers...))
		writes.POST("/reset", h.Settings.ResetAll)
		writes.PATCH("/:section", h.Settings.UpdateSection)
		writes.POST("/:section/reset", h.Settings.ResetSection)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/barcode/:barcode", h.Product.GetByBarcode)
		products.GET("/import/template", h.Product.ImportTemplate)
		products.GET("/:id", h.Product.Get)

		writes := products.Group("")
		writes.Use(middleware.RequireRole(managers...))
		writes.POST("", h.Product.Create)
		writes.POST("/import", h.Product.Import)
		writes.PUT("/:id", h.Product.Update)
		writes.DELETE("/:id", h.Product.Delete)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/stats", h.Customer.Stats)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", middleware.RequireRole(managers...), h.Customer.Delete)
	}
}

func registerExpenseRoutes(protected *gin.RouterGroup, h *Handlers) {
	expenses := protected.Group("/expenses")
	expenses.Use(middleware.RequireRole(bookkeep...))
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
		expenses.GET("/stats", h.Expense.Stats)
		expenses.GET("/:id", h.Expense.Get)
		expenses.PUT("/:id", h.Expense.Update)
		expenses.DELETE("/:id", h.Expense.Delete)
	}
}

func registerPurchaseRoutes(protected *gin.RouterGroup, h *Handlers) {
	purchases := protected.Group("/purchases")
	purchases.Use(middleware.RequireRole(bookkeep...))
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", h.Purchase.Create)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.POST("/:id/pay", h.Purchase.Pay)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	// The dashboard is the counter's home screen, so every role sees it
	protected.GET("/reports/dashboard", h.Report.Dashboard)

	reports := protected.Group("/reports")
	reports.Use(middleware.RequireRole(bookkeep...))
	{
		reports.GET("/stock", h.Report.Stock)
		reports.GET("/gst/gstr1", h.Report.GSTR1)
		reports.GET("/gst/hsn", h.Report.HSNSummary)
		reports.GET("/gst/monthly", h.Report.MonthlyGST)
		reports.GET("/gst/export", h.Report.ExportGST)
	}
}

func registerStaffRoutes(protected *gin.RouterGroup, h *Handlers) {
	staff := protected.Group("/staff")
	staff.Use(middleware.RequireRole(managers...))
	{
		staff.GET("", h.Auth.ListStaff)
		staff.POST("", middleware.RequireRole(enum.StaffRoleOwner), h.Auth.CreateStaff)
		staff.PUT("/:id", middleware.RequireRole(enum.StaffRoleOwner), h.Auth.UpdateStaff)
	}
}
