package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-api/internal/config"
	domainRepo "github.com/sangkips/retail-api/internal/domain/repository"
	"github.com/sangkips/retail-api/internal/presentation/http/handler"
	"github.com/sangkips/retail-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Health      *handler.HealthHandler
	Product     *handler.ProductHandler
	Customer    *handler.CustomerHandler
	Transaction *handler.TransactionHandler
	Report      *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Logger          *slog.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ClientRateLimiter
	Now             func() time.Time
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/", h.Health.Root)

	api := router.Group("/api")
	api.GET("/health", h.Health.Health)

	limited := api.Group("")
	if deps.RateLimiter != nil {
		limited.Use(deps.RateLimiter.Middleware())
	}

	registerProductRoutes(limited, h)
	registerCustomerRoutes(limited, h)
	registerTransactionRoutes(limited, h, deps)
	registerReportRoutes(limited, h)

	return router
}

func registerProductRoutes(api *gin.RouterGroup, h *Handlers) {
	products := api.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerCustomerRoutes(api *gin.RouterGroup, h *Handlers) {
	customers := api.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/export", h.Customer.Export)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
		customers.GET("/:id/transactions", h.Customer.Transactions)
	}
}

func registerTransactionRoutes(api *gin.RouterGroup, h *Handlers, deps *Deps) {
	transactions := api.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		if deps.IdempotencyRepo != nil {
			// Retried sales must not decrement stock twice
			transactions.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
				Repo: deps.IdempotencyRepo,
				Now:  deps.Now,
			}), h.Transaction.Create)
		} else {
			transactions.POST("", h.Transaction.Create)
		}
	}
}

func registerReportRoutes(api *gin.RouterGroup, h *Handlers) {
	reports := api.Group("/reports")
	{
		reports.GET("/sales", h.Report.Sales)
		reports.GET("/sales/export", h.Report.ExportSales)
		reports.GET("/inventory", h.Report.Inventory)
		reports.GET("/inventory/export", h.Report.ExportInventory)
		reports.GET("/customers", h.Report.Customers)
		reports.GET("/customers/export", h.Report.ExportCustomers)
		reports.GET("/customers/top", h.Report.TopCustomers)
		reports.GET("/customers/recent", h.Report.RecentCustomers)
		reports.GET("/stock-movement", h.Report.StockMovement)
		reports.GET("/daily-sales", h.Report.DailySales)
		reports.GET("/top-products", h.Report.TopProducts)
		reports.GET("/dashboard", h.Report.Dashboard)
	}
}
