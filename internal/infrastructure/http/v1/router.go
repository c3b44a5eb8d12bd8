// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopledger/internal/domain/auth"
	"shopledger/internal/domain/catalogs/customer"
	"shopledger/internal/domain/catalogs/product"
	"shopledger/internal/domain/catalogs/shop"
	"shopledger/internal/domain/catalogs/supplier"
	"shopledger/internal/domain/inventory"
	"shopledger/internal/domain/purchases"
	"shopledger/internal/domain/reports"
	"shopledger/internal/domain/sales"
	"shopledger/internal/infrastructure/http/v1/handlers"
	"shopledger/internal/infrastructure/http/v1/middleware"
	"shopledger/pkg/logger"
)

// RouterConfig wires the services into the HTTP layer.
type RouterConfig struct {
	Pool   *pgxpool.Pool
	Logger *logger.Logger

	JWTValidator middleware.JWTValidator
	AuthService  *auth.Service

	Inventory *inventory.Service
	Sales     *sales.Service
	Purchases *purchases.Service
	Reports   *reports.Service
	Audit     handlers.AuditHistory

	Products  *product.Service
	Shops     *shop.Service
	Suppliers *supplier.Service
	Customers *customer.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Order matters: recovery outermost, errors rendered innermost.
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints, unauthenticated.
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	// Login, unauthenticated.
	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	router.POST("/api/v1/auth/login", authHandler.Login)

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg.JWTValidator))

	inventoryHandler := handlers.NewInventoryHandler(cfg.Inventory)
	inv := api.Group("/inventory")
	{
		inv.POST("", inventoryHandler.Create)
		inv.GET("", inventoryHandler.List)
		inv.GET("/:id", inventoryHandler.Get)
		inv.PUT("/:id/prices", inventoryHandler.UpdatePrices)
		inv.DELETE("/:id", middleware.RequireRole(string(auth.RoleAdmin), string(auth.RoleManager)), inventoryHandler.Delete)
		inv.POST("/:id/movements", inventoryHandler.ApplyToRecord)
		inv.POST("/transfers", inventoryHandler.Transfer)
	}
	api.POST("/stock-movements", inventoryHandler.Apply)
	api.GET("/stock-movements", inventoryHandler.ListMovements)

	salesHandler := handlers.NewSalesHandler(cfg.Sales)
	sl := api.Group("/sales")
	{
		sl.POST("", salesHandler.Create)
		sl.GET("", salesHandler.List)
		sl.GET("/:id", salesHandler.Get)
	}

	purchasesHandler := handlers.NewPurchasesHandler(cfg.Purchases)
	pu := api.Group("/purchases")
	{
		pu.POST("", purchasesHandler.Create)
		pu.GET("", purchasesHandler.List)
		pu.GET("/:id", purchasesHandler.Get)
		pu.POST("/:id/receive", purchasesHandler.Receive)
	}

	catalogsHandler := handlers.NewCatalogsHandler(cfg.Products, cfg.Shops, cfg.Suppliers, cfg.Customers)
	registerCatalogRoutes(api, catalogsHandler)

	auditHandler := handlers.NewAuditHandler(cfg.Audit)
	api.GET("/audit/:entityType/:id", middleware.RequireRole(string(auth.RoleAdmin)), auditHandler.EntityHistory)

	reportsHandler := handlers.NewReportsHandler(cfg.Reports)
	rp := api.Group("/reports")
	rp.Use(middleware.RequireRole(string(auth.RoleAdmin), string(auth.RoleManager)))
	{
		rp.GET("/profit-loss", reportsHandler.ProfitLoss)
		rp.GET("/cash-flow", reportsHandler.CashFlow)
		rp.GET("/dashboard", reportsHandler.Dashboard)
	}

	return router
}

func registerCatalogRoutes(api *gin.RouterGroup, h *handlers.CatalogsHandler) {
	adminOrManager := middleware.RequireRole(string(auth.RoleAdmin), string(auth.RoleManager))

	products := api.Group("/products")
	{
		products.POST("", adminOrManager, h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/barcode/:barcode", h.GetProductByBarcode)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", adminOrManager, h.UpdateProduct)
		products.DELETE("/:id", adminOrManager, h.DeleteProduct)
		products.POST("/:id/restore", adminOrManager, h.RestoreProduct)
	}

	shops := api.Group("/shops")
	{
		shops.POST("", adminOrManager, h.CreateShop)
		shops.GET("", h.ListShops)
		shops.GET("/:id", h.GetShop)
		shops.PUT("/:id", adminOrManager, h.UpdateShop)
		shops.DELETE("/:id", adminOrManager, h.DeleteShop)
		shops.POST("/:id/restore", adminOrManager, h.RestoreShop)
	}

	suppliers := api.Group("/suppliers")
	{
		suppliers.POST("", adminOrManager, h.CreateSupplier)
		suppliers.GET("", h.ListSuppliers)
		suppliers.GET("/:id", h.GetSupplier)
		suppliers.PUT("/:id", adminOrManager, h.UpdateSupplier)
		suppliers.DELETE("/:id", adminOrManager, h.DeleteSupplier)
		suppliers.POST("/:id/restore", adminOrManager, h.RestoreSupplier)
	}

	customers := api.Group("/customers")
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.ListCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", adminOrManager, h.DeleteCustomer)
		customers.POST("/:id/restore", adminOrManager, h.RestoreCustomer)
	}
}
