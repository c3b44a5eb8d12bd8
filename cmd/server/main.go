// Package main is the entry point for the shopledger API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopledger/internal/domain/auth"
	"shopledger/internal/domain/catalogs/customer"
	"shopledger/internal/domain/catalogs/product"
	"shopledger/internal/domain/catalogs/shop"
	"shopledger/internal/domain/catalogs/supplier"
	"shopledger/internal/domain/inventory"
	"shopledger/internal/domain/purchases"
	"shopledger/internal/domain/reports"
	"shopledger/internal/domain/sales"
	v1 "shopledger/internal/infrastructure/http/v1"
	"shopledger/internal/infrastructure/numerator"
	"shopledger/internal/infrastructure/storage/postgres"
	"shopledger/internal/infrastructure/storage/postgres/auth_repo"
	"shopledger/internal/infrastructure/storage/postgres/catalog_repo"
	"shopledger/internal/infrastructure/storage/postgres/document_repo"
	"shopledger/internal/infrastructure/storage/postgres/inventory_repo"
	"shopledger/internal/infrastructure/storage/postgres/report_repo"
	"shopledger/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting shopledger server")

	// --- Database ---
	dsn := mustEnv("DATABASE_URL")
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	numbers := numerator.NewService(txManager)

	// --- Auth ---
	jwtSecret := mustEnv("JWT_SECRET")
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(jwtSecret))
	userRepo := auth_repo.NewUserRepo(txManager)
	authService := auth.NewService(userRepo, txManager, jwtService, auth.DefaultServiceConfig())

	// --- Domain services ---
	inventoryService := inventory.NewService(inventory_repo.NewRepo(txManager), txManager, auditService)
	salesService := sales.NewService(document_repo.NewSaleRepo(txManager), inventoryService, numbers, txManager)
	purchasesService := purchases.NewService(document_repo.NewPurchaseRepo(txManager), inventoryService, numbers, txManager)
	reportsService := reports.NewService(report_repo.NewRepo(txManager), txManager)

	productService := product.NewService(catalog_repo.NewProductRepo(txManager), numbers, txManager)
	shopService := shop.NewService(catalog_repo.NewShopRepo(txManager), numbers, txManager)
	supplierService := supplier.NewService(catalog_repo.NewSupplierRepo(txManager), numbers, txManager)
	customerService := customer.NewService(catalog_repo.NewCustomerRepo(txManager), numbers, txManager)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:         pool.Unwrap(),
		Logger:       log,
		JWTValidator: jwtService,
		AuthService:  authService,
		Inventory:    inventoryService,
		Sales:        salesService,
		Purchases:    purchasesService,
		Reports:      reportsService,
		Audit:        auditService,
		Products:     productService,
		Shops:        shopService,
		Suppliers:    supplierService,
		Customers:    customerService,
	})

	// --- HTTP server ---
	port := getEnv("PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
