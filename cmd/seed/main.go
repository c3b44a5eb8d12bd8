// Package main provides a CLI tool for seeding the database with an
// admin account and optional demo data.
package main

import (
	"context"
	"fmt"
	"os"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/types"
	"shopledger/internal/domain/auth"
	"shopledger/internal/domain/catalogs/product"
	"shopledger/internal/domain/catalogs/shop"
	"shopledger/internal/domain/catalogs/supplier"
	"shopledger/internal/domain/inventory"
	"shopledger/internal/infrastructure/numerator"
	"shopledger/internal/infrastructure/storage/postgres"
	"shopledger/internal/infrastructure/storage/postgres/auth_repo"
	"shopledger/internal/infrastructure/storage/postgres/catalog_repo"
	"shopledger/internal/infrastructure/storage/postgres/inventory_repo"
	"shopledger/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)
	numbers := numerator.NewService(txManager)

	jwtService := auth.NewJWTService(auth.DefaultJWTConfig("seed-only"))
	authService := auth.NewService(auth_repo.NewUserRepo(txManager), txManager, jwtService, auth.DefaultServiceConfig())

	if err := seedAdminUser(ctx, authService, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		products := product.NewService(catalog_repo.NewProductRepo(txManager), numbers, txManager)
		shops := shop.NewService(catalog_repo.NewShopRepo(txManager), numbers, txManager)
		suppliers := supplier.NewService(catalog_repo.NewSupplierRepo(txManager), numbers, txManager)
		stock := inventory.NewService(inventory_repo.NewRepo(txManager), txManager, nil)

		if err := seedDemoData(ctx, products, shops, suppliers, stock, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, authService *auth.Service, log *logger.Logger) error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@shopledger.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	user, err := authService.Register(ctx, auth.RegisterInput{
		Email:     email,
		Password:  password,
		FirstName: "Admin",
		Role:      auth.RoleAdmin,
	})
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeValidation {
			log.Infow("admin user already exists", "email", email)
			return nil
		}
		return err
	}

	log.Infow("admin user created", "email", email, "user_id", user.ID)
	return nil
}

func seedDemoData(
	ctx context.Context,
	products *product.Service,
	shops *shop.Service,
	suppliers *supplier.Service,
	stock *inventory.Service,
	log *logger.Logger,
) error {
	mainShop := shop.NewShop("", "Main Street Store")
	mainShop.Address = "12 Main Street"
	if err := shops.Create(ctx, mainShop); err != nil {
		return fmt.Errorf("create shop: %w", err)
	}

	branch := shop.NewShop("", "Harbour Branch")
	branch.Address = "3 Harbour Road"
	if err := shops.Create(ctx, branch); err != nil {
		return fmt.Errorf("create shop: %w", err)
	}

	vendor := supplier.NewSupplier("", "Acme Wholesale")
	vendor.Email = "orders@acme-wholesale.example"
	if err := suppliers.Create(ctx, vendor); err != nil {
		return fmt.Errorf("create supplier: %w", err)
	}

	demo := []struct {
		name    string
		barcode string
		price   string
	}{
		{"Mineral Water 500ml", "4800000000011", "1.50"},
		{"Whole Wheat Bread", "4800000000028", "3.20"},
		{"Ground Coffee 250g", "4800000000035", "8.90"},
	}

	for _, d := range demo {
		p := product.NewProduct("", d.name, product.UnitPiece)
		p.Barcode = d.barcode
		p.DefaultPrice = types.MustMoney(d.price)
		if err := products.Create(ctx, p); err != nil {
			return fmt.Errorf("create product %q: %w", d.name, err)
		}

		cost := p.DefaultPrice.Mul(types.MustMoney("0.6")).Round(2)
		_, err := stock.CreateRecord(ctx, inventory.CreateRecordInput{
			ProductID:       p.ID,
			ShopID:          mainShop.ID,
			InitialQuantity: 100,
			CostPrice:       cost,
			SellingPrice:    p.DefaultPrice,
		})
		if err != nil {
			return fmt.Errorf("create inventory record for %q: %w", d.name, err)
		}
	}

	log.Infow("demo data created",
		"shops", 2,
		"suppliers", 1,
		"products", len(demo),
	)
	return nil
}
