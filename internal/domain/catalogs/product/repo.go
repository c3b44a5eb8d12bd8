package product

import (
	"context"

	"shopledger/internal/domain"
)

// Repository defines Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// GetByBarcode resolves a till scan to a product.
	GetByBarcode(ctx context.Context, barcode string) (*Product, error)
}
