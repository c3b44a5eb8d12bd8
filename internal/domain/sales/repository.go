package sales

import (
	"context"

	"shopledger/internal/core/id"
)

// Repository persists sale documents.
type Repository interface {
	Create(ctx context.Context, sale *Sale) error
	GetByID(ctx context.Context, saleID id.ID) (*Sale, error)
	List(ctx context.Context, filter Filter) ([]Sale, error)
}
