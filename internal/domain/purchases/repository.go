package purchases

import (
	"context"
	"time"

	"shopledger/internal/core/id"
)

// Repository persists purchase orders.
type Repository interface {
	Create(ctx context.Context, p *Purchase) error
	GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error)
	List(ctx context.Context, filter Filter) ([]Purchase, error)

	// MarkReceived flips a PENDING purchase to COMPLETED. The status
	// guard is part of the statement; a miss on an existing purchase
	// means it was already received.
	MarkReceived(ctx context.Context, purchaseID id.ID, receivedAt time.Time) error
}
