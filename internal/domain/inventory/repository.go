package inventory

import (
	"context"

	"shopledger/internal/core/id"
)

// Repository is the persistence contract for inventory records and the
// movement ledger. Quantity mutations are single-statement and
// conditional so no check-then-write race is possible.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, recordID id.ID) (*Record, error)
	GetByProductShop(ctx context.Context, productID, shopID id.ID) (*Record, error)
	List(ctx context.Context, filter RecordFilter) ([]Record, error)

	// AdjustQuantity atomically applies a signed delta, refusing any
	// change that would take the quantity below zero. On success it
	// returns the quantity before and after the change. A conditional
	// miss surfaces as a not-found error from the driver; callers
	// disambiguate missing row vs insufficient stock.
	AdjustQuantity(ctx context.Context, recordID id.ID, delta int64) (prev, current int64, err error)

	// SetQuantity overwrites the quantity with a literal target,
	// returning the value it replaced and the new value.
	SetQuantity(ctx context.Context, recordID id.ID, target int64) (prev, current int64, err error)

	// UpdatePrices updates pricing fields without touching quantity.
	UpdatePrices(ctx context.Context, rec *Record) error

	Delete(ctx context.Context, recordID id.ID) error

	InsertMovement(ctx context.Context, mv *Movement) error
	ListMovements(ctx context.Context, filter MovementFilter) ([]Movement, error)
}
