// Package inventory provides the inventory record store and the stock
// movement ledger: the per-(product, shop) quantity rows and the
// append-only history of every change applied to them.
package inventory

import (
	"context"
	"time"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/id"
	"shopledger/internal/core/types"
)

// MovementType enumerates supported stock movements.
type MovementType string

const (
	// MovementIn represents incoming stock (purchase receipt, restock).
	MovementIn MovementType = "IN"
	// MovementOut represents outgoing stock (sale).
	MovementOut MovementType = "OUT"
	// MovementAdjustment overwrites the quantity with a literal target value.
	MovementAdjustment MovementType = "ADJUSTMENT"
	// MovementTransfer moves stock between shops.
	MovementTransfer MovementType = "TRANSFER"
	// MovementReturn represents customer returns coming back into stock.
	MovementReturn MovementType = "RETURN"
	// MovementDamage writes off damaged stock.
	MovementDamage MovementType = "DAMAGE"
)

// IsValid reports whether the movement type is known.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjustment, MovementTransfer, MovementReturn, MovementDamage:
		return true
	}
	return false
}

// Direction returns the sign the movement applies to stored quantity:
// +1 for additions, -1 for removals, 0 for ADJUSTMENT (overwrite).
func (t MovementType) Direction() int64 {
	switch t {
	case MovementIn, MovementReturn:
		return 1
	case MovementOut, MovementDamage, MovementTransfer:
		return -1
	default:
		return 0
	}
}

// Record is the per-product-per-shop stock quantity and pricing row.
// It is mutated exclusively through the movement applier.
type Record struct {
	ID           id.ID       `db:"id" json:"id"`
	ProductID    id.ID       `db:"product_id" json:"productId"`
	ShopID       id.ID       `db:"shop_id" json:"shopId"`
	Quantity     int64       `db:"quantity" json:"quantity"`
	ReservedQty  int64       `db:"reserved_qty" json:"reservedQty"`
	CostPrice    types.Money `db:"cost_price" json:"costPrice"`
	SellingPrice types.Money `db:"selling_price" json:"sellingPrice"`
	LastUpdated  time.Time   `db:"last_updated" json:"lastUpdated"`
}

// Movement is an immutable audit entry describing one quantity change.
// Created once per inventory-affecting operation; never updated or deleted.
type Movement struct {
	ID        id.ID        `db:"id" json:"id"`
	Type      MovementType `db:"movement_type" json:"type"`
	// Quantity is recorded as requested: the positive magnitude for
	// delta movements, the target value for ADJUSTMENT.
	Quantity    int64     `db:"quantity" json:"quantity"`
	PreviousQty int64     `db:"previous_qty" json:"previousQty"`
	NewQty      int64     `db:"new_qty" json:"newQty"`
	Reason      string    `db:"reason" json:"reason"`
	Reference   string    `db:"reference" json:"reference,omitempty"`
	ProductID   id.ID     `db:"product_id" json:"productId"`
	ShopID      id.ID     `db:"shop_id" json:"shopId"`
	UserID      id.ID     `db:"user_id" json:"userId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// CreateRecordInput describes a new inventory record.
type CreateRecordInput struct {
	ProductID       id.ID       `json:"productId"`
	ShopID          id.ID       `json:"shopId"`
	InitialQuantity int64       `json:"initialQuantity"`
	CostPrice       types.Money `json:"costPrice"`
	SellingPrice    types.Money `json:"sellingPrice"`
}

// Validate implements basic invariants for record creation.
func (in CreateRecordInput) Validate(_ context.Context) error {
	if id.IsNil(in.ProductID) {
		return apperror.NewValidation("product is required").WithDetail("field", "productId")
	}
	if id.IsNil(in.ShopID) {
		return apperror.NewValidation("shop is required").WithDetail("field", "shopId")
	}
	if in.InitialQuantity < 0 {
		return apperror.NewValidation("initial quantity must not be negative").WithDetail("field", "initialQuantity")
	}
	if in.CostPrice.IsNegative() {
		return apperror.NewValidation("cost price must not be negative").WithDetail("field", "costPrice")
	}
	if in.SellingPrice.IsNegative() {
		return apperror.NewValidation("selling price must not be negative").WithDetail("field", "sellingPrice")
	}
	return nil
}

// MovementInput describes a requested stock movement against a
// (product, shop) pair.
type MovementInput struct {
	Type      MovementType
	Quantity  int64
	Reason    string
	Reference string
	ProductID id.ID
	ShopID    id.ID
	ActorID   id.ID
}

// Validate checks movement invariants: a known type, and a quantity that
// is ≥1 for delta movements or ≥0 for ADJUSTMENT targets.
func (in MovementInput) Validate(_ context.Context) error {
	if !in.Type.IsValid() {
		return apperror.NewValidation("invalid movement type").WithDetail("type", string(in.Type))
	}
	if in.Type == MovementAdjustment {
		if in.Quantity < 0 {
			return apperror.NewValidation("adjustment target must not be negative").WithDetail("field", "quantity")
		}
		return nil
	}
	if in.Quantity < 1 {
		return apperror.NewValidation("quantity must be a positive integer").WithDetail("field", "quantity")
	}
	return nil
}

// TransferInput describes a stock transfer between two shops.
type TransferInput struct {
	ProductID id.ID
	SrcShopID id.ID
	DstShopID id.ID
	Quantity  int64
	Reason    string
	ActorID   id.ID
}

// Validate checks transfer invariants.
func (in TransferInput) Validate(_ context.Context) error {
	if id.IsNil(in.ProductID) {
		return apperror.NewValidation("product is required").WithDetail("field", "productId")
	}
	if id.IsNil(in.SrcShopID) || id.IsNil(in.DstShopID) {
		return apperror.NewValidation("source and destination shops are required")
	}
	if in.SrcShopID == in.DstShopID {
		return apperror.NewValidation("source and destination shops must differ")
	}
	if in.Quantity < 1 {
		return apperror.NewValidation("quantity must be a positive integer").WithDetail("field", "quantity")
	}
	return nil
}

// RecordFilter filters inventory record listings.
type RecordFilter struct {
	ShopID    *id.ID
	ProductID *id.ID
	// LowStockBelow returns records whose quantity is under the threshold.
	LowStockBelow *int64
	Limit         int
	Offset        int
}

// MovementFilter filters ledger listings.
type MovementFilter struct {
	ProductID *id.ID
	ShopID    *id.ID
	Type      *MovementType
	Reference string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}
