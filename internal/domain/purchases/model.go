// Package purchases implements purchase orders: documents created
// against a supplier in a pending state, with stock entering the ledger
// only when the delivery is received.
package purchases

import (
	"context"
	"time"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/id"
	"shopledger/internal/core/types"
)

// Status of a purchase order.
type Status string

const (
	// StatusPending means ordered but not yet delivered. No inventory
	// effect exists yet.
	StatusPending Status = "PENDING"
	// StatusCompleted means the delivery was received and stock posted.
	StatusCompleted Status = "COMPLETED"
)

// Purchase is the order header.
type Purchase struct {
	ID          id.ID       `db:"id" json:"id"`
	Number      string      `db:"number" json:"number"`
	ShopID      id.ID       `db:"shop_id" json:"shopId"`
	SupplierID  id.ID       `db:"supplier_id" json:"supplierId"`
	Status      Status      `db:"status" json:"status"`
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`
	TaxAmount   types.Money `db:"tax_amount" json:"taxAmount"`
	FinalAmount types.Money `db:"final_amount" json:"finalAmount"`
	Notes       string      `db:"notes" json:"notes,omitempty"`
	CreatedBy   id.ID       `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	// DeliveryDate is the date the supplier promised; ReceivedAt is
	// when the delivery actually arrived.
	DeliveryDate *time.Time `db:"delivery_date" json:"deliveryDate,omitempty"`
	ReceivedAt   *time.Time `db:"received_at" json:"receivedAt,omitempty"`

	Items []Item `db:"-" json:"items"`
}

// Item is one purchase line. UnitPrice is the supplier cost price,
// which becomes the inventory record's cost price on receipt.
type Item struct {
	ID         id.ID       `db:"id" json:"id"`
	PurchaseID id.ID       `db:"purchase_id" json:"purchaseId"`
	ProductID  id.ID       `db:"product_id" json:"productId"`
	Quantity   int64       `db:"quantity" json:"quantity"`
	UnitPrice  types.Money `db:"unit_price" json:"unitPrice"`
	Discount   types.Money `db:"discount" json:"discount"`
	LineTotal  types.Money `db:"line_total" json:"lineTotal"`
}

// CreatePurchaseInput describes a purchase order submission.
type CreatePurchaseInput struct {
	ShopID       id.ID
	SupplierID   id.ID
	CreatedBy    id.ID
	Notes        string
	DeliveryDate *time.Time
	Items        []CreateItemInput
}

// CreateItemInput is one requested line.
type CreateItemInput struct {
	ProductID id.ID
	Quantity  int64
	UnitPrice types.Money
	Discount  types.Money
}

// Validate checks order invariants.
func (in CreatePurchaseInput) Validate(_ context.Context) error {
	if id.IsNil(in.ShopID) {
		return apperror.NewValidation("shop is required").WithDetail("field", "shopId")
	}
	if id.IsNil(in.SupplierID) {
		return apperror.NewValidation("supplier is required").WithDetail("field", "supplierId")
	}
	if len(in.Items) == 0 {
		return apperror.NewValidation("purchase must contain at least one item")
	}
	for i, item := range in.Items {
		if id.IsNil(item.ProductID) {
			return apperror.NewValidation("product is required").WithDetail("item", i)
		}
		if item.Quantity < 1 {
			return apperror.NewValidation("quantity must be a positive integer").WithDetail("item", i)
		}
		if item.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price must not be negative").WithDetail("item", i)
		}
		if item.Discount.IsNegative() {
			return apperror.NewValidation("discount must not be negative").WithDetail("item", i)
		}
	}
	return nil
}

// Filter narrows purchase listings.
type Filter struct {
	ShopID     *id.ID
	SupplierID *id.ID
	Status     *Status
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}
