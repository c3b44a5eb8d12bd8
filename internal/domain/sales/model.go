// Package sales implements point-of-sale documents: a sale header with
// its line items, posted together with the stock effects they cause.
package sales

import (
	"context"
	"time"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/id"
	"shopledger/internal/core/types"
)

// Status of a sale document.
type Status string

const (
	// StatusCompleted is the terminal state a sale is created in.
	// Sales post their stock effects immediately.
	StatusCompleted Status = "COMPLETED"
)

// PaymentMethod enumerates accepted payment instruments.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentMobile   PaymentMethod = "MOBILE"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

// IsValid reports whether the payment method is known.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobile, PaymentTransfer:
		return true
	}
	return false
}

// Sale is the document header.
type Sale struct {
	ID            id.ID         `db:"id" json:"id"`
	Number        string        `db:"number" json:"number"`
	ShopID        id.ID         `db:"shop_id" json:"shopId"`
	CustomerID    *id.ID        `db:"customer_id" json:"customerId,omitempty"`
	CashierID     id.ID         `db:"cashier_id" json:"cashierId"`
	Status        Status        `db:"status" json:"status"`
	PaymentMethod PaymentMethod `db:"payment_method" json:"paymentMethod"`
	TotalAmount   types.Money   `db:"total_amount" json:"totalAmount"`
	TaxAmount     types.Money   `db:"tax_amount" json:"taxAmount"`
	FinalAmount   types.Money   `db:"final_amount" json:"finalAmount"`
	Notes         string        `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"createdAt"`

	Items []Item `db:"-" json:"items"`
}

// Item is one sale line.
type Item struct {
	ID        id.ID       `db:"id" json:"id"`
	SaleID    id.ID       `db:"sale_id" json:"saleId"`
	ProductID id.ID       `db:"product_id" json:"productId"`
	Quantity  int64       `db:"quantity" json:"quantity"`
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`
	Discount  types.Money `db:"discount" json:"discount"`
	LineTotal types.Money `db:"line_total" json:"lineTotal"`
}

// CreateSaleInput describes a sale submission.
type CreateSaleInput struct {
	ShopID        id.ID
	CustomerID    *id.ID
	CashierID     id.ID
	PaymentMethod PaymentMethod
	Notes         string
	Items         []CreateItemInput
}

// CreateItemInput is one requested line.
type CreateItemInput struct {
	ProductID id.ID
	Quantity  int64
	UnitPrice types.Money
	Discount  types.Money
}

// Validate checks document-level and line-level invariants.
func (in CreateSaleInput) Validate(_ context.Context) error {
	if id.IsNil(in.ShopID) {
		return apperror.NewValidation("shop is required").WithDetail("field", "shopId")
	}
	if !in.PaymentMethod.IsValid() {
		return apperror.NewValidation("invalid payment method").WithDetail("paymentMethod", string(in.PaymentMethod))
	}
	if len(in.Items) == 0 {
		return apperror.NewValidation("sale must contain at least one item")
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

// Filter narrows sale listings.
type Filter struct {
	ShopID     *id.ID
	CustomerID *id.ID
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}
