// Package customer provides the customer catalog. Sales may reference
// a customer for receipts and loyalty; walk-in sales carry none.
package customer

import (
	"context"
	"regexp"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/entity"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Customer is a known buyer.
type Customer struct {
	entity.Catalog

	Phone string `db:"phone" json:"phone,omitempty"`
	Email string `db:"email" json:"email,omitempty"`

	LoyaltyPoints int64 `db:"loyalty_points" json:"loyaltyPoints"`

	IsActive bool `db:"is_active" json:"isActive"`
}

// NewCustomer creates a customer with required fields.
func NewCustomer(code, name string) *Customer {
	return &Customer{
		Catalog:  entity.NewCatalog(code, name),
		IsActive: true,
	}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}
	if c.Email != "" && !emailRe.MatchString(c.Email) {
		return apperror.NewValidation("invalid email").WithDetail("field", "email")
	}
	if c.LoyaltyPoints < 0 {
		return apperror.NewValidation("loyalty points must not be negative").WithDetail("field", "loyaltyPoints")
	}
	return nil
}
