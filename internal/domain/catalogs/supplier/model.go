// Package supplier provides the supplier catalog referenced by
// purchase orders.
package supplier

import (
	"context"
	"regexp"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/entity"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Supplier is a goods vendor.
type Supplier struct {
	entity.Catalog

	ContactName string `db:"contact_name" json:"contactName,omitempty"`
	Phone       string `db:"phone" json:"phone,omitempty"`
	Email       string `db:"email" json:"email,omitempty"`
	Address     string `db:"address" json:"address,omitempty"`

	// TaxID is the supplier's VAT registration number.
	TaxID string `db:"tax_id" json:"taxId,omitempty"`

	IsActive bool `db:"is_active" json:"isActive"`
}

// NewSupplier creates a supplier with required fields.
func NewSupplier(code, name string) *Supplier {
	return &Supplier{
		Catalog:  entity.NewCatalog(code, name),
		IsActive: true,
	}
}

// Validate implements entity.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}
	if s.Email != "" && !emailRe.MatchString(s.Email) {
		return apperror.NewValidation("invalid email").WithDetail("field", "email")
	}
	return nil
}
