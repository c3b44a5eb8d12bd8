// Package shop provides the shop catalog. Shops are the stock-holding
// locations every inventory record and document belongs to.
package shop

import (
	"context"

	"shopledger/internal/core/entity"
)

// Shop is a retail location.
type Shop struct {
	entity.Catalog

	Address string `db:"address" json:"address,omitempty"`
	Phone   string `db:"phone" json:"phone,omitempty"`

	// IsActive gates new documents; inactive shops keep their history.
	IsActive bool `db:"is_active" json:"isActive"`
}

// NewShop creates a shop with required fields.
func NewShop(code, name string) *Shop {
	return &Shop{
		Catalog:  entity.NewCatalog(code, name),
		IsActive: true,
	}
}

// Validate implements entity.Validatable.
func (s *Shop) Validate(ctx context.Context) error {
	return s.Catalog.Validate(ctx)
}
