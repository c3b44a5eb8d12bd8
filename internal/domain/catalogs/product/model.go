// Package product provides the product catalog: the sellable goods
// referenced by inventory records and document lines.
package product

import (
	"context"
	"strings"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/entity"
	"shopledger/internal/core/types"
)

// Unit of measure for a product.
type Unit string

const (
	UnitPiece Unit = "pcs"
	UnitKg    Unit = "kg"
	UnitLiter Unit = "l"
	UnitPack  Unit = "pack"
	UnitBox   Unit = "box"
)

func isValidUnit(u Unit) bool {
	switch u {
	case UnitPiece, UnitKg, UnitLiter, UnitPack, UnitBox:
		return true
	}
	return false
}

// Product is a sellable good.
type Product struct {
	entity.Catalog

	// SKU is the stock keeping unit, unique when set.
	SKU string `db:"sku" json:"sku,omitempty"`

	// Barcode as scanned at the till.
	Barcode string `db:"barcode" json:"barcode,omitempty"`

	Category string `db:"category" json:"category,omitempty"`

	Unit Unit `db:"unit" json:"unit"`

	// DefaultPrice seeds the selling price of new inventory records.
	DefaultPrice types.Money `db:"default_price" json:"defaultPrice"`

	Description string `db:"description" json:"description,omitempty"`

	IsActive bool `db:"is_active" json:"isActive"`
}

// NewProduct creates a product with required fields.
func NewProduct(code, name string, unit Unit) *Product {
	return &Product{
		Catalog:  entity.NewCatalog(code, name),
		Unit:     unit,
		IsActive: true,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}
	if !isValidUnit(p.Unit) {
		return apperror.NewValidation("invalid unit").
			WithDetail("field", "unit").
			WithDetail("value", string(p.Unit))
	}
	if p.DefaultPrice.IsNegative() {
		return apperror.NewValidation("default price must not be negative").WithDetail("field", "defaultPrice")
	}
	if strings.ContainsAny(p.Barcode, " \t") {
		return apperror.NewValidation("barcode must not contain whitespace").WithDetail("field", "barcode")
	}
	return nil
}
