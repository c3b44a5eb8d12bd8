// Package numerator provides domain contracts for document auto-numbering.
// Implementations live in infrastructure layer.
package numerator

import (
	"context"
	"fmt"
)

// Generator generates sequential document numbers.
// This is the domain contract - implementations live in infrastructure layer.
//
// Numbers are allocated through an atomic database sequence, never by
// counting existing records: two concurrent submissions always observe
// distinct values.
type Generator interface {
	// Next generates the next document number for the configured kind.
	// Pattern: PREFIX-XXXXXX (e.g., SALE-000001)
	Next(ctx context.Context, cfg Config) (string, error)

	// SetNext sets the next number value (for migration purposes).
	SetNext(ctx context.Context, cfg Config, value int64) error
}

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "SALE", "PUR")
	Prefix string

	// PadWidth is the minimum number width (default 6)
	PadWidth int
}

// Format renders a counter value as a document number, zero-padded to
// the configured width.
func (c Config) Format(value int64) string {
	width := c.PadWidth
	if width <= 0 {
		width = 6
	}
	return fmt.Sprintf("%s-%0*d", c.Prefix, width, value)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:   prefix,
		PadWidth: 6,
	}
}

// Well-known document kinds.
var (
	// SaleConfig numbers point-of-sale documents: SALE-000001.
	SaleConfig = DefaultConfig("SALE")
	// PurchaseConfig numbers purchase orders: PUR-000001.
	PurchaseConfig = DefaultConfig("PUR")
)
