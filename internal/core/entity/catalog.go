// Package entity defines the shared shape of catalog entities:
// code+name reference data with soft deletion.
package entity

import (
	"context"
	"strings"
	"time"

	"shopledger/internal/core/apperror"
	"shopledger/internal/core/id"
)

// Validatable is implemented by every entity with invariants.
type Validatable interface {
	Validate(ctx context.Context) error
}

// Catalog is the embedded base for reference entities (products, shops,
// suppliers, customers). Deletion is a mark, not a row removal, so
// documents keep resolving their references.
type Catalog struct {
	ID           id.ID     `db:"id" json:"id"`
	Code         string    `db:"code" json:"code"`
	Name         string    `db:"name" json:"name"`
	DeletionMark bool      `db:"deletion_mark" json:"deletionMark"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// NewCatalog creates the base with a fresh id. Code may be empty; the
// owning service assigns one before persisting.
func NewCatalog(code, name string) Catalog {
	now := time.Now().UTC()
	return Catalog{
		ID:        id.New(),
		Code:      code,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks base invariants.
func (c *Catalog) Validate(_ context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if len(c.Name) > 250 {
		return apperror.NewValidation("name is too long").WithDetail("field", "name")
	}
	if len(c.Code) > 50 {
		return apperror.NewValidation("code is too long").WithDetail("field", "code")
	}
	return nil
}

// Touch bumps the update timestamp.
func (c *Catalog) Touch() {
	c.UpdatedAt = time.Now().UTC()
}

// GetID returns the entity id. Needed by generic code that only sees
// the type parameter.
func (c *Catalog) GetID() id.ID {
	return c.ID
}

// GetCode returns the entity code.
func (c *Catalog) GetCode() string {
	return c.Code
}

// SetCode assigns a generated code.
func (c *Catalog) SetCode(code string) {
	c.Code = code
}
