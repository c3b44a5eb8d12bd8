// Package numerator implements gapless document numbering on top of a
// single-row upsert in sys_sequences. Concurrent callers serialize on
// the row lock, so each receives a distinct value.
package numerator

import (
	"context"
	"fmt"

	"shopledger/internal/core/numerator"
	"shopledger/internal/infrastructure/storage/postgres"
)

// QuerierProvider yields the querier bound to the current transaction,
// falling back to the pool outside one. Satisfied by postgres.TxManager.
type QuerierProvider interface {
	GetQuerier(ctx context.Context) postgres.Querier
}

// Service is the production numerator.Generator.
type Service struct {
	db QuerierProvider
}

// NewService constructs the generator.
func NewService(db QuerierProvider) *Service {
	return &Service{db: db}
}

var _ numerator.Generator = (*Service)(nil)

// Next atomically increments the counter for the prefix and returns the
// formatted number. The first call for a prefix yields value 1.
func (s *Service) Next(ctx context.Context, cfg numerator.Config) (string, error) {
	const q = `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE
		SET current_val = sys_sequences.current_val + 1
		RETURNING current_val`

	var val int64
	if err := s.db.GetQuerier(ctx).QueryRow(ctx, q, cfg.Prefix).Scan(&val); err != nil {
		return "", fmt.Errorf("next sequence value for %q: %w", cfg.Prefix, err)
	}
	return cfg.Format(val), nil
}

// SetNext positions the counter so the next call to Next returns value.
// Used by data seeding and migration tooling.
func (s *Service) SetNext(ctx context.Context, cfg numerator.Config, value int64) error {
	const q = `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE
		SET current_val = EXCLUDED.current_val`

	if _, err := s.db.GetQuerier(ctx).Exec(ctx, q, cfg.Prefix, value-1); err != nil {
		return fmt.Errorf("set sequence value for %q: %w", cfg.Prefix, err)
	}
	return nil
}
