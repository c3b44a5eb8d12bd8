// Package tx defines the transaction boundary contract the domain
// depends on. The postgres implementation lives in infrastructure; the
// manager is always an explicit injected dependency, never a
// process-wide handle.
package tx

import "context"

// Manager runs a function inside a database transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
// A nested call joins the transaction already open on the context, so
// a document posting and the stock effects it triggers share one
// atomic scope.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager additionally supports read-only transactions for
// report queries.
type ReadOnlyManager interface {
	Manager

	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
