package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes surfaced by the repositories.
const (
	// SQLStateUniqueViolation - duplicate key value violates unique constraint
	SQLStateUniqueViolation = "23505"
	// SQLStateCheckViolation - new row violates check constraint
	SQLStateCheckViolation = "23514"
	// SQLStateSerializationFailure - could not serialize access
	SQLStateSerializationFailure = "40001"
	// SQLStateDeadlockDetected - deadlock detected
	SQLStateDeadlockDetected = "40P01"
)

// IsUniqueViolation reports whether err is a unique-constraint violation.
func IsUniqueViolation(err error) bool {
	return hasSQLState(err, SQLStateUniqueViolation)
}

// IsCheckViolation reports whether err is a check-constraint violation.
func IsCheckViolation(err error) bool {
	return hasSQLState(err, SQLStateCheckViolation)
}

// IsSerializationFailure reports whether err is a retryable concurrency
// failure (serialization failure or deadlock).
func IsSerializationFailure(err error) bool {
	return hasSQLState(err, SQLStateSerializationFailure) ||
		hasSQLState(err, SQLStateDeadlockDetected)
}

func hasSQLState(err error, state string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == state
	}
	return false
}
