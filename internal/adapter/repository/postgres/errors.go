package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/gowallet/internal/domain"
)

// PostgreSQL error codes the adapter translates or retries.
const (
	pgErrUniqueViolation      = "23505"
	pgErrCheckViolation       = "23514"
	pgErrLockNotAvailable     = "55P03"
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
)

// Constraint names from the migrations. The check constraint doubles the
// engine's own funds check, so a violation here still surfaces as the
// domain rejection rather than a storage error.
const (
	constraintNonNegativeBalance = "wallets_non_negative_balance"
	constraintIdempotencyKey     = "entries_idempotency_key_unique"
)

// translateError maps storage-level failures onto domain errors at the
// repository boundary. Deadlock and serialization failures are left as-is for
// the Retrier to recognize.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			if pgErr.ConstraintName == constraintIdempotencyKey {
				return domain.ErrDuplicateEntry
			}
		case pgErrCheckViolation:
			if pgErr.ConstraintName == constraintNonNegativeBalance {
				return domain.ErrInsufficientFunds
			}
		case pgErrLockNotAvailable:
			return domain.ErrLockTimeout
		}

		return err
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return domain.ErrStoreUnavailable
	}

	return err
}
