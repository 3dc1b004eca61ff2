package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes that surface booking races the application-level check
// cannot see.
const (
	pgExclusionViolation    = "23P01"
	pgSerializationFailure  = "40001"
	pgUniqueViolation       = "23505"
)

// IsExclusionConflict reports whether err is the room exclusion constraint
// firing, i.e. a concurrent writer won the slot between our conflict scan and
// the insert.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

// IsSerializationFailure reports a transaction-level conflict the caller may
// retry.
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgSerializationFailure
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
