// Package dberrors maps low-level PostgreSQL errors onto conditions the
// repositories care about.
package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// unique_violation per the PostgreSQL error code catalog
const uniqueViolationCode = "23505"

// IsDuplicateConstraintError reports whether err is a unique violation
// raised by the named constraint. Repositories use it to translate
// insert races into their duplicate sentinels.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == uniqueViolationCode &&
		pgErr.ConstraintName == constraintName
}
