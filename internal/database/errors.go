package database

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error codes for integrity constraint violations
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// IsUniqueViolation reports whether err is a unique constraint violation.
// These are the commit-time backstop for races the pre-checks cannot close
// (two orders grabbing the same seat, duplicate station coordinates).
func IsUniqueViolation(err error) bool {
	return pqCode(err) == pgUniqueViolation
}

// IsForeignKeyViolation reports whether err is a foreign key violation,
// i.e. a referenced id does not exist
func IsForeignKeyViolation(err error) bool {
	return pqCode(err) == pgForeignKeyViolation
}

// IsCheckViolation reports whether err is a check constraint violation
func IsCheckViolation(err error) bool {
	return pqCode(err) == pgCheckViolation
}

// ConstraintName returns the name of the violated constraint, if any
func ConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
