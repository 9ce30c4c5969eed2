// Package sqlxrepos implements the domain repositories against PostgreSQL
// using parameterized queries only.
package sqlxrepos

import (
	"github.com/lib/pq"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	uniqueViolation = pq.ErrorCode("23505")
	fkViolation     = pq.ErrorCode("23503")
)

// isUniqueViolation reports whether err is a unique-constraint violation,
// optionally on a specific constraint. Race losers on concurrent conflicting
// writes land here and get translated to domain Conflict errors.
func isUniqueViolation(err error, constraint string) bool {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return false
	}
	if pqErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// isFKViolation reports whether err is a foreign-key violation: a delete
// rejected by the store because other rows still reference the target.
func isFKViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == fkViolation
}
