package repo

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when no row matches, including owner-scoped lookups
// of rows that exist but belong to another user.
var ErrNotFound = errors.New("repo: not found")

// DuplicateError reports a unique constraint violation on Field.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string { return "repo: duplicate " + e.Field }

// uniqueViolation is the postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

var constraintFields = map[string]string{
	"users_username_key": "username",
	"users_email_key":    "email",
}

// translate maps driver errors onto the package's sentinel errors.
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		field := constraintFields[pqErr.Constraint]
		if field == "" {
			field = pqErr.Constraint
		}
		return &DuplicateError{Field: field}
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}
