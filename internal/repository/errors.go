package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors surfaced by repositories. Uniqueness is enforced by a
// single constrained INSERT/UPDATE; the unique-violation error is mapped
// here instead of a separate existence check, which would leave a race
// window between check and insert.
var (
	ErrNotFound      = errors.New("record not found")
	ErrUsernameTaken = errors.New("username already exists")
	ErrPINTaken      = errors.New("pin already exists")
)

const uniqueViolation = "23505"

// mapUniqueViolation translates PostgreSQL unique-constraint violations
// into the matching sentinel error, based on the violated constraint.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "username"):
		return ErrUsernameTaken
	case strings.Contains(pgErr.ConstraintName, "pin"):
		return ErrPINTaken
	}
	return err
}
