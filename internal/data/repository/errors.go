package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateActiveBooking is returned when the partial unique index on
	// (user, restaurant, date, slot) rejects an insert.
	ErrDuplicateActiveBooking = errors.New("active booking already exists for this slot")
	ErrRestaurantExists       = errors.New("restaurant already exists")
	ErrUserExists             = errors.New("user already exists")
	ErrUserNotFound           = errors.New("user not found")
	ErrSessionNotFound        = errors.New("session not found or already revoked")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

type scanner interface {
	Scan(dest ...any) error
}
