package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the id and audit columns of rows that change after insert.
type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func NewBase(now time.Time) Base {
	return Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

func (b *Base) Touch(now time.Time) {
	b.UpdatedAt = now
}

// BaseSimple is for append-only rows such as sessions.
type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
