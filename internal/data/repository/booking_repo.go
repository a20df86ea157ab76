package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const activeBookingIndex = "uq_bookings_active_user_bucket"

type BookingFilter struct {
	UserID       *uuid.UUID
	RestaurantID *uuid.UUID
	Date         *time.Time
	Status       *entity.BookingStatus
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, limit, offset int, filter BookingFilter) ([]*entity.Booking, error)
	CountAll(ctx context.Context, filter BookingFilter) (int64, error)
	UpdatePartySize(ctx context.Context, id uuid.UUID, numberOfPeople int) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error

	// Admission queries
	HasActiveBooking(ctx context.Context, userID uuid.UUID, bucket entity.Bucket) (bool, error)
	SumConfirmedPeople(ctx context.Context, bucket entity.Bucket, excludeID uuid.UUID) (int, error)
	SumConfirmedPeopleByDate(ctx context.Context, restaurantID uuid.UUID, date time.Time) (map[entity.TimeSlot]int, error)

	// CompletePast marks confirmed bookings dated before today as completed.
	// A nil userID sweeps every user.
	CompletePast(ctx context.Context, userID *uuid.UUID, today time.Time) (int64, error)

	// WithinBucket runs fn in a transaction holding an advisory lock on the
	// bucket, so occupancy reads and the following write are serialised.
	WithinBucket(ctx context.Context, bucket entity.Bucket, fn func(tx BookingRepository) error) error
}

type bookingRepository struct {
	db   database.PgxIface
	q    database.Querier
	inTx bool
	log  *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		q:   db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, restaurant_id, booking_date, time_slot, number_of_people,
		       special_requests, status, created_at, updated_at`

func scanBooking(row scanner, booking *entity.Booking) error {
	return row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.RestaurantID,
		&booking.BookingDate,
		&booking.TimeSlot,
		&booking.NumberOfPeople,
		&booking.SpecialRequests,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.RestaurantID,
		booking.BookingDate,
		booking.TimeSlot,
		booking.NumberOfPeople,
		booking.SpecialRequests,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if isUniqueViolation(err, activeBookingIndex) {
		r.log.Warn("Duplicate active booking rejected by index",
			zap.String("user_id", booking.UserID.String()),
			zap.String("bucket", booking.Bucket().Key()),
		)
		return ErrDuplicateActiveBooking
	}
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("restaurant_id", booking.RestaurantID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := scanBooking(r.q.QueryRow(ctx, query, id), &booking)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (f BookingFilter) buildWhere() (string, []any) {
	var (
		clauses []string
		args    []any
	)

	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.UserID != nil {
		add("user_id = $%d", *f.UserID)
	}
	if f.RestaurantID != nil {
		add("restaurant_id = $%d", *f.RestaurantID)
	}
	if f.Date != nil {
		add("booking_date = $%d", *f.Date)
	}
	if f.Status != nil {
		add("status = $%d", *f.Status)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// FindAll lists bookings newest date first; slot keys sort chronologically.
func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int, filter BookingFilter) ([]*entity.Booking, error) {
	where, args := filter.buildWhere()
	query := `SELECT ` + bookingColumns + ` FROM bookings` + where +
		fmt.Sprintf(" ORDER BY booking_date DESC, time_slot, created_at LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		if err := scanBooking(rows, &booking); err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountAll(ctx context.Context, filter BookingFilter) (int64, error) {
	where, args := filter.buildWhere()

	var count int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) UpdatePartySize(ctx context.Context, id uuid.UUID, numberOfPeople int) error {
	query := `UPDATE bookings SET number_of_people = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.q.Exec(ctx, query, id, numberOfPeople)
	if err != nil {
		r.log.Error("Failed to update booking party size",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.Int("number_of_people", numberOfPeople),
		)
		return fmt.Errorf("update booking %s party size: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.q.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) HasActiveBooking(ctx context.Context, userID uuid.UUID, bucket entity.Bucket) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE user_id = $1 AND restaurant_id = $2 AND booking_date = $3 AND time_slot = $4
			  AND status <> 'cancelled'
		)
	`

	var exists bool
	err := r.q.QueryRow(ctx, query, userID, bucket.RestaurantID, bucket.Date, bucket.Slot).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check active booking",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("bucket", bucket.Key()),
		)
		return false, fmt.Errorf("check active booking in %s: %w", bucket.Key(), err)
	}

	return exists, nil
}

// SumConfirmedPeople returns the occupancy of a bucket. Pass uuid.Nil as
// excludeID to count every confirmed booking.
func (r *bookingRepository) SumConfirmedPeople(ctx context.Context, bucket entity.Bucket, excludeID uuid.UUID) (int, error) {
	query := `
		SELECT COALESCE(SUM(number_of_people), 0)
		FROM bookings
		WHERE restaurant_id = $1 AND booking_date = $2 AND time_slot = $3
		  AND status = 'confirmed'
		  AND id <> $4
	`

	var total int
	err := r.q.QueryRow(ctx, query, bucket.RestaurantID, bucket.Date, bucket.Slot, excludeID).Scan(&total)
	if err != nil {
		r.log.Error("Failed to sum bucket occupancy",
			zap.Error(err),
			zap.String("bucket", bucket.Key()),
		)
		return 0, fmt.Errorf("sum occupancy of %s: %w", bucket.Key(), err)
	}

	return total, nil
}

func (r *bookingRepository) SumConfirmedPeopleByDate(ctx context.Context, restaurantID uuid.UUID, date time.Time) (map[entity.TimeSlot]int, error) {
	query := `
		SELECT time_slot, COALESCE(SUM(number_of_people), 0)
		FROM bookings
		WHERE restaurant_id = $1 AND booking_date = $2 AND status = 'confirmed'
		GROUP BY time_slot
	`

	rows, err := r.q.Query(ctx, query, restaurantID, date)
	if err != nil {
		r.log.Error("Failed to sum occupancy by date",
			zap.Error(err),
			zap.String("restaurant_id", restaurantID.String()),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("sum occupancy for restaurant %s: %w", restaurantID.String(), err)
	}
	defer rows.Close()

	occupancy := make(map[entity.TimeSlot]int)
	for rows.Next() {
		var (
			slot  entity.TimeSlot
			total int
		)
		if err := rows.Scan(&slot, &total); err != nil {
			return nil, fmt.Errorf("scan occupancy row: %w", err)
		}
		occupancy[slot] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate occupancy rows: %w", err)
	}

	return occupancy, nil
}

func (r *bookingRepository) CompletePast(ctx context.Context, userID *uuid.UUID, today time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = 'completed', updated_at = NOW()
		WHERE status = 'confirmed' AND booking_date < $1
	`
	args := []any{today}
	if userID != nil {
		query += ` AND user_id = $2`
		args = append(args, *userID)
	}

	result, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to complete past bookings",
			zap.Error(err),
			zap.Time("today", today),
		)
		return 0, fmt.Errorf("complete past bookings: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *bookingRepository) WithinBucket(ctx context.Context, bucket entity.Bucket, fn func(tx BookingRepository) error) error {
	if r.inTx {
		return fn(r)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin bucket transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, bucket.Key()); err != nil {
		r.log.Error("Failed to lock bucket",
			zap.Error(err),
			zap.String("bucket", bucket.Key()),
		)
		return fmt.Errorf("lock bucket %s: %w", bucket.Key(), err)
	}

	txRepo := &bookingRepository{db: r.db, q: tx, inTx: true, log: r.log}
	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit bucket transaction: %w", err)
	}

	return nil
}
