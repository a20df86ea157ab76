package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch status := BookingStatus(s); status {
	case BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return status, nil
	default:
		return "", fmt.Errorf("invalid booking status %q", s)
	}
}

// Label is the human readable status shown to guests.
func (s BookingStatus) Label() string {
	switch s {
	case BookingStatusConfirmed:
		return "Confirmed"
	case BookingStatusCancelled:
		return "Cancelled"
	case BookingStatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Active bookings block a duplicate for the same user and bucket.
func (s BookingStatus) Active() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCompleted:
		return true
	case BookingStatusCancelled:
		return false
	default:
		return false
	}
}

const (
	MinPartySize   = 1
	MaxPartySize   = 6
	MaxAdvanceDays = 180
)

type Booking struct {
	Base
	UserID          uuid.UUID     `db:"user_id"`
	RestaurantID    uuid.UUID     `db:"restaurant_id"`
	BookingDate     time.Time     `db:"booking_date"`
	TimeSlot        TimeSlot      `db:"time_slot"`
	NumberOfPeople  int           `db:"number_of_people"`
	SpecialRequests string        `db:"special_requests"`
	Status          BookingStatus `db:"status"`
}

func (b *Booking) Bucket() Bucket {
	return Bucket{
		RestaurantID: b.RestaurantID,
		Date:         b.BookingDate,
		Slot:         b.TimeSlot,
	}
}

// Bucket is the (restaurant, date, slot) tuple sharing one online capacity pool.
type Bucket struct {
	RestaurantID uuid.UUID
	Date         time.Time
	Slot         TimeSlot
}

// Key identifies the bucket for advisory locking.
func (b Bucket) Key() string {
	return fmt.Sprintf("booking:%s:%s:%s", b.RestaurantID, b.Date.Format("2006-01-02"), b.Slot)
}
