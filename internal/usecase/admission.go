package usecase

import (
	"fmt"
	"time"

	"restaurant-booking/internal/data/entity"
	"restaurant-booking/pkg/utils"
)

const (
	fieldBookingDate    = "booking_date"
	fieldTimeSlot       = "time_slot"
	fieldNumberOfPeople = "number_of_people"
	fieldStatus         = "status"
)

const (
	msgDateNotFuture   = "Booking date must be after today."
	msgDuplicateBucket = "You already have a booking for this restaurant at the selected date and time."
	msgNotEditable     = "Only confirmed bookings can be edited."
)

var (
	msgDateTooFar   = fmt.Sprintf("Bookings can only be made up to %d days in advance.", entity.MaxAdvanceDays)
	msgPartyOutside = fmt.Sprintf("Number of people must be between %d and %d.", entity.MinPartySize, entity.MaxPartySize)
)

// todayIn is the calendar date of now in loc.
func todayIn(now time.Time, loc *time.Location) time.Time {
	return utils.DateOf(now.In(loc))
}

// checkBookingDate accepts dates in (today, today+MaxAdvanceDays].
func checkBookingDate(date, today time.Time) string {
	if !date.After(today) {
		return msgDateNotFuture
	}
	if date.After(today.AddDate(0, 0, entity.MaxAdvanceDays)) {
		return msgDateTooFar
	}
	return ""
}

func checkPartySize(n int) string {
	if n < entity.MinPartySize || n > entity.MaxPartySize {
		return msgPartyOutside
	}
	return ""
}

func remainingCapacity(capacity, occupancy int) int {
	if remaining := capacity - occupancy; remaining > 0 {
		return remaining
	}
	return 0
}

func capacityMessage(partySize, remaining int) string {
	return fmt.Sprintf(
		"Sorry, we cannot accommodate %d people at this time due to capacity limits. Only %d more people can be accommodated.",
		partySize, remaining)
}

func editCapacityMessage(remaining int) string {
	return fmt.Sprintf(
		"Cannot update booking due to capacity limits. Only %d more people can be accommodated.",
		remaining)
}
