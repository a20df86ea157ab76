package response

import (
	"time"

	"restaurant-booking/internal/data/entity"
)

type BookingResponse struct {
	ID              string               `json:"id"`
	UserID          string               `json:"user_id"`
	RestaurantID    string               `json:"restaurant_id"`
	RestaurantName  string               `json:"restaurant_name,omitempty"`
	RestaurantSlug  string               `json:"restaurant_slug,omitempty"`
	BookingDate     string               `json:"booking_date"`
	TimeSlot        entity.TimeSlot      `json:"time_slot"`
	TimeSlotLabel   string               `json:"time_slot_label"`
	NumberOfPeople  int                  `json:"number_of_people"`
	SpecialRequests string               `json:"special_requests,omitempty"`
	Status          entity.BookingStatus `json:"status"`
	StatusLabel     string               `json:"status_label"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// BookingToResponse converts a booking; restaurant may be nil when it was not loaded.
func BookingToResponse(booking *entity.Booking, restaurant *entity.Restaurant) BookingResponse {
	resp := BookingResponse{
		ID:              booking.ID.String(),
		UserID:          booking.UserID.String(),
		RestaurantID:    booking.RestaurantID.String(),
		BookingDate:     booking.BookingDate.Format("2006-01-02"),
		TimeSlot:        booking.TimeSlot,
		TimeSlotLabel:   booking.TimeSlot.Label(),
		NumberOfPeople:  booking.NumberOfPeople,
		SpecialRequests: booking.SpecialRequests,
		Status:          booking.Status,
		StatusLabel:     booking.Status.Label(),
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}

	if restaurant != nil {
		resp.RestaurantName = restaurant.Name
		resp.RestaurantSlug = restaurant.Slug
	}

	return resp
}
