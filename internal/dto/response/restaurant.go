package response

import (
	"time"

	"restaurant-booking/internal/data/entity"
)

type RestaurantResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	PhoneNumber    string    `json:"phone_number"`
	Email          *string   `json:"email,omitempty"`
	Description    string    `json:"description"`
	IsActive       bool      `json:"is_active"`
	TableCapacity  int       `json:"table_capacity"`
	OnlineCapacity int       `json:"online_capacity"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type SlotAvailability struct {
	TimeSlot  entity.TimeSlot `json:"time_slot"`
	Label     string          `json:"label"`
	Booked    int             `json:"booked"`
	Remaining int             `json:"remaining"`
}

type AvailabilityResponse struct {
	Restaurant string             `json:"restaurant"`
	Date       string             `json:"date"`
	Capacity   int                `json:"online_capacity"`
	Slots      []SlotAvailability `json:"slots"`
}

type TimeSlotResponse struct {
	Value entity.TimeSlot `json:"value"`
	Label string          `json:"label"`
}

func RestaurantToResponse(restaurant *entity.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:             restaurant.ID.String(),
		Name:           restaurant.Name,
		Slug:           restaurant.Slug,
		Address:        restaurant.Address,
		City:           restaurant.City,
		PhoneNumber:    restaurant.PhoneNumber,
		Email:          restaurant.Email,
		Description:    restaurant.Description,
		IsActive:       restaurant.IsActive,
		TableCapacity:  restaurant.TableCapacity,
		OnlineCapacity: restaurant.OnlineCapacity,
		CreatedAt:      restaurant.CreatedAt,
		UpdatedAt:      restaurant.UpdatedAt,
	}
}

func TimeSlotsToResponse() []TimeSlotResponse {
	slots := make([]TimeSlotResponse, len(entity.TimeSlots))
	for i, slot := range entity.TimeSlots {
		slots[i] = TimeSlotResponse{Value: slot, Label: slot.Label()}
	}
	return slots
}
