package request

// CreateBookingRequest is the booking form. Date and party size ranges are
// checked by the admission rules so every violation is reported together.
type CreateBookingRequest struct {
	BookingDate     string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	TimeSlot        string `json:"time_slot" validate:"required,timeslot"`
	NumberOfPeople  int    `json:"number_of_people"`
	SpecialRequests string `json:"special_requests" validate:"max=1000"`
}

type EditBookingRequest struct {
	NumberOfPeople int `json:"number_of_people"`
}

type BookingFilterRequest struct {
	PaginatedRequest
	Restaurant string `json:"restaurant" validate:"omitempty,slug"`
	Date       string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status     string `json:"status" validate:"omitempty,oneof=confirmed cancelled completed"`
}
