package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type slotForm struct {
	Date  string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	Slot  string `json:"time_slot" validate:"required,timeslot"`
	Slug  string `json:"slug" validate:"omitempty,slug"`
	Guest string `validate:"max=3"`
}

func TestValidateStruct(t *testing.T) {
	valid := slotForm{Date: "2025-08-01", Slot: "7:30 PM - 9:00 PM", Slug: "blue-door"}
	assert.Empty(t, ValidateStruct(valid))

	errs := ValidateStruct(slotForm{Date: "08/01/2025", Slot: "17:00-18:00", Slug: "Blue Door", Guest: "toolong"})

	assert.Equal(t, map[string]string{
		"booking_date": "Must be a date in 2006-01-02 format",
		"time_slot":    "Select a valid time slot",
		"slug":         "Must contain only lowercase letters, digits and hyphens",
		"Guest":        "Maximum value is 3",
	}, errs)
}

func TestValidateStruct_Required(t *testing.T) {
	errs := ValidateStruct(slotForm{})

	assert.Equal(t, "This field is required", errs["booking_date"])
	assert.Equal(t, "This field is required", errs["time_slot"])
	assert.NotContains(t, errs, "slug")
}

func TestFormatValidationErrors(t *testing.T) {
	got := FormatValidationErrors(map[string]string{
		"time_slot":    "Select a valid time slot",
		"booking_date": "Booking date must be after today.",
	})

	assert.Equal(t, "booking_date: Booking date must be after today.; time_slot: Select a valid time slot", got)
}
