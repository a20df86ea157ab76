package entity

import "fmt"

// TimeSlot is one of the fixed daily seating windows. The stored value is
// the 24h key, Label gives the display form.
type TimeSlot string

const (
	SlotLunchEarly   TimeSlot = "12:00-13:30"
	SlotLunchLate    TimeSlot = "13:30-15:00"
	SlotAfternoon    TimeSlot = "15:00-16:30"
	SlotDinnerEarly  TimeSlot = "18:00-19:30"
	SlotDinnerMiddle TimeSlot = "19:30-21:00"
	SlotDinnerLate   TimeSlot = "21:00-22:30"
)

// TimeSlots lists the slots in serving order.
var TimeSlots = []TimeSlot{
	SlotLunchEarly,
	SlotLunchLate,
	SlotAfternoon,
	SlotDinnerEarly,
	SlotDinnerMiddle,
	SlotDinnerLate,
}

// ParseTimeSlot accepts either the stored key or the display label.
func ParseTimeSlot(s string) (TimeSlot, error) {
	for _, slot := range TimeSlots {
		if s == string(slot) || s == slot.Label() {
			return slot, nil
		}
	}
	return "", fmt.Errorf("invalid time slot %q", s)
}

func (t TimeSlot) Label() string {
	switch t {
	case SlotLunchEarly:
		return "12:00 PM - 1:30 PM"
	case SlotLunchLate:
		return "1:30 PM - 3:00 PM"
	case SlotAfternoon:
		return "3:00 PM - 4:30 PM"
	case SlotDinnerEarly:
		return "6:00 PM - 7:30 PM"
	case SlotDinnerMiddle:
		return "7:30 PM - 9:00 PM"
	case SlotDinnerLate:
		return "9:00 PM - 10:30 PM"
	default:
		return string(t)
	}
}

// Order is the position in the serving day, -1 for unknown slots.
func (t TimeSlot) Order() int {
	switch t {
	case SlotLunchEarly:
		return 0
	case SlotLunchLate:
		return 1
	case SlotAfternoon:
		return 2
	case SlotDinnerEarly:
		return 3
	case SlotDinnerMiddle:
		return 4
	case SlotDinnerLate:
		return 5
	default:
		return -1
	}
}
