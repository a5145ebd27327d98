package domain

import "github.com/tutorlane/booking-service/pkg/types"

// BusinessHours is the daily booking window shared by all teachers
type BusinessHours struct {
	Open  types.TimeString
	Close types.TimeString
}

// DefaultBusinessHours returns the standard 09:00-18:00 window
func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		Open:  types.TimeString(DefaultOpenTime),
		Close: types.TimeString(DefaultCloseTime),
	}
}

// BookingPolicy bundles the process-wide scheduling configuration
type BookingPolicy struct {
	Hours                 BusinessHours
	LessonDurationMinutes int
}

// DefaultBookingPolicy returns the standard policy: 09:00-18:00, 60-minute lessons
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		Hours:                 DefaultBusinessHours(),
		LessonDurationMinutes: DefaultLessonDurationMinutes,
	}
}

// TimeSlot is one bookable interval on the daily grid.
// Generated, never persisted.
type TimeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Label     string
}

// SlotAvailability pairs a slot with its booked flag. Booked slots stay in the
// list so the UI can render them disabled instead of hiding them.
type SlotAvailability struct {
	Slot   TimeSlot
	Booked bool
}
