package domain

import (
	"time"

	"github.com/tutorlane/booking-service/pkg/types"
)

// ReservationStatus represents the status of a tutoring reservation
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// Valid returns true for a known status value
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal returns true for statuses that allow no further transitions
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Reservation represents a booked tutoring lesson.
// Reservations are never physically deleted: cancellation is a status change,
// so the history stays intact.
type Reservation struct {
	ID        int64
	StudentID int64
	TeacherID int64
	CourseID  PlanID
	Date      time.Time // calendar day, time-of-day stripped
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    ReservationStatus
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the reservation blocks its slot and consumes quota
func (r *Reservation) IsConfirmed() bool {
	return r.Status == StatusConfirmed
}

// CanBeCancelled returns true if the reservation can transition to cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusConfirmed
}

// CanBeCompleted returns true if the reservation can transition to completed
func (r *Reservation) CanBeCompleted() bool {
	return r.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the reservation time may still be changed
func (r *Reservation) CanBeRescheduled() bool {
	return r.Status == StatusConfirmed
}

// CanTransitionTo reports whether the status machine allows moving to target.
// The only legal transitions are confirmed → cancelled and confirmed → completed;
// cancelled and completed are terminal.
func (r *Reservation) CanTransitionTo(target ReservationStatus) bool {
	if r.Status != StatusConfirmed {
		return false
	}
	return target == StatusCancelled || target == StatusCompleted
}

// DurationMinutes returns the lesson length in minutes
func (r *Reservation) DurationMinutes() (int, error) {
	return r.StartTime.MinutesUntil(r.EndTime)
}

// DurationHours returns the lesson length in whole hours, rounding up partial
// hours. Quota accounting charges a started hour as a full hour.
func (r *Reservation) DurationHours() (int, error) {
	minutes, err := r.DurationMinutes()
	if err != nil {
		return 0, err
	}
	return (minutes + MinutesPerHour - 1) / MinutesPerHour, nil
}
