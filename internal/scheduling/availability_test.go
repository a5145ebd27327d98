package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorlane/booking-service/internal/domain"
	"github.com/tutorlane/booking-service/pkg/types"
)

func toTime(s string) types.TimeString {
	return types.TimeString(s)
}

func testReservation(id int64, start, end string, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:        id,
		StudentID: 100,
		TeacherID: 7,
		CourseID:  domain.PlanHalf,
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: toTime(start),
		EndTime:   toTime(end),
		Status:    status,
	}
}

func TestMarkAvailability_ConfirmedReservationBlocksExactlyItsSlot(t *testing.T) {
	slots, err := GenerateSlots(domain.DefaultBusinessHours(), 60)
	require.NoError(t, err)

	reservations := []*domain.Reservation{
		testReservation(1, "10:00", "11:00", domain.StatusConfirmed),
	}

	marked := MarkAvailability(slots, reservations)
	require.Len(t, marked, 9)

	for _, m := range marked {
		if m.Slot.StartTime == "10:00" {
			assert.True(t, m.Booked, "10:00 slot must be booked")
		} else {
			assert.False(t, m.Booked, "slot %s must stay available", m.Slot.StartTime)
		}
	}
}

func TestMarkAvailability_CancelledReservationDoesNotBlock(t *testing.T) {
	slots, err := GenerateSlots(domain.DefaultBusinessHours(), 60)
	require.NoError(t, err)

	reservations := []*domain.Reservation{
		testReservation(1, "10:00", "11:00", domain.StatusCancelled),
		testReservation(2, "14:00", "15:00", domain.StatusCompleted),
	}

	for _, m := range MarkAvailability(slots, reservations) {
		assert.False(t, m.Booked, "slot %s must stay available", m.Slot.StartTime)
	}
}

func TestMarkAvailability_KeepsBookedSlotsInList(t *testing.T) {
	slots, err := GenerateSlots(domain.DefaultBusinessHours(), 60)
	require.NoError(t, err)

	reservations := []*domain.Reservation{
		testReservation(1, "09:00", "11:00", domain.StatusConfirmed),
	}

	marked := MarkAvailability(slots, reservations)
	// Booked slots are flagged, never removed.
	require.Len(t, marked, len(slots))
	assert.True(t, marked[0].Booked)
	assert.True(t, marked[1].Booked)
	assert.False(t, marked[2].Booked)
}

func TestHasConflict(t *testing.T) {
	day := []*domain.Reservation{
		testReservation(1, "10:00", "11:00", domain.StatusConfirmed),
		testReservation(2, "13:00", "14:00", domain.StatusCancelled),
	}

	assert.True(t, HasConflict(toTime("10:30"), toTime("11:30"), day, 0))
	assert.False(t, HasConflict(toTime("11:00"), toTime("12:00"), day, 0), "back-to-back must not conflict")
	assert.False(t, HasConflict(toTime("13:00"), toTime("14:00"), day, 0), "cancelled must not conflict")
	assert.False(t, HasConflict(toTime("10:00"), toTime("11:00"), day, 1), "own reservation excluded when rescheduling")
}
