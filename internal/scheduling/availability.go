package scheduling

import (
	"github.com/tutorlane/booking-service/internal/domain"
	"github.com/tutorlane/booking-service/pkg/types"
)

// MarkAvailability flags each slot booked if it overlaps any confirmed
// reservation. Slots are returned in input order and never removed: a booked
// slot is rendered disabled, not hidden. O(slots × reservations), which is
// fine for a single day's grid.
func MarkAvailability(slots []domain.TimeSlot, reservations []*domain.Reservation) []domain.SlotAvailability {
	result := make([]domain.SlotAvailability, len(slots))

	for i, slot := range slots {
		result[i] = domain.SlotAvailability{
			Slot:   slot,
			Booked: slotBooked(slot, reservations),
		}
	}

	return result
}

// slotBooked reports whether the slot overlaps a confirmed reservation.
// Cancelled and completed reservations never block a slot.
func slotBooked(slot domain.TimeSlot, reservations []*domain.Reservation) bool {
	for _, r := range reservations {
		if !r.IsConfirmed() {
			continue
		}
		if Overlaps(slot.StartTime, slot.EndTime, r.StartTime, r.EndTime) {
			return true
		}
	}
	return false
}

// HasConflict reports whether [start, end) overlaps any confirmed reservation
// in the list, skipping the reservation with excludeID (0 = exclude nothing).
// Used by create and reschedule to check a proposed interval against a
// teacher's existing day.
func HasConflict(start, end types.TimeString, reservations []*domain.Reservation, excludeID int64) bool {
	for _, r := range reservations {
		if r.ID == excludeID && excludeID != 0 {
			continue
		}
		if !r.IsConfirmed() {
			continue
		}
		if Overlaps(start, end, r.StartTime, r.EndTime) {
			return true
		}
	}
	return false
}
