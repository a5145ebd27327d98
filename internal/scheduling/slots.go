// Package scheduling contains the pure reservation scheduling core: slot grid
// generation, interval overlap detection, availability filtering and monthly
// quota accounting. Everything here is deterministic and free of I/O; the
// wall clock, when needed, is passed in explicitly.
package scheduling

import (
	"fmt"

	"github.com/tutorlane/booking-service/internal/domain"
	"github.com/tutorlane/booking-service/pkg/types"
)

// GenerateSlots produces the ordered daily slot grid for the given business
// hours: back-to-back slots of exactly durationMinutes each, starting at open.
// A trailing slot that would run past close is dropped, not truncated.
func GenerateSlots(hours domain.BusinessHours, durationMinutes int) ([]domain.TimeSlot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("scheduling: duration must be positive, got %d", durationMinutes)
	}
	if err := hours.Open.Validate(); err != nil {
		return nil, err
	}
	if err := hours.Close.Validate(); err != nil {
		return nil, err
	}

	slots := make([]domain.TimeSlot, 0)
	current := hours.Open

	for current.IsBefore(hours.Close) {
		end, err := current.AddMinutes(durationMinutes)
		if err != nil {
			// Slot would cross midnight - nothing more fits.
			break
		}
		if end.IsAfter(hours.Close) {
			break
		}

		slots = append(slots, domain.TimeSlot{
			StartTime: current,
			EndTime:   end,
			Label:     fmt.Sprintf("%s - %s", current, end),
		})

		current = end
	}

	return slots, nil
}

// IsAligned reports whether [start, end) sits on the slot grid: start is a
// whole number of lesson durations after open, the length is a whole number of
// durations, and the interval stays inside business hours.
func IsAligned(start, end types.TimeString, policy domain.BookingPolicy) bool {
	if !start.IsBefore(end) {
		return false
	}
	if start.IsBefore(policy.Hours.Open) || end.IsAfter(policy.Hours.Close) {
		return false
	}

	offset, err := policy.Hours.Open.MinutesUntil(start)
	if err != nil {
		return false
	}
	length, err := start.MinutesUntil(end)
	if err != nil {
		return false
	}

	return offset%policy.LessonDurationMinutes == 0 && length%policy.LessonDurationMinutes == 0
}
