package scheduling

import (
	"fmt"
	"time"

	"github.com/tutorlane/booking-service/internal/domain"
)

// QuotaResult is the outcome of validating a requested booking duration
// against a student's monthly allowance
type QuotaResult struct {
	IsValid         bool
	Message         string
	MaxAllowedHours int
}

// ComputeUsage derives the monthly quota state from a student's reservations.
// Only confirmed reservations whose Date falls in now's calendar month and
// year are charged; cancelled and completed ones never count. Quota is
// consumed at booking time, so future confirmed lessons count too.
func ComputeUsage(plan domain.CoursePlan, reservations []*domain.Reservation, now time.Time) domain.CourseUsage {
	used := 0

	for _, r := range reservations {
		if !r.IsConfirmed() {
			continue
		}
		if r.Date.Year() != now.Year() || r.Date.Month() != now.Month() {
			continue
		}
		hours, err := r.DurationHours()
		if err != nil {
			continue
		}
		used += hours
	}

	remaining := plan.MonthlyHours - used
	if remaining < 0 {
		remaining = 0
	}

	percentage := 0.0
	if plan.MonthlyHours > 0 {
		percentage = float64(used) / float64(plan.MonthlyHours) * 100
	}

	return domain.CourseUsage{
		UsedHours:       used,
		RemainingHours:  remaining,
		TotalHours:      plan.MonthlyHours,
		UsagePercentage: percentage,
	}
}

// ValidateQuota checks a requested duration against the current usage.
// Rules are applied in order, first failing rule wins:
//  1. requestedHours <= 0 → invalid
//  2. requestedHours > remaining → invalid, reports the remaining hours
//  3. otherwise valid
func ValidateQuota(requestedHours int, usage domain.CourseUsage) QuotaResult {
	if requestedHours <= 0 {
		return QuotaResult{
			IsValid:         false,
			Message:         "reservation time must be at least 1 hour",
			MaxAllowedHours: usage.RemainingHours,
		}
	}

	if requestedHours > usage.RemainingHours {
		return QuotaResult{
			IsValid:         false,
			Message:         fmt.Sprintf("not enough hours left this month: %d remaining", usage.RemainingHours),
			MaxAllowedHours: usage.RemainingHours,
		}
	}

	return QuotaResult{
		IsValid:         true,
		MaxAllowedHours: usage.RemainingHours,
	}
}
