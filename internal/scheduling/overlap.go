package scheduling

import "github.com/tutorlane/booking-service/pkg/types"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. The inequalities are strict: intervals that only
// touch at an endpoint do NOT overlap, which is what allows back-to-back
// bookings with no gap.
//
// Examples:
//   - 09:00-10:00 vs 10:00-11:00 → no overlap (touching boundary)
//   - 09:00-10:00 vs 09:30-10:30 → overlap
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return bStart.IsBefore(aEnd) && bEnd.IsAfter(aStart)
}
