package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"touching boundary is not overlap", "09:00", "10:00", "10:00", "11:00", false},
		{"touching boundary reversed", "10:00", "11:00", "09:00", "10:00", false},
		{"partial overlap", "09:00", "10:00", "09:30", "10:30", true},
		{"identical intervals", "09:00", "10:00", "09:00", "10:00", true},
		{"contained interval", "09:00", "12:00", "10:00", "11:00", true},
		{"containing interval", "10:00", "11:00", "09:00", "12:00", true},
		{"disjoint intervals", "09:00", "10:00", "14:00", "15:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(
				toTime(tt.aStart), toTime(tt.aEnd),
				toTime(tt.bStart), toTime(tt.bEnd),
			)
			assert.Equal(t, tt.want, got)
		})
	}
}
