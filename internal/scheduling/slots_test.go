package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorlane/booking-service/internal/domain"
	"github.com/tutorlane/booking-service/pkg/types"
)

func TestGenerateSlots_StandardDay(t *testing.T) {
	hours := domain.BusinessHours{Open: "09:00", Close: "18:00"}

	slots, err := GenerateSlots(hours, 60)
	require.NoError(t, err)
	require.Len(t, slots, 9)

	assert.Equal(t, types.TimeString("09:00"), slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), slots[0].EndTime)
	assert.Equal(t, "09:00 - 10:00", slots[0].Label)

	assert.Equal(t, types.TimeString("17:00"), slots[8].StartTime)
	assert.Equal(t, types.TimeString("18:00"), slots[8].EndTime)

	// Ascending, back-to-back.
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].EndTime, slots[i].StartTime)
		assert.True(t, slots[i-1].StartTime.IsBefore(slots[i].StartTime))
	}
}

func TestGenerateSlots_DropsPartialTrailingSlot(t *testing.T) {
	// 09:00-18:30 with 60-minute lessons: the 18:00-19:00 slot would run past
	// close, so it is dropped rather than truncated.
	hours := domain.BusinessHours{Open: "09:00", Close: "18:30"}

	slots, err := GenerateSlots(hours, 60)
	require.NoError(t, err)
	require.Len(t, slots, 9)
	assert.Equal(t, types.TimeString("18:00"), slots[8].EndTime)
}

func TestGenerateSlots_WindowShorterThanLesson(t *testing.T) {
	hours := domain.BusinessHours{Open: "09:00", Close: "09:30"}

	slots, err := GenerateSlots(hours, 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	hours := domain.DefaultBusinessHours()

	first, err := GenerateSlots(hours, 60)
	require.NoError(t, err)
	second, err := GenerateSlots(hours, 60)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateSlots_InvalidInput(t *testing.T) {
	_, err := GenerateSlots(domain.BusinessHours{Open: "09:00", Close: "18:00"}, 0)
	assert.Error(t, err)

	_, err = GenerateSlots(domain.BusinessHours{Open: "9am", Close: "18:00"}, 60)
	assert.Error(t, err)
}

func TestIsAligned(t *testing.T) {
	policy := domain.DefaultBookingPolicy()

	assert.True(t, IsAligned("09:00", "10:00", policy))
	assert.True(t, IsAligned("17:00", "18:00", policy))
	assert.True(t, IsAligned("10:00", "12:00", policy)) // two back-to-back slots

	assert.False(t, IsAligned("09:30", "10:30", policy)) // off-grid start
	assert.False(t, IsAligned("09:00", "09:30", policy)) // partial length
	assert.False(t, IsAligned("08:00", "09:00", policy)) // before open
	assert.False(t, IsAligned("17:30", "18:30", policy)) // past close
	assert.False(t, IsAligned("10:00", "10:00", policy)) // empty interval
	assert.False(t, IsAligned("11:00", "10:00", policy)) // reversed
}
