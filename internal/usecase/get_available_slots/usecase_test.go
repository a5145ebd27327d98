package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorlane/booking-service/internal/domain"
)

type fakeRepo struct {
	reservations []*domain.Reservation
}

func (r *fakeRepo) GetByTeacherAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
	return r.reservations, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(reservations ...*domain.Reservation) *UseCase {
	return NewUseCase(&fakeRepo{reservations: reservations}, domain.DefaultBookingPolicy(), nopLogger{})
}

func TestExecute_FullGridWhenFree(t *testing.T) {
	uc := newTestUseCase()

	resp, err := uc.Execute(context.Background(), &Request{
		TeacherID: 7,
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// 09:00-18:00 с часовыми занятиями дает 9 слотов.
	require.Len(t, resp.Slots, 9)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime)
	assert.Equal(t, "10:00", resp.Slots[0].EndTime)
	assert.Equal(t, "09:00 - 10:00", resp.Slots[0].Label)
	assert.Equal(t, "17:00", resp.Slots[8].StartTime)
	for _, s := range resp.Slots {
		assert.False(t, s.Booked)
	}
}

func TestExecute_BookedSlotStaysInList(t *testing.T) {
	uc := newTestUseCase(&domain.Reservation{
		ID:        1,
		TeacherID: 7,
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    domain.StatusConfirmed,
	})

	resp, err := uc.Execute(context.Background(), &Request{
		TeacherID: 7,
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 9)

	for _, s := range resp.Slots {
		if s.StartTime == "10:00" {
			assert.True(t, s.Booked)
		} else {
			assert.False(t, s.Booked, "slot %s must stay free", s.Label)
		}
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase()

	_, err := uc.Execute(context.Background(), &Request{TeacherID: 0, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{TeacherID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
