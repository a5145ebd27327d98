package get_available_slots

import (
	"context"
	"fmt"

	"github.com/tutorlane/booking-service/internal/domain"
	"github.com/tutorlane/booking-service/internal/scheduling"
)

// UseCase use case для получения слотов преподавателя на дату
type UseCase struct {
	reservationRepo ReservationRepository
	policy          domain.BookingPolicy
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, policy domain.BookingPolicy, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		policy:          policy,
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов.
// Возвращает полную сетку слотов рабочего дня: занятые слоты остаются в списке
// с booked=true, чтобы клиент мог отрисовать все расписание.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: teacher=%d, date=%s",
		req.TeacherID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Генерируем сетку слотов рабочего дня
	slots, err := scheduling.GenerateSlots(uc.policy.Hours, uc.policy.LessonDurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 3. Получаем подтвержденные бронирования преподавателя на дату
	reservations, err := uc.reservationRepo.GetByTeacherAndDate(ctx, req.TeacherID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 4. Размечаем занятость слотов
	availability := scheduling.MarkAvailability(slots, reservations)

	out := make([]Slot, len(availability))
	for i, a := range availability {
		out[i] = Slot{
			StartTime: a.Slot.StartTime.String(),
			EndTime:   a.Slot.EndTime.String(),
			Label:     a.Slot.Label,
			Booked:    a.Booked,
		}
	}

	uc.logger.Info("GetAvailableSlots: teacher=%d, date=%s: %d slots, %d booked",
		req.TeacherID, req.Date.Format(domain.DateFormat), len(out), countBooked(out))

	return &Response{
		TeacherID: req.TeacherID,
		Date:      req.Date.Format(domain.DateFormat),
		Slots:     out,
	}, nil
}

func countBooked(slots []Slot) int {
	n := 0
	for _, s := range slots {
		if s.Booked {
			n++
		}
	}
	return n
}
