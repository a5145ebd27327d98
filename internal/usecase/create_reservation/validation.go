package create_reservation

import (
	"fmt"
	"time"

	"github.com/tutorlane/booking-service/internal/domain"
	"github.com/tutorlane/booking-service/internal/scheduling"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, policy domain.BookingPolicy) error {
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if req.StudentID <= 0 {
		return fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	if req.TeacherID <= 0 {
		return fmt.Errorf("%w: teacherID must be positive", ErrInvalidInput)
	}

	if req.CourseID == "" {
		return fmt.Errorf("%w: courseID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	// Время должно ложиться на сетку слотов в рабочих часах
	if !scheduling.IsAligned(req.StartTime, req.EndTime, policy) {
		return fmt.Errorf("%w: time must align with the %d-minute slot grid within business hours",
			ErrInvalidTimeSlot, policy.LessonDurationMinutes)
	}

	return nil
}

// validateDate проверяет, что дата занятия не в прошлом
func validateDate(reservationDate, now time.Time) error {
	dateOnly := time.Date(reservationDate.Year(), reservationDate.Month(), reservationDate.Day(), 0, 0, 0, 0, reservationDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return fmt.Errorf("%w: date must not be in the past", ErrInvalidDate)
	}

	return nil
}

// monthBounds возвращает границы календарного месяца, в который попадает дата занятия
func monthBounds(date time.Time) (time.Time, time.Time) {
	from := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	to := from.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return from, to
}
