package models

import (
	"errors"
	"time"

	"github.com/tutorlane/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	ActorID int64 `json:"actorId"`
}

// CompleteReservationRequest запрос на отметку занятия проведенным
type CompleteReservationRequest struct {
	ActorID int64 `json:"actorId"`
}

// UpdateTimeRequest запрос на перенос бронирования
type UpdateTimeRequest struct {
	ActorID   int64  `json:"actorId"`
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
}

// ListForStudentRequest запрос на получение бронирований студента
type ListForStudentRequest struct {
	ActorID   int64   `json:"actorId"`
	StudentID int64   `json:"studentId"`
	Status    *string `json:"status,omitempty"`
}

// ListForTeacherRequest запрос расписания преподавателя на дату
type ListForTeacherRequest struct {
	ActorID   int64     `json:"actorId"`
	TeacherID int64     `json:"teacherId"`
	Date      time.Time `json:"date"`
}

// CourseUsageRequest запрос месячной квоты студента
type CourseUsageRequest struct {
	ActorID   int64         `json:"actorId"`
	StudentID int64         `json:"studentId"`
	PlanID    domain.PlanID `json:"planId"`
}

// Response модели

// ReservationResponse бронирование в ответе сервиса
type ReservationResponse struct {
	ID        int64   `json:"id"`
	StudentID int64   `json:"studentId"`
	TeacherID int64   `json:"teacherId"`
	CourseID  string  `json:"courseId"`
	Date      string  `json:"date"`      // YYYY-MM-DD
	StartTime string  `json:"startTime"` // HH:MM
	EndTime   string  `json:"endTime"`   // HH:MM
	Status    string  `json:"status"`
	Notes     *string `json:"notes,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// CourseUsageResponse месячная квота студента по тарифному плану
type CourseUsageResponse struct {
	PlanID          string  `json:"planId"`
	UsedHours       int     `json:"usedHours"`
	RemainingHours  int     `json:"remainingHours"`
	TotalHours      int     `json:"totalHours"`
	UsagePercentage float64 `json:"usagePercentage"`
}

// Конвертация domain → response

// FromDomainReservation конвертирует доменную модель в ответ сервиса
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:        r.ID,
		StudentID: r.StudentID,
		TeacherID: r.TeacherID,
		CourseID:  string(r.CourseID),
		Date:      r.Date.Format(domain.DateFormat),
		StartTime: r.StartTime.String(),
		EndTime:   r.EndTime.String(),
		Status:    string(r.Status),
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservationList конвертирует список бронирований
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, len(reservations))
	for i, r := range reservations {
		out[i] = FromDomainReservation(r)
	}
	return &ReservationListResponse{
		Reservations: out,
		Total:        len(out),
	}
}

// FromDomainUsage конвертирует квоту в ответ сервиса
func FromDomainUsage(planID domain.PlanID, usage domain.CourseUsage) *CourseUsageResponse {
	return &CourseUsageResponse{
		PlanID:          string(planID),
		UsedHours:       usage.UsedHours,
		RemainingHours:  usage.RemainingHours,
		TotalHours:      usage.TotalHours,
		UsagePercentage: usage.UsagePercentage,
	}
}

// ToDomainStatus валидирует и конвертирует строковый статус
func ToDomainStatus(s string) (domain.ReservationStatus, error) {
	status := domain.ReservationStatus(s)
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
