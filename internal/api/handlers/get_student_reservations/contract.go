package get_student_reservations

import (
	"context"

	"github.com/tutorlane/booking-service/internal/service/reservations/models"
)

type ReservationService interface {
	ListForStudent(ctx context.Context, req *models.ListForStudentRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
