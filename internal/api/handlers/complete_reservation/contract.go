package complete_reservation

import (
	"context"

	"github.com/tutorlane/booking-service/internal/service/reservations/models"
)

type ReservationService interface {
	Complete(ctx context.Context, reservationID int64, req *models.CompleteReservationRequest) error
	GetByID(ctx context.Context, id int64, actorID int64) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
