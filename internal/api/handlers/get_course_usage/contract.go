package get_course_usage

import (
	"context"

	"github.com/tutorlane/booking-service/internal/service/reservations/models"
)

type ReservationService interface {
	CourseUsage(ctx context.Context, req *models.CourseUsageRequest) (*models.CourseUsageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
