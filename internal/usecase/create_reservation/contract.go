package create_reservation

import (
	"context"
	"time"

	"github.com/tutorlane/booking-service/internal/domain"
	"github.com/tutorlane/booking-service/internal/integrations/userservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByTeacherAndDate(ctx context.Context, teacherID int64, date time.Time) ([]*domain.Reservation, error)
	GetConfirmedByStudentBetween(ctx context.Context, studentID int64, from, to time.Time) ([]*domain.Reservation, error)
}

// UserServiceClient интерфейс клиента для UserService (резолв ролей)
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
