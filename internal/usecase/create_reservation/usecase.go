package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/tutorlane/booking-service/internal/domain"
	reservationRepo "github.com/tutorlane/booking-service/internal/infra/storage/reservation"
	userClient "github.com/tutorlane/booking-service/internal/integrations/userservice"
	"github.com/tutorlane/booking-service/internal/scheduling"
)

// UseCase use case для создания бронирования занятия
type UseCase struct {
	reservationRepo ReservationRepository
	userClient      UserServiceClient
	txManager       TransactionManager
	policy          domain.BookingPolicy
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		userClient:      userClient,
		txManager:       txManager,
		policy:          policy,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Квота и занятость слота проверяются внутри сериализуемой транзакции,
// чтобы конкурентные запросы не прошли проверку одновременно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: actor=%d, student=%d, teacher=%d, course=%s, date=%s, time=%s-%s",
		req.ActorID, req.StudentID, req.TeacherID, req.CourseID,
		req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.policy); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем дату занятия
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	// 4. Резолвим роль актора и проверяем права
	actorRole, err := uc.resolveRole(ctx, req.ActorID)
	if err != nil {
		return nil, err
	}

	// Бронировать можно только для себя; администратор может для любого студента
	if req.ActorID != req.StudentID && !actorRole.IsAdmin() {
		uc.logger.Warn("CreateReservation: actor=%d (role=%s) may not book for student=%d",
			req.ActorID, actorRole, req.StudentID)
		return nil, ErrAccessDenied
	}

	// 5. Проверяем тарифный план
	plan, ok := domain.PlanByID(domain.PlanID(req.CourseID))
	if !ok {
		uc.logger.Warn("CreateReservation: unknown plan %q", req.CourseID)
		return nil, ErrPlanNotFound
	}

	requestedHours := requestDurationHours(req)

	// Переменная для хранения результата
	var result *domain.Reservation

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Проверяем месячную квоту тарифного плана.
		// Администратор бронирует без учета квоты.
		if !actorRole.IsAdmin() {
			from, to := monthBounds(req.Date)

			monthReservations, err := uc.reservationRepo.GetConfirmedByStudentBetween(txCtx, req.StudentID, from, to)
			if err != nil {
				uc.logger.Error("CreateReservation: failed to get month reservations: %v", err)
				return fmt.Errorf("%w: failed to get month reservations: %v", ErrInternal, err)
			}

			usage := scheduling.ComputeUsage(plan, monthReservations, req.Date)

			quota := scheduling.ValidateQuota(requestedHours, usage)
			if !quota.IsValid {
				uc.logger.Warn("CreateReservation: quota check failed for student=%d plan=%s: %s",
					req.StudentID, plan.ID, quota.Message)
				return fmt.Errorf("%w: %s", ErrQuotaExceeded, quota.Message)
			}
		}

		// 6.2. Получаем подтвержденные бронирования преподавателя на дату
		// с блокировкой (FOR UPDATE)
		dayReservations, err := uc.reservationRepo.GetByTeacherAndDate(txCtx, req.TeacherID, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get teacher reservations: %v", err)
			return fmt.Errorf("%w: failed to get teacher reservations: %v", ErrInternal, err)
		}

		// 6.3. Проверяем, что слот свободен
		if scheduling.HasConflict(req.StartTime, req.EndTime, dayReservations, 0) {
			uc.logger.Warn("CreateReservation: slot %s-%s on %s is taken for teacher=%d",
				req.StartTime, req.EndTime, req.Date.Format(domain.DateFormat), req.TeacherID)
			return ErrSlotTaken
		}

		// 6.4. Создаем бронирование
		reservation := &domain.Reservation{
			StudentID: req.StudentID,
			TeacherID: req.TeacherID,
			CourseID:  plan.ID,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Status:    domain.StatusConfirmed,
			Notes:     req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			// Ограничение в БД ловит гонку, которую не поймала проверка выше
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateReservation: exclusion constraint rejected slot %s-%s for teacher=%d",
					req.StartTime, req.EndTime, req.TeacherID)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	return &Response{
		ID:        result.ID,
		StudentID: result.StudentID,
		TeacherID: result.TeacherID,
		CourseID:  string(result.CourseID),
		Date:      result.Date,
		StartTime: result.StartTime,
		EndTime:   result.EndTime,
		Status:    string(result.Status),
		Notes:     result.Notes,
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}, nil
}

// resolveRole получает роль актора из UserService.
// Неизвестный пользователь или роль трактуются как отказ в доступе.
func (uc *UseCase) resolveRole(ctx context.Context, actorID int64) (domain.Role, error) {
	user, err := uc.userClient.GetUser(ctx, actorID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateReservation: actor id=%d not found", actorID)
			return "", ErrAccessDenied
		}
		uc.logger.Error("CreateReservation: failed to get actor id=%d: %v", actorID, err)
		return "", fmt.Errorf("%w: failed to get actor: %v", ErrInternal, err)
	}

	role, err := domain.ParseRole(user.Role)
	if err != nil {
		uc.logger.Warn("CreateReservation: actor id=%d has unknown role %q", actorID, user.Role)
		return "", ErrAccessDenied
	}

	return role, nil
}

// requestDurationHours возвращает длительность занятия в часах, неполный час
// округляется вверх
func requestDurationHours(req *Request) int {
	minutes, err := req.StartTime.MinutesUntil(req.EndTime)
	if err != nil || minutes <= 0 {
		return 0
	}
	return (minutes + domain.MinutesPerHour - 1) / domain.MinutesPerHour
}
