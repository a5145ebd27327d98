package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tutorlane/booking-service/internal/domain"
	reservationRepo "github.com/tutorlane/booking-service/internal/infra/storage/reservation"
	userClient "github.com/tutorlane/booking-service/internal/integrations/userservice"
	"github.com/tutorlane/booking-service/internal/scheduling"
	"github.com/tutorlane/booking-service/internal/service/reservations/models"
	"github.com/tutorlane/booking-service/pkg/types"
)

// Service сервис жизненного цикла бронирований: чтение, отмена, завершение,
// перенос. Создание живет в отдельном usecase (create_reservation).
type Service struct {
	repo         ReservationRepository
	userClient   UserServiceClient
	txManager    TransactionManager
	policy       domain.BookingPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	repo ReservationRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	policy domain.BookingPolicy,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		userClient:   userClient,
		txManager:    txManager,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно владельцу, преподавателю бронирования и администратору.
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for actor=%d", id, actorID)

	res, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	role, err := s.resolveRole(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if !canAccessReservation(res, actorID, role) {
		s.logger.Warn("GetByID: access denied for actor=%d to reservation id=%d", actorID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(res), nil
}

// ListForStudent получает историю бронирований студента, новые даты первыми.
// Доступно самому студенту и администратору.
func (s *Service) ListForStudent(ctx context.Context, req *models.ListForStudentRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListForStudent: student=%d, actor=%d", req.StudentID, req.ActorID)

	if req.ActorID != req.StudentID {
		role, err := s.resolveRole(ctx, req.ActorID)
		if err != nil {
			return nil, err
		}
		if !role.IsAdmin() {
			s.logger.Warn("ListForStudent: access denied for actor=%d to student=%d", req.ActorID, req.StudentID)
			return nil, ErrAccessDenied
		}
	}

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListForStudent: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.repo.GetByStudentID(ctx, req.StudentID, domainStatus)
	if err != nil {
		s.logger.Error("ListForStudent: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: ListForStudent - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForStudent: fetched %d reservations for student=%d", len(reservations), req.StudentID)
	return models.FromDomainReservationList(reservations), nil
}

// ListForTeacherOnDate получает подтвержденные бронирования преподавателя на дату.
// Доступно только staff (преподаватель или администратор): студенты не должны
// перечислять чужие бронирования сверх того, что отдает расчет доступности.
func (s *Service) ListForTeacherOnDate(ctx context.Context, req *models.ListForTeacherRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListForTeacherOnDate: teacher=%d, date=%s, actor=%d",
		req.TeacherID, req.Date.Format(domain.DateFormat), req.ActorID)

	role, err := s.resolveRole(ctx, req.ActorID)
	if err != nil {
		return nil, err
	}
	if !role.IsStaff() {
		s.logger.Warn("ListForTeacherOnDate: access denied for actor=%d (role=%s)", req.ActorID, role)
		return nil, ErrAccessDenied
	}

	reservations, err := s.repo.GetByTeacherAndDate(ctx, req.TeacherID, req.Date)
	if err != nil {
		s.logger.Error("ListForTeacherOnDate: repository error for teacher=%d: %v", req.TeacherID, err)
		return nil, fmt.Errorf("%w: ListForTeacherOnDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование.
// Доступно владельцу, преподавателю бронирования и администратору.
// Отмена возможна только из confirmed: повторная отмена или отмена завершенного
// занятия - отклоненный переход, запись не меняется.
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: reservation id=%d by actor=%d", reservationID, req.ActorID)
	return s.transition(ctx, reservationID, req.ActorID, domain.StatusCancelled)
}

// Complete отмечает занятие проведенным.
// Доступно только staff: преподавателю бронирования или администратору.
func (s *Service) Complete(ctx context.Context, reservationID int64, req *models.CompleteReservationRequest) error {
	s.logger.Info("Complete: reservation id=%d by actor=%d", reservationID, req.ActorID)
	return s.transition(ctx, reservationID, req.ActorID, domain.StatusCompleted)
}

// transition выполняет переход статуса с проверкой прав и допустимости перехода.
// Авторизация всегда считается от текущей записи в хранилище, а не от данных
// запроса - id в payload подменить нельзя.
func (s *Service) transition(ctx context.Context, id int64, actorID int64, target domain.ReservationStatus) error {
	res, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	role, err := s.resolveRole(ctx, actorID)
	if err != nil {
		return err
	}

	allowed := false
	switch target {
	case domain.StatusCancelled:
		allowed = canAccessReservation(res, actorID, role)
	case domain.StatusCompleted:
		allowed = role.IsAdmin() || (role == domain.RoleTeacher && res.TeacherID == actorID)
	default:
		return fmt.Errorf("%w: unsupported target status %s", ErrInvalidInput, target)
	}

	if !allowed {
		s.logger.Warn("transition: access denied for actor=%d (role=%s) on reservation id=%d", actorID, role, id)
		return ErrAccessDenied
	}

	if !res.CanTransitionTo(target) {
		s.logger.Warn("transition: reservation id=%d is %s, cannot transition to %s", id, res.Status, target)
		return ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, target); err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			return ErrReservationNotFound
		case errors.Is(err, reservationRepo.ErrNotConfirmed):
			// Конкурентный переход успел раньше.
			return ErrInvalidTransition
		default:
			s.logger.Error("transition: repository error for reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("transition: reservation id=%d moved to %s", id, target)
	return nil
}

// UpdateTime переносит подтвержденное бронирование на новое время того же дня.
// Выполняется в сериализуемой транзакции: чтение дня преподавателя с блокировкой,
// проверка пересечений, запись.
func (s *Service) UpdateTime(ctx context.Context, reservationID int64, req *models.UpdateTimeRequest) error {
	s.logger.Info("UpdateTime: reservation id=%d by actor=%d to %s-%s",
		reservationID, req.ActorID, req.StartTime, req.EndTime)

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	if !scheduling.IsAligned(start, end, s.policy) {
		s.logger.Warn("UpdateTime: interval %s-%s is off the slot grid", start, end)
		return fmt.Errorf("%w: time is not aligned to the slot grid", ErrInvalidInput)
	}

	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, err := s.fetch(txCtx, reservationID)
		if err != nil {
			return err
		}

		role, err := s.resolveRole(txCtx, req.ActorID)
		if err != nil {
			return err
		}
		if !canAccessReservation(res, req.ActorID, role) {
			s.logger.Warn("UpdateTime: access denied for actor=%d on reservation id=%d", req.ActorID, reservationID)
			return ErrAccessDenied
		}

		if !res.CanBeRescheduled() {
			s.logger.Warn("UpdateTime: reservation id=%d is %s, cannot reschedule", reservationID, res.Status)
			return ErrInvalidTransition
		}

		// День преподавателя читается с FOR UPDATE внутри транзакции.
		day, err := s.repo.GetByTeacherAndDate(txCtx, res.TeacherID, res.Date)
		if err != nil {
			s.logger.Error("UpdateTime: failed to get teacher day: %v", err)
			return fmt.Errorf("%w: UpdateTime - repository error: %v", ErrInternal, err)
		}

		if scheduling.HasConflict(start, end, day, res.ID) {
			s.logger.Warn("UpdateTime: slot %s-%s already taken for teacher=%d", start, end, res.TeacherID)
			return ErrSlotTaken
		}

		if err := s.repo.UpdateTime(txCtx, reservationID, start, end); err != nil {
			switch {
			case errors.Is(err, reservationRepo.ErrSlotTaken):
				return ErrSlotTaken
			case errors.Is(err, reservationRepo.ErrReservationNotFound):
				return ErrReservationNotFound
			case errors.Is(err, reservationRepo.ErrNotConfirmed):
				return ErrInvalidTransition
			default:
				s.logger.Error("UpdateTime: repository error for reservation id=%d: %v", reservationID, err)
				return fmt.Errorf("%w: UpdateTime - repository error: %v", ErrInternal, err)
			}
		}

		s.logger.Info("UpdateTime: reservation id=%d moved to %s-%s", reservationID, start, end)
		return nil
	})
}

// CourseUsage считает месячную квоту студента по тарифному плану.
// Месяц определяется по текущему времени сервиса. Доступно самому студенту
// и администратору.
func (s *Service) CourseUsage(ctx context.Context, req *models.CourseUsageRequest) (*models.CourseUsageResponse, error) {
	s.logger.Info("CourseUsage: student=%d, plan=%s, actor=%d", req.StudentID, req.PlanID, req.ActorID)

	if req.ActorID != req.StudentID {
		role, err := s.resolveRole(ctx, req.ActorID)
		if err != nil {
			return nil, err
		}
		if !role.IsAdmin() {
			s.logger.Warn("CourseUsage: access denied for actor=%d to student=%d", req.ActorID, req.StudentID)
			return nil, ErrAccessDenied
		}
	}

	plan, ok := domain.PlanByID(req.PlanID)
	if !ok {
		s.logger.Warn("CourseUsage: unknown plan=%s", req.PlanID)
		return nil, ErrPlanNotFound
	}

	now := s.timeProvider.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	reservations, err := s.repo.GetConfirmedByStudentBetween(ctx, req.StudentID, monthStart, monthEnd)
	if err != nil {
		s.logger.Error("CourseUsage: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: CourseUsage - repository error: %v", ErrInternal, err)
	}

	usage := scheduling.ComputeUsage(plan, reservations, now)
	return models.FromDomainUsage(plan.ID, usage), nil
}

// Вспомогательные методы

// fetch получает бронирование, маппя ошибку репозитория на ошибку сервиса
func (s *Service) fetch(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("fetch: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("fetch: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: fetch - repository error: %v", ErrInternal, err)
	}
	return res, nil
}

// resolveRole резолвит роль действующего пользователя через UserService.
// Неизвестный пользователь или неизвестная роль - отказ в доступе (fail closed).
func (s *Service) resolveRole(ctx context.Context, actorID int64) (domain.Role, error) {
	user, err := s.userClient.GetUser(ctx, actorID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("resolveRole: actor=%d has no profile", actorID)
			return "", ErrAccessDenied
		}
		s.logger.Error("resolveRole: failed to get user=%d: %v", actorID, err)
		return "", fmt.Errorf("%w: resolveRole - user service error: %v", ErrInternal, err)
	}

	role, err := domain.ParseRole(user.Role)
	if err != nil {
		s.logger.Warn("resolveRole: actor=%d has unknown role %q", actorID, user.Role)
		return "", ErrAccessDenied
	}

	return role, nil
}

// canAccessReservation общий предикат доступа к записи:
// владелец, преподаватель этой записи или администратор
func canAccessReservation(res *domain.Reservation, actorID int64, role domain.Role) bool {
	if res.StudentID == actorID {
		return true
	}
	switch role {
	case domain.RoleAdmin:
		return true
	case domain.RoleTeacher:
		return res.TeacherID == actorID
	case domain.RoleStudent, domain.RoleParent:
		return false
	default:
		return false
	}
}
