package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorlane/booking-service/internal/domain"
	reservationRepo "github.com/tutorlane/booking-service/internal/infra/storage/reservation"
	"github.com/tutorlane/booking-service/internal/integrations/userservice"
	"github.com/tutorlane/booking-service/internal/service/reservations/models"
	"github.com/tutorlane/booking-service/pkg/types"
)

// fakeRepo in-memory реализация ReservationRepository для тестов
type fakeRepo struct {
	byID map[int64]*domain.Reservation
}

func newFakeRepo(reservations ...*domain.Reservation) *fakeRepo {
	r := &fakeRepo{byID: make(map[int64]*domain.Reservation)}
	for _, res := range reservations {
		cp := *res
		r.byID[res.ID] = &cp
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := r.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *fakeRepo) GetByStudentID(_ context.Context, studentID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, res := range r.byID {
		if res.StudentID != studentID {
			continue
		}
		if status != nil && res.Status != *status {
			continue
		}
		cp := *res
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepo) GetByTeacherAndDate(_ context.Context, teacherID int64, date time.Time) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, res := range r.byID {
		if res.TeacherID == teacherID && res.Date.Equal(date) && res.Status == domain.StatusConfirmed {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetConfirmedByStudentBetween(_ context.Context, studentID int64, from, to time.Time) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, res := range r.byID {
		if res.StudentID != studentID || res.Status != domain.StatusConfirmed {
			continue
		}
		if res.Date.Before(from) || res.Date.After(to) {
			continue
		}
		cp := *res
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	res, ok := r.byID[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	if res.Status != domain.StatusConfirmed {
		return reservationRepo.ErrNotConfirmed
	}
	res.Status = status
	res.UpdatedAt = time.Now()
	return nil
}

func (r *fakeRepo) UpdateTime(_ context.Context, id int64, start, end types.TimeString) error {
	res, ok := r.byID[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	if res.Status != domain.StatusConfirmed {
		return reservationRepo.ErrNotConfirmed
	}
	res.StartTime = start
	res.EndTime = end
	res.UpdatedAt = time.Now()
	return nil
}

// fakeUserClient резолвит роли из фиксированной таблицы
type fakeUserClient struct {
	roles map[int64]string
}

func (c *fakeUserClient) GetUser(_ context.Context, userID int64) (*userservice.User, error) {
	role, ok := c.roles[userID]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	return &userservice.User{ID: userID, Role: role}, nil
}

// fakeTxManager выполняет fn без настоящей транзакции
type fakeTxManager struct{}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
func (m *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	studentID      = int64(100)
	otherStudentID = int64(101)
	teacherID      = int64(7)
	adminID        = int64(1)
)

func defaultRoles() map[int64]string {
	return map[int64]string{
		studentID:      "student",
		otherStudentID: "student",
		teacherID:      "teacher",
		adminID:        "admin",
	}
}

func confirmedReservation(id int64) *domain.Reservation {
	return &domain.Reservation{
		ID:        id,
		StudentID: studentID,
		TeacherID: teacherID,
		CourseID:  domain.PlanHalf,
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    domain.StatusConfirmed,
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func newTestService(repo *fakeRepo, roles map[int64]string) *Service {
	return NewService(repo, &fakeUserClient{roles: roles}, &fakeTxManager{}, domain.DefaultBookingPolicy(), nopLogger{})
}

func TestCancel_ByOwner(t *testing.T) {
	repo := newFakeRepo(confirmedReservation(1))
	svc := newTestService(repo, defaultRoles())

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{ActorID: studentID})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
}

func TestCancel_ByTeacherAndAdmin(t *testing.T) {
	for _, actor := range []int64{teacherID, adminID} {
		repo := newFakeRepo(confirmedReservation(1))
		svc := newTestService(repo, defaultRoles())

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{ActorID: actor})
		require.NoError(t, err, "actor %d must be allowed to cancel", actor)
	}
}

func TestCancel_ForeignStudentFailsClosed(t *testing.T) {
	original := confirmedReservation(1)
	repo := newFakeRepo(original)
	svc := newTestService(repo, defaultRoles())

	err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{ActorID: otherStudentID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Запись не изменилась.
	stored, getErr := repo.GetByID(context.Background(), 1)
	require.NoError(t, getErr)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
	assert.Equal(t, original.UpdatedAt, stored.UpdatedAt)
}

func TestCancel_TerminalStatesRejected(t *testing.T) {
	for _, status := range []domain.ReservationStatus{domain.StatusCancelled, domain.StatusCompleted} {
		res := confirmedReservation(1)
		res.Status = status
		repo := newFakeRepo(res)
		svc := newTestService(repo, defaultRoles())

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{ActorID: studentID})
		assert.ErrorIs(t, err, ErrInvalidTransition, "status %s must reject cancel", status)

		stored, getErr := repo.GetByID(context.Background(), 1)
		require.NoError(t, getErr)
		assert.Equal(t, status, stored.Status)
		assert.Equal(t, res.UpdatedAt, stored.UpdatedAt)
	}
}

func TestComplete_OnlyStaff(t *testing.T) {
	repo := newFakeRepo(confirmedReservation(1))
	svc := newTestService(repo, defaultRoles())

	err := svc.Complete(context.Background(), 1, &models.CompleteReservationRequest{ActorID: studentID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.Complete(context.Background(), 1, &models.CompleteReservationRequest{ActorID: teacherID})
	require.NoError(t, err)

	stored, _ := repo.GetByID(context.Background(), 1)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
}

func TestComplete_CancelledRejected(t *testing.T) {
	res := confirmedReservation(1)
	res.Status = domain.StatusCancelled
	repo := newFakeRepo(res)
	svc := newTestService(repo, defaultRoles())

	err := svc.Complete(context.Background(), 1, &models.CompleteReservationRequest{ActorID: adminID})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateTime_MovesReservation(t *testing.T) {
	repo := newFakeRepo(confirmedReservation(1))
	svc := newTestService(repo, defaultRoles())

	err := svc.UpdateTime(context.Background(), 1, &models.UpdateTimeRequest{
		ActorID:   studentID,
		StartTime: "14:00",
		EndTime:   "15:00",
	})
	require.NoError(t, err)

	stored, _ := repo.GetByID(context.Background(), 1)
	assert.Equal(t, types.TimeString("14:00"), stored.StartTime)
	assert.Equal(t, types.TimeString("15:00"), stored.EndTime)
}

func TestUpdateTime_ConflictingSlotRejected(t *testing.T) {
	first := confirmedReservation(1)
	second := confirmedReservation(2)
	second.StudentID = otherStudentID
	second.StartTime = "14:00"
	second.EndTime = "15:00"

	repo := newFakeRepo(first, second)
	svc := newTestService(repo, defaultRoles())

	err := svc.UpdateTime(context.Background(), 1, &models.UpdateTimeRequest{
		ActorID:   studentID,
		StartTime: "14:00",
		EndTime:   "15:00",
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestUpdateTime_OffGridRejected(t *testing.T) {
	repo := newFakeRepo(confirmedReservation(1))
	svc := newTestService(repo, defaultRoles())

	err := svc.UpdateTime(context.Background(), 1, &models.UpdateTimeRequest{
		ActorID:   studentID,
		StartTime: "14:30",
		EndTime:   "15:30",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListForTeacherOnDate_StaffOnly(t *testing.T) {
	repo := newFakeRepo(confirmedReservation(1))
	svc := newTestService(repo, defaultRoles())
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.ListForTeacherOnDate(context.Background(), &models.ListForTeacherRequest{
		ActorID:   studentID,
		TeacherID: teacherID,
		Date:      date,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.ListForTeacherOnDate(context.Background(), &models.ListForTeacherRequest{
		ActorID:   teacherID,
		TeacherID: teacherID,
		Date:      date,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestListForStudent_SelfOrAdmin(t *testing.T) {
	repo := newFakeRepo(confirmedReservation(1))
	svc := newTestService(repo, defaultRoles())

	_, err := svc.ListForStudent(context.Background(), &models.ListForStudentRequest{
		ActorID:   otherStudentID,
		StudentID: studentID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.ListForStudent(context.Background(), &models.ListForStudentRequest{
		ActorID:   adminID,
		StudentID: studentID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestCourseUsage_CurrentMonth(t *testing.T) {
	res := confirmedReservation(1)
	repo := newFakeRepo(res)
	svc := newTestService(repo, defaultRoles())
	svc.timeProvider = fixedTime(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC))

	resp, err := svc.CourseUsage(context.Background(), &models.CourseUsageRequest{
		ActorID:   studentID,
		StudentID: studentID,
		PlanID:    domain.PlanHalf,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.UsedHours)
	assert.Equal(t, 14, resp.RemainingHours)
	assert.Equal(t, 15, resp.TotalHours)
}

func TestCourseUsage_UnknownPlan(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, defaultRoles())

	_, err := svc.CourseUsage(context.Background(), &models.CourseUsageRequest{
		ActorID:   studentID,
		StudentID: studentID,
		PlanID:    "premium",
	})
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestGetByID_UnknownActorFailsClosed(t *testing.T) {
	repo := newFakeRepo(confirmedReservation(1))
	svc := newTestService(repo, defaultRoles())

	_, err := svc.GetByID(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// fixedTime провайдер фиксированного времени
type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }
