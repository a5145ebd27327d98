package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorlane/booking-service/internal/domain"
	"github.com/tutorlane/booking-service/internal/integrations/userservice"
	"github.com/tutorlane/booking-service/pkg/ptr"
	"github.com/tutorlane/booking-service/pkg/types"
)

const (
	studentID = int64(100)
	teacherID = int64(7)
	adminID   = int64(1)
)

// fakeRepo in-memory реализация ReservationRepository для тестов
type fakeRepo struct {
	reservations []*domain.Reservation
	nextID       int64
}

func newFakeRepo(reservations ...*domain.Reservation) *fakeRepo {
	return &fakeRepo{reservations: reservations, nextID: int64(len(reservations)) + 1}
}

func (r *fakeRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	cp := *res
	cp.ID = r.nextID
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.nextID++
	r.reservations = append(r.reservations, &cp)
	out := cp
	return &out, nil
}

func (r *fakeRepo) GetByTeacherAndDate(_ context.Context, tID int64, date time.Time) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, res := range r.reservations {
		if res.TeacherID == tID && res.Date.Equal(date) && res.Status == domain.StatusConfirmed {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetConfirmedByStudentBetween(_ context.Context, sID int64, from, to time.Time) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, res := range r.reservations {
		if res.StudentID != sID || res.Status != domain.StatusConfirmed {
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

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime time.Time

func (f fixedTime) Now() time.Time { return time.Time(f) }

func defaultRoles() map[int64]string {
	return map[int64]string{
		studentID: "student",
		teacherID: "teacher",
		adminID:   "admin",
	}
}

func newTestUseCase(repo *fakeRepo, roles map[int64]string) *UseCase {
	uc := NewUseCase(repo, &fakeUserClient{roles: roles}, &fakeTxManager{}, domain.DefaultBookingPolicy(), nopLogger{})
	uc.timeProvider = fixedTime(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	return uc
}

func validRequest() *Request {
	return &Request{
		ActorID:   studentID,
		StudentID: studentID,
		TeacherID: teacherID,
		CourseID:  "half",
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
	}
}

func existingReservation(id int64, start, end types.TimeString) *domain.Reservation {
	return &domain.Reservation{
		ID:        id,
		StudentID: studentID,
		TeacherID: teacherID,
		CourseID:  domain.PlanHalf,
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: start,
		EndTime:   end,
		Status:    domain.StatusConfirmed,
	}
}

func TestExecute_CreatesConfirmedReservation(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo, defaultRoles())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, studentID, resp.StudentID)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.NotZero(t, resp.ID)

	// Созданная запись видна в выборке за месяц с точными датой и временем.
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	month, err := repo.GetConfirmedByStudentBetween(context.Background(), studentID, from, to)
	require.NoError(t, err)
	require.Len(t, month, 1)
	assert.Equal(t, resp.ID, month[0].ID)
	assert.True(t, month[0].Date.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, types.TimeString("10:00"), month[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), month[0].EndTime)

	// Созданное бронирование немедленно блокирует свой слот.
	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_ConflictingSlotRejected(t *testing.T) {
	repo := newFakeRepo(existingReservation(1, "10:00", "11:00"))
	uc := newTestUseCase(repo, defaultRoles())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Len(t, repo.reservations, 1)
}

func TestExecute_AdjacentSlotAllowed(t *testing.T) {
	repo := newFakeRepo(existingReservation(1, "09:00", "10:00"))
	uc := newTestUseCase(repo, defaultRoles())

	// Слоты, соприкасающиеся границами, не пересекаются.
	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_QuotaExceeded(t *testing.T) {
	// Тариф half дает 15 часов в месяц; 14 уже израсходовано.
	used := make([]*domain.Reservation, 0, 14)
	for i := 0; i < 14; i++ {
		start := types.TimeString("09:00")
		end := types.TimeString("10:00")
		res := existingReservation(int64(i+1), start, end)
		res.Date = time.Date(2026, 3, 2+i%20, 0, 0, 0, 0, time.UTC)
		res.TeacherID = teacherID + int64(i+1)
		used = append(used, res)
	}
	repo := newFakeRepo(used...)
	uc := newTestUseCase(repo, defaultRoles())

	// Еще один час помещается в квоту.
	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Шестнадцатый час уже не помещается.
	req := validRequest()
	req.StartTime = "12:00"
	req.EndTime = "13:00"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Len(t, repo.reservations, 15)
}

func TestExecute_QuotaIgnoresOtherMonths(t *testing.T) {
	// Бронирования прошлого месяца не расходуют квоту текущего.
	res := existingReservation(1, "09:00", "10:00")
	res.Date = time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)
	repo := newFakeRepo(res)
	uc := newTestUseCase(repo, defaultRoles())

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_AdminExemptFromQuota(t *testing.T) {
	used := make([]*domain.Reservation, 0, 15)
	for i := 0; i < 15; i++ {
		res := existingReservation(int64(i+1), "09:00", "10:00")
		res.Date = time.Date(2026, 3, 2+i%20, 0, 0, 0, 0, time.UTC)
		res.TeacherID = teacherID + int64(i+1)
		used = append(used, res)
	}
	repo := newFakeRepo(used...)
	uc := newTestUseCase(repo, defaultRoles())

	req := validRequest()
	req.ActorID = adminID
	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_ForeignStudentRejected(t *testing.T) {
	repo := newFakeRepo()
	roles := defaultRoles()
	roles[studentID+1] = "student"
	uc := newTestUseCase(repo, roles)

	req := validRequest()
	req.ActorID = studentID + 1
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.reservations)
}

func TestExecute_UnknownActorFailsClosed(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo, defaultRoles())

	req := validRequest()
	req.ActorID = 999
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_UnknownPlan(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo, defaultRoles())

	req := validRequest()
	req.CourseID = "premium"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestExecute_PastDateRejected(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo, defaultRoles())

	req := validRequest()
	req.Date = time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_OffGridTimeRejected(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo, defaultRoles())

	req := validRequest()
	req.StartTime = "10:30"
	req.EndTime = "11:30"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_OutsideBusinessHoursRejected(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo, defaultRoles())

	req := validRequest()
	req.StartTime = "18:00"
	req.EndTime = "19:00"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_NotesTooLong(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUseCase(repo, defaultRoles())

	long := make([]byte, domain.MaxNotesLength+1)
	for i := range long {
		long[i] = 'a'
	}
	req := validRequest()
	req.Notes = ptr.Ptr(string(long))
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
