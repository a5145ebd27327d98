package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/tutorlane/booking-service/internal/usecase/get_available_slots"
)

type fakeUseCase struct {
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(uc GetAvailableSlotsUseCase) *mux.Router {
	r := mux.NewRouter()
	h := NewHandler(uc, nopLogger{})
	r.HandleFunc("/api/v1/teachers/{teacherId}/available-slots", h.Handle).Methods(http.MethodGet)
	return r
}

func TestHandle_ReturnsSlots(t *testing.T) {
	uc := &fakeUseCase{
		resp: &getAvailableSlots.Response{
			TeacherID: 7,
			Date:      "2026-03-10",
			Slots: []getAvailableSlots.Slot{
				{StartTime: "09:00", EndTime: "10:00", Label: "09:00 - 10:00", Booked: false},
				{StartTime: "10:00", EndTime: "11:00", Label: "10:00 - 11:00", Booked: true},
			},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/teachers/7/available-slots?date=2026-03-10", nil)
	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp getAvailableSlots.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.TeacherID)
	require.Len(t, resp.Slots, 2)
	assert.True(t, resp.Slots[1].Booked)
}

func TestHandle_InvalidTeacherID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/teachers/abc/available-slots?date=2026-03-10", nil)
	rec := httptest.NewRecorder()
	newRouter(&fakeUseCase{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidDate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/teachers/7/available-slots?date=10.03.2026", nil)
	rec := httptest.NewRecorder()
	newRouter(&fakeUseCase{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MissingDate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/teachers/7/available-slots", nil)
	rec := httptest.NewRecorder()
	newRouter(&fakeUseCase{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
