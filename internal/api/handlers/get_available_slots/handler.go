package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/tutorlane/booking-service/internal/api/handlers"
	"github.com/tutorlane/booking-service/internal/domain"
	getAvailableSlots "github.com/tutorlane/booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidTeacherID = "некорректный ID преподавателя"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput     = "некорректные данные запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/teachers/{teacherId}/available-slots?date=
// Публичный endpoint, авторизация не требуется.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	teacherID, err := strconv.ParseInt(mux.Vars(r)["teacherId"], 10, 64)
	if err != nil || teacherID <= 0 {
		h.logger.Warn("GET /teachers/{id}/available-slots - Invalid teacher ID: %v", mux.Vars(r)["teacherId"])
		handlers.RespondBadRequest(w, msgInvalidTeacherID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /teachers/{id}/available-slots - Invalid date: %q", r.URL.Query().Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		TeacherID: teacherID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /teachers/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /teachers/{id}/available-slots - Failed: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
