package get_teacher_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/tutorlane/booking-service/internal/api/handlers"
	"github.com/tutorlane/booking-service/internal/api/middleware"
	"github.com/tutorlane/booking-service/internal/domain"
	"github.com/tutorlane/booking-service/internal/service/reservations"
	"github.com/tutorlane/booking-service/internal/service/reservations/models"
)

const (
	msgInvalidTeacherID = "некорректный ID преподавателя"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgAccessDenied     = "расписание преподавателя доступно только персоналу"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/teachers/{teacherId}/schedule?date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется авторизация")
		return
	}

	teacherID, err := strconv.ParseInt(mux.Vars(r)["teacherId"], 10, 64)
	if err != nil || teacherID <= 0 {
		h.logger.Warn("GET /teachers/{id}/schedule - Invalid teacher ID: %v", mux.Vars(r)["teacherId"])
		handlers.RespondBadRequest(w, msgInvalidTeacherID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /teachers/{id}/schedule - Invalid date: %q", r.URL.Query().Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListForTeacherOnDate(r.Context(), &models.ListForTeacherRequest{
		ActorID:   actorID,
		TeacherID: teacherID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /teachers/{id}/schedule - Access denied: teacher_id=%d, actor_id=%d", teacherID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /teachers/{id}/schedule - Failed: teacher_id=%d, error=%v", teacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
