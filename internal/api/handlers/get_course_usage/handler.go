package get_course_usage

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tutorlane/booking-service/internal/api/handlers"
	"github.com/tutorlane/booking-service/internal/api/middleware"
	"github.com/tutorlane/booking-service/internal/domain"
	"github.com/tutorlane/booking-service/internal/service/reservations"
	"github.com/tutorlane/booking-service/internal/service/reservations/models"
)

const (
	msgInvalidStudentID = "некорректный ID студента"
	msgPlanRequired     = "не указан тарифный план"
	msgPlanNotFound     = "тарифный план не найден"
	msgAccessDenied     = "недостаточно прав для просмотра квоты студента"
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

// Handle GET /api/v1/students/{studentId}/course-usage?plan=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется авторизация")
		return
	}

	studentID, err := strconv.ParseInt(mux.Vars(r)["studentId"], 10, 64)
	if err != nil || studentID <= 0 {
		h.logger.Warn("GET /students/{id}/course-usage - Invalid student ID: %v", mux.Vars(r)["studentId"])
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	plan := r.URL.Query().Get("plan")
	if plan == "" {
		h.logger.Warn("GET /students/{id}/course-usage - Plan not specified: student_id=%d", studentID)
		handlers.RespondBadRequest(w, msgPlanRequired)
		return
	}

	result, err := h.service.CourseUsage(r.Context(), &models.CourseUsageRequest{
		ActorID:   actorID,
		StudentID: studentID,
		PlanID:    domain.PlanID(plan),
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrPlanNotFound):
			h.logger.Warn("GET /students/{id}/course-usage - Plan not found: plan=%q", plan)
			handlers.RespondNotFound(w, msgPlanNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /students/{id}/course-usage - Access denied: student_id=%d, actor_id=%d", studentID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /students/{id}/course-usage - Failed: student_id=%d, error=%v", studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
