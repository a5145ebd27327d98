package create_reservation

import (
	"errors"
	"net/http"

	"github.com/tutorlane/booking-service/internal/api/handlers"
	"github.com/tutorlane/booking-service/internal/api/middleware"
	createReservation "github.com/tutorlane/booking-service/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgAccessDenied       = "недостаточно прав для бронирования"
	msgPlanNotFound       = "тарифный план не найден"
	msgInvalidDate        = "некорректная дата занятия"
	msgInvalidTimeSlot    = "время занятия не попадает в сетку слотов"
	msgSlotTaken          = "выбранный слот уже занят"
	msgQuotaExceeded      = "месячная квота тарифного плана исчерпана"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется авторизация")
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actorID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotTaken):
			h.logger.Warn("POST /reservations - Slot taken: student_id=%d, teacher_id=%d", req.StudentID, req.TeacherID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createReservation.ErrQuotaExceeded):
			h.logger.Warn("POST /reservations - Quota exceeded: student_id=%d, course=%s", req.StudentID, req.CourseID)
			handlers.RespondConflict(w, msgQuotaExceeded)

		case errors.Is(err, createReservation.ErrAccessDenied):
			h.logger.Warn("POST /reservations - Access denied: actor_id=%d, student_id=%d", actorID, req.StudentID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, createReservation.ErrPlanNotFound):
			h.logger.Warn("POST /reservations - Plan not found: course=%s", req.CourseID)
			handlers.RespondNotFound(w, msgPlanNotFound)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid date: student_id=%d, date=%s", req.StudentID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrInvalidTimeSlot):
			h.logger.Warn("POST /reservations - Invalid time slot: student_id=%d, time=%s-%s", req.StudentID, req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: student_id=%d, teacher_id=%d, error=%v",
				req.StudentID, req.TeacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, student_id=%d, teacher_id=%d",
		result.ID, result.StudentID, result.TeacherID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
