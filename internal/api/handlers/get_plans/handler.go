package get_plans

import (
	"net/http"

	"github.com/tutorlane/booking-service/internal/api/handlers"
	"github.com/tutorlane/booking-service/internal/domain"
)

type Logger interface {
	Info(format string, v ...interface{})
}

// PlanResponse тарифный план в HTTP ответе
type PlanResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MonthlyHours int      `json:"monthlyHours"`
	Subjects     []string `json:"subjects"`
}

// PlansResponse список тарифных планов
type PlansResponse struct {
	Plans []PlanResponse `json:"plans"`
}

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle GET /api/v1/plans
// Публичный endpoint, каталог тарифов фиксирован.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	plans := domain.Plans()

	out := make([]PlanResponse, len(plans))
	for i, p := range plans {
		out[i] = PlanResponse{
			ID:           string(p.ID),
			Name:         p.Name,
			MonthlyHours: p.MonthlyHours,
			Subjects:     p.Subjects,
		}
	}

	handlers.RespondJSON(w, http.StatusOK, PlansResponse{Plans: out})
}
