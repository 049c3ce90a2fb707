package history

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"healbot/internal/domain/schedules"
	"healbot/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/history", queryHistoryHandler(svc))
}

type entryResponse struct {
	ID          string           `json:"id"`
	MedicineID  string           `json:"medicine_id"`
	PatientID   string           `json:"patient_id"`
	PatientName string           `json:"patient_name"`
	Medicine    string           `json:"medicine"`
	Frequency   string           `json:"frequency"`
	Dosage      string           `json:"dosage"`
	Status      schedules.Status `json:"status"`
	Time        string           `json:"time"`
	ScheduledAt time.Time        `json:"scheduled_at"`
	TakenAt     *time.Time       `json:"taken_at,omitempty"`
	EffectiveAt time.Time        `json:"effective_at"`
}

// queryHistoryHandler godoc
// @Summary Historial de tomas
// @Description Proyección de solo lectura toma+medicina+familiar, ordenada por
// instante efectivo (taken_at si fue tomada, si no el agendado) descendente.
// @Tags history
// @Produce json
// @Param patient_id query string false "Filtrar por familiar"
// @Success 200 {array} entryResponse
// @Failure 401 {string} string "unauthorized"
// @Router /history [get]
func queryHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.Query(r.Context(), claims.UserID, r.URL.Query().Get("patient_id"))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, entryResponse{
				ID:          e.ScheduleID,
				MedicineID:  e.MedicineID,
				PatientID:   e.PatientID,
				PatientName: e.PatientName,
				Medicine:    e.MedicineName,
				Frequency:   e.Frequency,
				Dosage:      e.Dosage,
				Status:      e.Status,
				Time:        e.TimeOfDay,
				ScheduledAt: e.ScheduledAt,
				TakenAt:     e.TakenAt,
				EffectiveAt: e.EffectiveAt,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
