package schedules

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"healbot/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/schedules", func(sr chi.Router) {
		sr.Get("/", listSchedulesHandler(svc))
		sr.Put("/{scheduleID}/taken", markTakenHandler(svc))
		sr.Delete("/{scheduleID}", deleteScheduleHandler(svc))
	})
}

type scheduleResponse struct {
	ID           string     `json:"id"`
	MedicineID   string     `json:"medicine_id"`
	ScheduleDate string     `json:"schedule_date"`
	Time         string     `json:"time"`
	Dosage       string     `json:"dosage"`
	Status       Status     `json:"status"`
	TakenAt      *time.Time `json:"taken_at,omitempty"`
}

type scheduleRowResponse struct {
	scheduleResponse

	MedicineName string    `json:"medicine_name"`
	PatientID    string    `json:"patient_id"`
	ScheduledAt  time.Time `json:"scheduled_at"`
}

// listSchedulesHandler godoc
// @Summary Listar tomas
// @Description Sin parámetros lista todas las tomas del usuario. Con `date`
// filtra por esa fecha; con `from` devuelve las estrictamente posteriores
// (vista "próximas"). Siempre orden ascendente por instante (fecha + hora).
// @Tags schedules
// @Produce json
// @Param date query string false "YYYY-MM-DD"
// @Param from query string false "YYYY-MM-DD (exclusivo)"
// @Success 200 {array} scheduleRowResponse
// @Failure 400 {string} string "fecha inválida"
// @Failure 401 {string} string "unauthorized"
// @Router /schedules [get]
func listSchedulesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var (
			items []Row
			err   error
		)

		date := r.URL.Query().Get("date")
		from := r.URL.Query().Get("from")
		switch {
		case date != "":
			items, err = svc.ListByDate(r.Context(), claims.UserID, date)
		case from != "":
			items, err = svc.ListFrom(r.Context(), claims.UserID, from)
		default:
			items, err = svc.ListAll(r.Context(), claims.UserID)
		}
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]scheduleRowResponse, 0, len(items))
		for _, row := range items {
			out = append(out, toScheduleRowResponse(row))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// markTakenHandler godoc
// @Summary Marcar toma como tomada
// @Description Transición pending→taken con sello de tiempo. Repetir el PUT
// sobre una toma ya tomada vuelve a sellar taken_at (idempotente en estado).
// @Tags schedules
// @Produce json
// @Param scheduleID path string true "ID de la toma"
// @Success 200 {object} scheduleResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "schedule not found"
// @Router /schedules/{scheduleID}/taken [put]
func markTakenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sc, err := svc.MarkTaken(r.Context(), claims.UserID, chi.URLParam(r, "scheduleID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "schedule not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toScheduleResponse(sc))
	}
}

// deleteScheduleHandler godoc
// @Summary Eliminar una toma
// @Description Borra exactamente una toma; sus hermanas de la misma medicina
// no se tocan.
// @Tags schedules
// @Produce json
// @Param scheduleID path string true "ID de la toma"
// @Success 200 {object} map[string]bool
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "schedule not found"
// @Router /schedules/{scheduleID} [delete]
func deleteScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "scheduleID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "schedule not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func toScheduleResponse(sc Schedule) scheduleResponse {
	return scheduleResponse{
		ID:           sc.ID,
		MedicineID:   sc.MedicineID,
		ScheduleDate: sc.Date.Format(DateLayout),
		Time:         sc.TimeOfDay,
		Dosage:       sc.Dosage,
		Status:       sc.Status,
		TakenAt:      sc.TakenAt,
	}
}

func toScheduleRowResponse(row Row) scheduleRowResponse {
	return scheduleRowResponse{
		scheduleResponse: toScheduleResponse(row.Schedule),
		MedicineName:     row.MedicineName,
		PatientID:        row.PatientID,
		ScheduledAt:      row.ScheduledFor,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
