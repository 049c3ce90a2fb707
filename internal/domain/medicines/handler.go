package medicines

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
	r.Route("/medicines", func(mr chi.Router) {
		mr.Post("/", createMedicineHandler(svc))
		mr.Get("/", listMedicinesHandler(svc))
		mr.Delete("/{medicineID}", deleteMedicineHandler(svc))
	})
}

// timesField acepta tanto una lista como un string suelto
// ("times": "08:00" equivale a ["08:00"]).
type timesField []string

func (t *timesField) UnmarshalJSON(b []byte) error {
	var many []string
	if err := json.Unmarshal(b, &many); err == nil {
		*t = many
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*t = []string{one}
	return nil
}

type createMedicineRequest struct {
	Name      string     `json:"name"`
	Dosage    string     `json:"dosage"`
	Unit      string     `json:"unit"`
	PatientID string     `json:"patient_id"`
	Frequency Frequency  `json:"frequency" enums:"ONCE_DAILY,TWICE_DAILY,THRICE_DAILY,ONCE_WEEKLY,TWICE_WEEKLY,CUSTOM"`
	Times     timesField `json:"times"`
	StartDate string     `json:"startDate"` // YYYY-MM-DD, opcional (default hoy)
	EndDate   string     `json:"endDate"`   // YYYY-MM-DD, opcional (default startDate)

	CustomTimesCount int `json:"customTimesCount"`
	CustomStepDays   int `json:"customStepDays"`
}

type medicineResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PatientID string    `json:"patient_id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	Unit      string    `json:"unit"`
	Frequency Frequency `json:"frequency"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}

// createMedicineHandler godoc
// @Summary Registrar medicina
// @Description Crea la medicina y genera atómicamente todas sus tomas
// (fecha × hora) dentro del rango; si algo falla no queda nada persistido.
// @Tags medicines
// @Accept json
// @Produce json
// @Param payload body createMedicineRequest true "Datos de la medicina"
// @Success 201 {object} medicineResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Router /medicines [post]
func createMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createMedicineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:             req.Name,
			Dosage:           req.Dosage,
			Unit:             req.Unit,
			PatientID:        req.PatientID,
			Frequency:        req.Frequency,
			Times:            req.Times,
			StartDate:        req.StartDate,
			EndDate:          req.EndDate,
			CustomTimesCount: req.CustomTimesCount,
			CustomStepDays:   req.CustomStepDays,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toMedicineResponse(m))
	}
}

// listMedicinesHandler godoc
// @Summary Listar medicinas
// @Tags medicines
// @Produce json
// @Success 200 {array} medicineResponse
// @Failure 401 {string} string "unauthorized"
// @Router /medicines [get]
func listMedicinesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]medicineResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicineResponse(m))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// deleteMedicineHandler godoc
// @Summary Eliminar medicina
// @Description Borra la medicina y todas sus tomas.
// @Tags medicines
// @Produce json
// @Param medicineID path string true "ID de la medicina"
// @Success 200 {object} map[string]bool
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medicine not found"
// @Router /medicines/{medicineID} [delete]
func deleteMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "medicineID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "medicine not found", http.StatusNotFound)
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

func toMedicineResponse(m Medicine) medicineResponse {
	return medicineResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		PatientID: m.PatientID,
		Name:      m.Name,
		Dosage:    m.Dosage,
		Unit:      m.Unit,
		Frequency: m.Frequency,
		StartDate: m.StartDate.Format("2006-01-02"),
		EndDate:   m.EndDate.Format("2006-01-02"),
		CreatedAt: m.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
