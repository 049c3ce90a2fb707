package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "healbot/internal/adapters/storage/memory"
	pg "healbot/internal/adapters/storage/postgres"
	"healbot/internal/domain/history"
	"healbot/internal/domain/medicines"
	"healbot/internal/domain/patients"
	"healbot/internal/domain/schedules"
	"healbot/internal/middleware"
	"healbot/internal/platform/logger"
	"healbot/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	lg := opts.Logger
	if lg == nil {
		lg = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(lg))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	var (
		patientRepo  patients.Repository
		medicineRepo medicines.Repository
		scheduleRepo schedules.Repository
		historyRepo  history.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff).
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				lg.Warn("postgres unavailable, falling back to in-memory store", map[string]any{
					"error": err.Error(),
				})
			}
		}
	}

	if db != nil {
		patientRepo = pg.NewPatientsRepo(db)
		medicineRepo = pg.NewMedicinesRepo(db)
		scheduleRepo = pg.NewSchedulesRepo(db)
		historyRepo = pg.NewHistoryRepo(db)
	} else {
		store := mem.NewStore()
		patientRepo = mem.NewPatientRepo(store)
		medicineRepo = mem.NewMedicineRepo(store)
		scheduleRepo = mem.NewScheduleRepo(store)
		historyRepo = mem.NewHistoryRepo(store)
	}

	// Services por módulo
	patientsSvc := patients.NewService(patientRepo)
	medicinesSvc := medicines.NewService(medicineRepo)
	schedulesSvc := schedules.NewService(scheduleRepo)
	historySvc := history.NewService(historyRepo)

	// Rutas por módulo
	patients.RegisterRoutes(r, patientsSvc)
	medicines.RegisterRoutes(r, medicinesSvc)
	schedules.RegisterRoutes(r, schedulesSvc)
	history.RegisterRoutes(r, historySvc)

	return r
}
