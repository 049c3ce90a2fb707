package main

import (
	"net/http"
	"os"
	"time"

	_ "healbot/docs"
	"healbot/internal/adapters/auth/jwtauth"
	"healbot/internal/platform/logger"
	"healbot/internal/ports/auth"
	"healbot/internal/router"
)

// @title HealBot API
// @version 1.0
// @description Servicio de recordatorios de medicinas para la familia.
// @BasePath /
func main() {
	lg := logger.NewFromEnv()

	var verifier auth.AuthVerifier
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		v, err := jwtauth.New(secret)
		if err != nil {
			lg.Error("invalid JWT_SECRET", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = v
	} else {
		// Modo dev: X-Debug-User-ID reemplaza al token.
		lg.Warn("JWT_SECRET not set, running without token verification", nil)
	}

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Logger:       lg,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	lg.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lg.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
