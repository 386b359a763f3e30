package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/gigdash/internal/auth"
	"github.com/MrJamesThe3rd/gigdash/internal/http/budget"
	"github.com/MrJamesThe3rd/gigdash/internal/http/dashboard"
)

type Options struct {
	// Verifier guards /api/v1 when set.
	Verifier    *auth.Verifier
	CORSOrigins []string
}

func New(
	dashboardV1 *dashboard.Handler,
	budgetV1 *budget.Handler,
	opts Options,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", healthz)

	router.Route("/api/v1", func(r chi.Router) {
		if opts.Verifier != nil {
			r.Use(opts.Verifier.Middleware)
		}

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json", "multipart/form-data"))
			dashboardV1.Routes(r)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			budgetV1.Routes(r)
		})
	})

	return router
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
