package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cvwatch/sunlight/internal/http/aggregate"
	"github.com/cvwatch/sunlight/internal/http/audit"
	"github.com/cvwatch/sunlight/internal/http/auth"
	"github.com/cvwatch/sunlight/internal/http/filing"
	"github.com/cvwatch/sunlight/internal/http/ingestion"
	"github.com/cvwatch/sunlight/internal/http/profile"
)

type Config struct {
	AllowedOrigins []string
	AuthSecret     []byte
	Metrics        http.Handler
}

func New(
	cfg Config,
	profilesV1 *profile.Handler,
	filingsV1 *filing.Handler,
	ingestV1 *ingestion.Handler,
	aggregateV1 *aggregate.Handler,
	auditV1 *audit.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Handle("/metrics", cfg.Metrics)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Verifier(cfg.AuthSecret))

		r.Route("/profiles", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			profilesV1.Routes(r)
		})

		r.With(middleware.AllowContentType("application/json")).
			Post("/resolve", profilesV1.Resolve)

		r.Route("/filings", filingsV1.Routes)

		r.Route("/ingest", ingestV1.Routes)

		r.Route("/aggregate", aggregateV1.Routes)

		r.Route("/audit", auditV1.Routes)
	})

	return router
}
