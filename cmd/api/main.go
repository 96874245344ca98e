package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cvwatch/sunlight/internal/aggregate"
	aggregateStore "github.com/cvwatch/sunlight/internal/aggregate/store"
	"github.com/cvwatch/sunlight/internal/audit"
	auditStore "github.com/cvwatch/sunlight/internal/audit/store"
	"github.com/cvwatch/sunlight/internal/config"
	"github.com/cvwatch/sunlight/internal/database"
	"github.com/cvwatch/sunlight/internal/filing"
	filingStore "github.com/cvwatch/sunlight/internal/filing/store"
	sunlightHttp "github.com/cvwatch/sunlight/internal/http"
	aggregateHandler "github.com/cvwatch/sunlight/internal/http/aggregate"
	auditHandler "github.com/cvwatch/sunlight/internal/http/audit"
	filingHandler "github.com/cvwatch/sunlight/internal/http/filing"
	ingestHandler "github.com/cvwatch/sunlight/internal/http/ingestion"
	profileHandler "github.com/cvwatch/sunlight/internal/http/profile"
	"github.com/cvwatch/sunlight/internal/importer"
	"github.com/cvwatch/sunlight/internal/ingest"
	"github.com/cvwatch/sunlight/internal/metrics"
	"github.com/cvwatch/sunlight/internal/profile"
	profileStore "github.com/cvwatch/sunlight/internal/profile/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	filings := filingStore.New(db)

	var (
		profileService   = profile.NewService(profileStore.New(db))
		filingService    = filing.NewService(filings)
		ingestService    = ingest.NewService(filings, profileService, m)
		importService    = importer.NewService()
		aggregateService = aggregate.NewService(aggregateStore.New(db), m)
		auditService     = audit.NewService(auditStore.New(db), profileService)
	)

	var (
		profileH   = profileHandler.NewHandler(profileService)
		filingH    = filingHandler.NewHandler(filingService, profileService)
		ingestH    = ingestHandler.NewHandler(ingestService, importService)
		aggregateH = aggregateHandler.NewHandler(aggregateService)
		auditH     = auditHandler.NewHandler(auditService)
	)

	router := sunlightHttp.New(sunlightHttp.Config{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AuthSecret:     []byte(cfg.Auth.Secret),
		Metrics:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	}, profileH, filingH, ingestH, aggregateH, auditH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
