// Command sync runs one NetFile sweep: it pulls every enabled agency's
// filings for a year and ingests them. Idempotent ingestion makes it safe to
// run on a schedule.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cvwatch/sunlight/internal/config"
	"github.com/cvwatch/sunlight/internal/database"
	filingStore "github.com/cvwatch/sunlight/internal/filing/store"
	"github.com/cvwatch/sunlight/internal/ingest"
	"github.com/cvwatch/sunlight/internal/metrics"
	"github.com/cvwatch/sunlight/internal/netfile"
	"github.com/cvwatch/sunlight/internal/profile"
	profileStore "github.com/cvwatch/sunlight/internal/profile/store"
)

// agencies is the registry of jurisdictions we follow. Adding a jurisdiction
// means adding its NetFile agency code here and registering its city profile.
var agencies = []netfile.Agency{
	{Name: "Riverside County", NetFileID: "RIV", Enabled: true},
	{Name: "Los Angeles County", NetFileID: "LA", Enabled: false},
	{Name: "Indio", NetFileID: "IND", Enabled: false},
}

func main() {
	year := flag.Int("year", time.Now().Year(), "filing year to sync")
	flag.Parse()

	_ = godotenv.Load()

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

	m := metrics.New(prometheus.NewRegistry())
	profileService := profile.NewService(profileStore.New(db))
	ingestService := ingest.NewService(filingStore.New(db), profileService, m)

	client := netfile.NewClient(cfg.NetFile.VendorID)
	syncer := netfile.NewSyncer(client, ingestService, agencies, cfg.NetFile.Concurrency)

	report, err := syncer.Sync(context.Background(), *year)
	if err != nil {
		slog.Error("sync failed", "error", err)
		os.Exit(1)
	}

	for _, warning := range report.Warnings {
		slog.Warn("sync warning", "detail", warning)
	}

	slog.Info("sync complete",
		"agencies", report.Agencies, "filings", report.Filings, "failed", report.Failed)
}
