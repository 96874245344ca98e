package netfile

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cvwatch/sunlight/internal/ingest"
)

//go:generate mockgen -source=sync.go -destination=sync_mock.go -package=netfile

// Agency is one jurisdiction whose NetFile feed we follow.
type Agency struct {
	Name      string
	NetFileID string
	Enabled   bool
}

type API interface {
	Filings(ctx context.Context, agencyID string, year int) ([]Filing, error)
	Transactions(ctx context.Context, filingID string) ([]Transaction, error)
}

type Ingestor interface {
	Ingest(ctx context.Context, raw ingest.RawFiling, rows []ingest.RawRow) (*ingest.Report, error)
}

// SyncReport summarizes one sweep across all enabled agencies.
type SyncReport struct {
	Agencies int
	Filings  int
	Failed   int
	Warnings []string
}

// Syncer pulls every enabled agency's filings and runs them through the
// ingestor. The ingestor's idempotence makes a sweep safe to repeat: already
// synced filings and rows come back as duplicates, not copies.
type Syncer struct {
	api      API
	ingestor Ingestor
	agencies []Agency

	// concurrency bounds in-flight agencies, not filings: filings within one
	// agency run serially so the per-source advisory lock is never contended
	// by our own workers.
	concurrency int
}

func NewSyncer(api API, ingestor Ingestor, agencies []Agency, concurrency int) *Syncer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Syncer{api: api, ingestor: ingestor, agencies: agencies, concurrency: concurrency}
}

// Sync fetches and ingests one year of filings for every enabled agency.
// A failed filing counts and continues; only infrastructure errors (feed
// unreachable, context canceled) abort the sweep.
func (s *Syncer) Sync(ctx context.Context, year int) (*SyncReport, error) {
	report := &SyncReport{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, agency := range s.agencies {
		if !agency.Enabled {
			continue
		}
		agency := agency

		g.Go(func() error {
			filings, failed, warnings, err := s.syncAgency(ctx, agency, year)
			if err != nil {
				return fmt.Errorf("agency %s: %w", agency.Name, err)
			}

			mu.Lock()
			report.Agencies++
			report.Filings += filings
			report.Failed += failed
			report.Warnings = append(report.Warnings, warnings...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}

	slog.Info("netfile sync finished",
		"year", year, "agencies", report.Agencies, "filings", report.Filings, "failed", report.Failed)

	return report, nil
}

func (s *Syncer) syncAgency(ctx context.Context, agency Agency, year int) (filings, failed int, warnings []string, err error) {
	list, err := s.api.Filings(ctx, agency.NetFileID, year)
	if err != nil {
		return 0, 0, nil, err
	}

	for _, f := range list {
		txs, err := s.api.Transactions(ctx, f.ID)
		if err != nil {
			return filings, failed, warnings, err
		}

		raw := ingest.RawFiling{
			FilerName:       f.FilerName,
			SourceReference: sourceReference(f.ID),
		}

		rows := make([]ingest.RawRow, 0, len(txs))
		for _, tx := range txs {
			rows = append(rows, ingest.RawRow{
				EntityName: tx.EntityName,
				Amount:     strconv.FormatFloat(tx.Amount, 'f', -1, 64),
				Date:       tx.Date,
				TypeHint:   tx.TranType,
				Memo:       "NetFile sync",
			})
		}

		result, err := s.ingestor.Ingest(ctx, raw, rows)
		if result != nil {
			for _, w := range result.Warnings {
				warnings = append(warnings, fmt.Sprintf("%s: %s", raw.SourceReference, w))
			}
		}
		if err != nil {
			slog.Error("netfile filing ingest failed",
				"agency", agency.Name, "source_reference", raw.SourceReference, "error", err)
			failed++
			continue
		}

		filings++
	}

	return filings, failed, warnings, nil
}

// sourceReference namespaces NetFile filing ids so they can never collide
// with source references from manual uploads.
func sourceReference(filingID string) string {
	return "NETFILE:" + filingID
}
