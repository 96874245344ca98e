package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cvwatch/sunlight/internal/filing"
	"github.com/cvwatch/sunlight/internal/metrics"
	"github.com/cvwatch/sunlight/internal/profile"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ingest
type Repository interface {
	// BeginBatch opens the ingestion transaction for one source document,
	// serialized per source_reference so no two batches for the same filing
	// run concurrently.
	BeginBatch(ctx context.Context, sourceReference string) (BatchTx, error)

	// MarkFailed records a FAILED filing outside the (rolled back) batch
	// transaction so the failure stays visible to operators.
	MarkFailed(ctx context.Context, raw RawFiling) error
}

// BatchTx is one ingestion batch. Every write is an idempotent upsert, so an
// aborted or timed-out batch is safe to retry in full.
type BatchTx interface {
	// UpsertFiling creates or reuses the filing keyed by source_reference and
	// returns its id. An existing manual profile link is preserved.
	UpsertFiling(ctx context.Context, raw RawFiling, profileID *uuid.UUID) (uuid.UUID, error)

	// UpsertTransaction inserts the transaction keyed by external_id.
	// A conflicting fingerprint is a no-op (first write wins) and reports
	// inserted = false.
	UpsertTransaction(ctx context.Context, tx *filing.Transaction) (inserted bool, err error)

	// FinalizeFiling recomputes the filing's denormalized totals from its
	// committed transactions and transitions it to PROCESSED.
	FinalizeFiling(ctx context.Context, filingID uuid.UUID) (contributions, expenditures int64, err error)

	Commit() error
	Rollback() error
}

// ProfileSource supplies the registry snapshot resolved against per batch.
type ProfileSource interface {
	Snapshot(ctx context.Context) ([]profile.Profile, error)
}

type Service struct {
	repo     Repository
	profiles ProfileSource
	metrics  *metrics.Metrics
}

func NewService(repo Repository, profiles ProfileSource, m *metrics.Metrics) *Service {
	return &Service{repo: repo, profiles: profiles, metrics: m}
}

// Ingest processes one disclosure batch to completion: filing upsert by
// source_reference, per-row transaction upserts by fingerprint, filer-name
// resolution, totals recompute, and the PENDING -> PROCESSED transition, all
// in one storage transaction. Any row-level storage failure aborts the batch
// and marks the filing FAILED; previously committed batches are untouched.
//
// A Report comes back in every case, including failure, so callers always see
// the warning list.
func (s *Service) Ingest(ctx context.Context, raw RawFiling, rows []RawRow) (*Report, error) {
	start := time.Now()
	defer s.metrics.ObserveIngest(start)

	report := &Report{
		SourceReference: raw.SourceReference,
		Warnings:        []string{},
		Status:          filing.StatusFailed,
	}

	if raw.SourceReference == "" {
		return report, fmt.Errorf("source reference is required")
	}

	if raw.FilerName == "" {
		return report, fmt.Errorf("filer name is required")
	}

	snapshot, err := s.profiles.Snapshot(ctx)
	if err != nil {
		return report, fmt.Errorf("fetching profile snapshot: %w", err)
	}

	resolution, resolveErr := profile.Resolve(raw.FilerName, snapshot)
	report.Resolution = resolution.Quality
	s.metrics.Resolutions.WithLabelValues(string(resolution.Quality)).Inc()

	if resolveErr != nil {
		// Registry integrity violation: surface it, attach nothing.
		report.Warnings = append(report.Warnings, resolveErr.Error())
		slog.Warn("filer name resolution ambiguous",
			"filer_name", raw.FilerName, "source_reference", raw.SourceReference)
	}

	btx, err := s.repo.BeginBatch(ctx, raw.SourceReference)
	if err != nil {
		return report, fmt.Errorf("beginning batch: %w", err)
	}
	defer btx.Rollback()

	filingID, err := btx.UpsertFiling(ctx, raw, resolution.ProfileID)
	if err != nil {
		return s.fail(ctx, btx, raw, report, fmt.Errorf("upserting filing: %w", err))
	}

	report.FilingID = filingID

	for i, row := range rows {
		tx := s.buildTransaction(raw.SourceReference, filingID, i, row, report)

		inserted, err := btx.UpsertTransaction(ctx, tx)
		if err != nil {
			return s.fail(ctx, btx, raw, report, fmt.Errorf("row %d: upserting transaction: %w", i+1, err))
		}

		report.ProcessedCount++
		if inserted {
			report.InsertedCount++
		} else {
			report.DuplicateCount++
			s.metrics.DuplicateRows.Inc()
		}
	}

	if _, _, err := btx.FinalizeFiling(ctx, filingID); err != nil {
		return s.fail(ctx, btx, raw, report, fmt.Errorf("finalizing filing: %w", err))
	}

	if err := btx.Commit(); err != nil {
		return s.fail(ctx, btx, raw, report, fmt.Errorf("committing batch: %w", err))
	}

	report.Status = filing.StatusProcessed
	s.metrics.BatchesTotal.WithLabelValues(string(filing.StatusProcessed)).Inc()
	s.metrics.RowsIngested.Add(float64(report.ProcessedCount))

	return report, nil
}

// buildTransaction converts one raw row into a transaction, recovering
// locally from unparsable values: a bad amount becomes 0, a bad date becomes
// NULL, and each recovery lands in the report's warnings. The row is never
// dropped.
func (s *Service) buildTransaction(sourceReference string, filingID uuid.UUID, position int, row RawRow, report *Report) *filing.Transaction {
	warn := func(format string, args ...any) {
		report.Warnings = append(report.Warnings, fmt.Sprintf(format, args...))
		s.metrics.RowWarnings.Inc()
	}

	entityName := row.EntityName
	if entityName == "" {
		entityName = "Unknown Entity"

		warn("row %d: missing entity name", position+1)
	}

	cents, err := ParseCents(row.Amount)
	if err != nil {
		cents = 0

		warn("row %d: unparsable amount %q, recorded as 0", position+1, row.Amount)
	}

	date, err := ParseDate(row.Date)
	if err != nil {
		warn("row %d: %v, recorded without date", position+1, err)
	}

	txType := classify(row.TypeHint, cents)
	if txType == filing.TxUnknown && row.TypeHint != "" {
		warn("row %d: unrecognized type hint %q", position+1, row.TypeHint)
	}

	if cents < 0 {
		cents = -cents
	}

	return &filing.Transaction{
		FilingID:   filingID,
		EntityName: entityName,
		Amount:     cents,
		Date:       date,
		Type:       txType,
		ExternalID: filing.ExternalID(sourceReference, position, cents, date, entityName),
		Memo:       row.Memo,
	}
}

// classify maps a source type hint to a transaction type, falling back to the
// amount's sign the way the filings themselves do: outflows arrive negative.
func classify(hint string, cents int64) filing.TxType {
	switch filing.TxType(strings.ToUpper(strings.TrimSpace(hint))) {
	case filing.TxContribution:
		return filing.TxContribution
	case filing.TxExpenditure:
		return filing.TxExpenditure
	}

	if hint != "" {
		return filing.TxUnknown
	}

	if cents < 0 {
		return filing.TxExpenditure
	}

	return filing.TxContribution
}

// fail aborts the batch and records the FAILED status. The rollback happens
// before MarkFailed so its upsert does not wait on the aborted transaction's
// row locks; the deferred Rollback in Ingest then no-ops.
func (s *Service) fail(ctx context.Context, btx BatchTx, raw RawFiling, report *Report, cause error) (*Report, error) {
	report.Status = filing.StatusFailed
	s.metrics.BatchesTotal.WithLabelValues(string(filing.StatusFailed)).Inc()

	if err := btx.Rollback(); err != nil {
		slog.Error("rolling back batch", "source_reference", raw.SourceReference, "error", err)
	}

	if err := s.repo.MarkFailed(ctx, raw); err != nil {
		slog.Error("marking filing failed", "source_reference", raw.SourceReference, "error", err)
	}

	return report, cause
}
