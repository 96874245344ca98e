package aggregate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cvwatch/sunlight/internal/metrics"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=aggregate

type Repository interface {
	// TotalsForProfiles sums transactions on PROCESSED filings linked to any
	// of the given profiles, optionally windowed by transaction date.
	TotalsForProfiles(ctx context.Context, profileIDs []uuid.UUID, window *TimeRange) (*Summary, error)
	// ProfilesInCity lists profile ids whose city matches exactly.
	ProfilesInCity(ctx context.Context, city string) ([]uuid.UUID, error)
	// RecomputeFilingTotals rewrites one filing's cached totals from its
	// transactions. It reports whether the stored values actually changed.
	RecomputeFilingTotals(ctx context.Context, filingID uuid.UUID) (bool, error)
	ListProcessedFilingIDs(ctx context.Context) ([]uuid.UUID, error)
}

type Service struct {
	repo    Repository
	metrics *metrics.Metrics
}

func NewService(repo Repository, m *metrics.Metrics) *Service {
	return &Service{repo: repo, metrics: m}
}

// Totals computes the rollup for a scope. An empty jurisdiction (no profiles
// tagged with that city) yields a zero summary, not an error.
func (s *Service) Totals(ctx context.Context, scope Scope, window *TimeRange) (*Summary, error) {
	switch sc := scope.(type) {
	case ProfileScope:
		return s.repo.TotalsForProfiles(ctx, []uuid.UUID{sc.ProfileID}, window)
	case JurisdictionScope:
		ids, err := s.repo.ProfilesInCity(ctx, sc.City)
		if err != nil {
			return nil, fmt.Errorf("listing profiles in %q: %w", sc.City, err)
		}
		if len(ids) == 0 {
			return &Summary{ByPeriod: []PeriodTotal{}}, nil
		}
		return s.repo.TotalsForProfiles(ctx, ids, window)
	default:
		return nil, fmt.Errorf("unsupported aggregation scope %T", scope)
	}
}

// RecomputeFiling re-derives one filing's cached totals from its transactions.
func (s *Service) RecomputeFiling(ctx context.Context, filingID uuid.UUID) (bool, error) {
	changed, err := s.repo.RecomputeFilingTotals(ctx, filingID)
	if err != nil {
		return false, fmt.Errorf("recomputing totals for filing %s: %w", filingID, err)
	}
	if changed {
		s.metrics.RecomputeDrift.Inc()
		slog.Warn("cached filing totals drifted from transactions", "filing_id", filingID)
	}
	return changed, nil
}

// RecomputeAll sweeps every processed filing and reports how many had drifted
// totals. A clean system reports zero.
func (s *Service) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := s.repo.ListProcessedFilingIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing processed filings: %w", err)
	}

	drifted := 0
	for _, id := range ids {
		changed, err := s.RecomputeFiling(ctx, id)
		if err != nil {
			return drifted, err
		}
		if changed {
			drifted++
		}
	}

	slog.Info("totals recompute sweep finished", "filings", len(ids), "drifted", drifted)
	return drifted, nil
}
