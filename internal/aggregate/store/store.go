package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cvwatch/sunlight/internal/aggregate"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) TotalsForProfiles(ctx context.Context, profileIDs []uuid.UUID, window *aggregate.TimeRange) (*aggregate.Summary, error) {
	if len(profileIDs) == 0 {
		return &aggregate.Summary{ByPeriod: []aggregate.PeriodTotal{}}, nil
	}

	where, args := scopeClause(profileIDs, window)

	summary := &aggregate.Summary{ByPeriod: []aggregate.PeriodTotal{}}
	totalsQuery := `
		SELECT
			COALESCE(SUM(CASE WHEN t.transaction_type = 'CONTRIBUTION' THEN t.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN t.transaction_type = 'EXPENDITURE' THEN t.amount ELSE 0 END), 0)
		FROM transactions t
		JOIN filings f ON f.id = t.filing_id
		` + where
	err := s.db.QueryRowContext(ctx, totalsQuery, args...).
		Scan(&summary.TotalContributions, &summary.TotalExpenditures)
	if err != nil {
		return nil, fmt.Errorf("summing transactions: %w", err)
	}

	periodQuery := `
		SELECT
			TO_CHAR(t.transaction_date, 'YYYY'),
			COALESCE(SUM(CASE WHEN t.transaction_type = 'CONTRIBUTION' THEN t.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN t.transaction_type = 'EXPENDITURE' THEN t.amount ELSE 0 END), 0)
		FROM transactions t
		JOIN filings f ON f.id = t.filing_id
		` + where + `
		AND t.transaction_date IS NOT NULL
		GROUP BY 1
		ORDER BY 1`
	rows, err := s.db.QueryContext(ctx, periodQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("summing transactions by period: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p aggregate.PeriodTotal
		if err := rows.Scan(&p.Period, &p.Contributions, &p.Expenditures); err != nil {
			return nil, fmt.Errorf("scanning period total: %w", err)
		}
		summary.ByPeriod = append(summary.ByPeriod, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating period totals: %w", err)
	}

	return summary, nil
}

// scopeClause builds the shared WHERE clause. Only PROCESSED filings count:
// a batch still inside its transaction is invisible, so readers never see a
// half-ingested filing.
func scopeClause(profileIDs []uuid.UUID, window *aggregate.TimeRange) (string, []any) {
	args := make([]any, 0, len(profileIDs)+2)
	placeholders := make([]string, 0, len(profileIDs))
	for _, id := range profileIDs {
		args = append(args, id)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	where := fmt.Sprintf(
		"WHERE f.status = 'PROCESSED' AND f.profile_id IN (%s)",
		strings.Join(placeholders, ", "),
	)
	if window != nil && window.Start != nil {
		args = append(args, *window.Start)
		where += fmt.Sprintf(" AND t.transaction_date >= $%d", len(args))
	}
	if window != nil && window.End != nil {
		args = append(args, *window.End)
		where += fmt.Sprintf(" AND t.transaction_date <= $%d", len(args))
	}
	return where, args
}

func (s *Store) ProfilesInCity(ctx context.Context, city string) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM profiles WHERE city = $1", city)
	if err != nil {
		return nil, fmt.Errorf("listing profiles in city: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning profile id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profile ids: %w", err)
	}
	return ids, nil
}

// RecomputeFilingTotals rewrites the cached totals from the transaction rows.
// The IS DISTINCT FROM guard means rows affected doubles as a drift signal:
// zero rows touched, nothing had drifted.
func (s *Store) RecomputeFilingTotals(ctx context.Context, filingID uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE filings f
		SET total_contributions = c.contributions,
		    total_expenditures = c.expenditures
		FROM (
			SELECT
				COALESCE(SUM(CASE WHEN transaction_type = 'CONTRIBUTION' THEN amount ELSE 0 END), 0) AS contributions,
				COALESCE(SUM(CASE WHEN transaction_type = 'EXPENDITURE' THEN amount ELSE 0 END), 0) AS expenditures
			FROM transactions
			WHERE filing_id = $1
		) c
		WHERE f.id = $1
		  AND (f.total_contributions IS DISTINCT FROM c.contributions
		    OR f.total_expenditures IS DISTINCT FROM c.expenditures)`,
		filingID)
	if err != nil {
		return false, fmt.Errorf("recomputing filing totals: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	return affected > 0, nil
}

func (s *Store) ListProcessedFilingIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM filings WHERE status = 'PROCESSED' ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("listing processed filings: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning filing id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating filing ids: %w", err)
	}
	return ids, nil
}
