package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/cvwatch/sunlight/internal/filing"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectFilingColumns = `
	id, filer_name, source_reference, profile_id,
	COALESCE(total_contributions, 0), COALESCE(total_expenditures, 0),
	status, created_at
`

func scanFiling(s scanner) (*filing.Filing, error) {
	var f filing.Filing

	var statusStr string

	var profileID *uuid.UUID

	if err := s.Scan(
		&f.ID, &f.FilerName, &f.SourceReference, &profileID,
		&f.TotalContributions, &f.TotalExpenditures,
		&statusStr, &f.CreatedAt,
	); err != nil {
		return nil, err
	}

	f.Status = filing.Status(statusStr)
	f.ProfileID = profileID

	return &f, nil
}

const selectTransactionColumns = `
	id, filing_id, entity_name, amount, transaction_date, transaction_type,
	external_id, memo, created_at
`

func scanTransaction(s scanner) (*filing.Transaction, error) {
	var tx filing.Transaction

	var typeStr string

	var memo sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.FilingID, &tx.EntityName, &tx.Amount, &tx.Date, &typeStr,
		&tx.ExternalID, &memo, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = filing.TxType(typeStr)
	tx.Memo = memo.String

	return &tx, nil
}

func (s *Store) GetFiling(ctx context.Context, id uuid.UUID) (*filing.Filing, error) {
	query := `SELECT ` + selectFilingColumns + ` FROM filings WHERE id = $1`

	f, err := scanFiling(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, filing.ErrNotFound
		}

		return nil, fmt.Errorf("getting filing: %w", err)
	}

	return f, nil
}

func (s *Store) ListFilings(ctx context.Context, filter filing.ListFilter) ([]*filing.Filing, error) {
	query := `SELECT ` + selectFilingColumns + ` FROM filings WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.ProfileID != nil {
		query += fmt.Sprintf(" AND profile_id = $%d", argIdx)

		args = append(args, *filter.ProfileID)
		argIdx++
	}

	if filter.Unresolved {
		query += " AND profile_id IS NULL"
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing filings: %w", err)
	}
	defer rows.Close()

	var filings []*filing.Filing

	for rows.Next() {
		f, err := scanFiling(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning filing: %w", err)
		}

		filings = append(filings, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating filings: %w", err)
	}

	return filings, nil
}

func (s *Store) ListTransactions(ctx context.Context, filingID uuid.UUID) ([]*filing.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE filing_id = $1
		ORDER BY transaction_date ASC NULLS LAST, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, filingID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*filing.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) LinkProfile(ctx context.Context, filingID, profileID uuid.UUID) error {
	query := `UPDATE filings SET profile_id = $1 WHERE id = $2`

	res, err := s.db.ExecContext(ctx, query, profileID, filingID)
	if err != nil {
		return fmt.Errorf("linking profile: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if n == 0 {
		return filing.ErrNotFound
	}

	return nil
}

// DeleteFiling removes a filing; owned transactions go with it via the
// ON DELETE CASCADE constraint on transactions.filing_id.
func (s *Store) DeleteFiling(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM filings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting filing: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if n == 0 {
		return filing.ErrNotFound
	}

	return nil
}
