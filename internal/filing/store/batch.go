package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"

	"github.com/cvwatch/sunlight/internal/filing"
	"github.com/cvwatch/sunlight/internal/ingest"
)

// batchLockKey derives the advisory lock key serializing ingestion per source
// document.
func batchLockKey(sourceReference string) int64 {
	h := fnv.New64a()
	h.Write([]byte(sourceReference))

	return int64(h.Sum64())
}

type batchTx struct {
	tx *sql.Tx
}

// BeginBatch opens the ingestion transaction and takes a transaction-scoped
// advisory lock on the source reference. A concurrent batch for the same
// document blocks here until the first one commits or rolls back; batches for
// different documents proceed in parallel.
func (s *Store) BeginBatch(ctx context.Context, sourceReference string) (ingest.BatchTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning batch tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", batchLockKey(sourceReference)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring batch lock: %w", err)
	}

	return &batchTx{tx: dbTx}, nil
}

func (b *batchTx) Commit() error   { return b.tx.Commit() }
func (b *batchTx) Rollback() error { return b.tx.Rollback() }

// UpsertFiling creates the filing or reuses the one already recorded for this
// source document. A re-ingest refreshes the resolver's outcome only when the
// filing has no profile yet, so a manual operator link is never overwritten
// by a NO_MATCH re-run.
func (b *batchTx) UpsertFiling(ctx context.Context, raw ingest.RawFiling, profileID *uuid.UUID) (uuid.UUID, error) {
	query := `
		INSERT INTO filings (filer_name, source_reference, profile_id, status, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (source_reference) DO UPDATE
		SET filer_name = EXCLUDED.filer_name,
		    profile_id = COALESCE(filings.profile_id, EXCLUDED.profile_id),
		    status = EXCLUDED.status
		RETURNING id
	`

	var id uuid.UUID
	if err := b.tx.QueryRowContext(ctx, query,
		raw.FilerName,
		raw.SourceReference,
		profileID,
		filing.StatusPending,
	).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("upserting filing: %w", err)
	}

	return id, nil
}

// UpsertTransaction inserts the row keyed by its fingerprint in a single
// atomic statement. A fingerprint conflict means the row was already ingested
// by an earlier run of the same source; the existing figures stay untouched
// because amount corrections go through the audited administrative path, not
// an implicit overwrite.
func (b *batchTx) UpsertTransaction(ctx context.Context, tx *filing.Transaction) (bool, error) {
	query := `
		INSERT INTO transactions (filing_id, entity_name, amount, transaction_date, transaction_type, external_id, memo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (external_id) DO NOTHING
		RETURNING id, created_at
	`

	err := b.tx.QueryRowContext(ctx, query,
		tx.FilingID,
		tx.EntityName,
		tx.Amount,
		tx.Date,
		tx.Type,
		tx.ExternalID,
		nullable(tx.Memo),
	).Scan(&tx.ID, &tx.CreatedAt)
	if err == sql.ErrNoRows {
		// Conflict path: the insert was a no-op.
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("upserting transaction: %w", err)
	}

	return true, nil
}

// FinalizeFiling recomputes the denormalized totals from the transaction set
// and transitions the filing to PROCESSED, all inside the batch transaction
// so readers never see a half-finalized filing.
func (b *batchTx) FinalizeFiling(ctx context.Context, filingID uuid.UUID) (int64, int64, error) {
	query := `
		UPDATE filings
		SET total_contributions = (
			SELECT COALESCE(SUM(amount), 0) FROM transactions
			WHERE filing_id = $1 AND transaction_type = $2
		),
		total_expenditures = (
			SELECT COALESCE(SUM(amount), 0) FROM transactions
			WHERE filing_id = $1 AND transaction_type = $3
		),
		status = $4
		WHERE id = $1
		RETURNING total_contributions, total_expenditures
	`

	var contributions, expenditures int64
	if err := b.tx.QueryRowContext(ctx, query,
		filingID,
		filing.TxContribution,
		filing.TxExpenditure,
		filing.StatusProcessed,
	).Scan(&contributions, &expenditures); err != nil {
		return 0, 0, fmt.Errorf("finalizing filing: %w", err)
	}

	return contributions, expenditures, nil
}

// MarkFailed upserts the FAILED status outside the batch transaction, after
// its rollback, so the failure is recorded even when the filing row itself
// was part of the aborted batch.
func (s *Store) MarkFailed(ctx context.Context, raw ingest.RawFiling) error {
	query := `
		INSERT INTO filings (filer_name, source_reference, status, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (source_reference) DO UPDATE SET status = EXCLUDED.status
	`

	if _, err := s.db.ExecContext(ctx, query, raw.FilerName, raw.SourceReference, filing.StatusFailed); err != nil {
		return fmt.Errorf("marking filing failed: %w", err)
	}

	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
