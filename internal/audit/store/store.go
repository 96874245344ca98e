package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/cvwatch/sunlight/internal/audit"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListFilingRecords(ctx context.Context) ([]audit.FilingRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filer_name, source_reference, profile_id
		FROM filings
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing filing records: %w", err)
	}
	defer rows.Close()

	var records []audit.FilingRecord
	for rows.Next() {
		var r audit.FilingRecord
		var profileID *uuid.UUID
		if err := rows.Scan(&r.ID, &r.FilerName, &r.SourceReference, &profileID); err != nil {
			return nil, fmt.Errorf("scanning filing record: %w", err)
		}
		r.ProfileID = profileID
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating filing records: %w", err)
	}
	return records, nil
}
