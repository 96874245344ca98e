// Package ingest implements the idempotent ingestion of one disclosure batch:
// a filing header plus its already-parsed rows. Re-running a batch over the
// same source produces the same committed state.
package ingest

import (
	"github.com/google/uuid"

	"github.com/cvwatch/sunlight/internal/filing"
	"github.com/cvwatch/sunlight/internal/profile"
)

// RawFiling is an incoming disclosure submission header.
type RawFiling struct {
	FilerName       string
	SourceReference string
}

// RawRow is one monetary line item as handed over by a row source (spreadsheet
// importer, NetFile sync, API caller). All values are verbatim source
// strings; parsing and flagging happen during ingestion so nothing is
// silently dropped upstream.
type RawRow struct {
	EntityName string
	Amount     string // may carry currency symbols, separators, or junk
	Date       string // empty when the source has no date
	TypeHint   string // e.g. "CONTRIBUTION", "EXPENDITURE"; may be absent
	Memo       string
}

// Report is the outcome of one ingestion batch. Warnings are always
// populated, on success too; a recovered row problem is reported, never lost.
type Report struct {
	FilingID        uuid.UUID
	SourceReference string
	Resolution      profile.MatchQuality
	ProcessedCount  int // rows handled, including recovered ones
	InsertedCount   int // transactions newly written
	DuplicateCount  int // rows whose fingerprint already existed
	Warnings        []string
	Status          filing.Status
}
