// Package audit runs read-only consistency diagnostics over committed
// filings and the profile registry. Everything it reports is advisory:
// the auditor never mutates state, operators act on its findings through
// the explicit linking and edit paths.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Candidate is an advisory lead for manual linking. It is produced by
// substring comparison of normalized names and must never be applied
// automatically.
type Candidate struct {
	ProfileID uuid.UUID `json:"profile_id"`
	Name      string    `json:"name"`
}

// UnmatchedFiling is a filing with no linked profile.
type UnmatchedFiling struct {
	FilingID        uuid.UUID   `json:"filing_id"`
	FilerName       string      `json:"filer_name"`
	SourceReference string      `json:"source_reference"`
	Suggestions     []Candidate `json:"suggestions"`
}

// AmbiguousName is a normalized filer name that resolves to more than one
// politician profile. This breaks the registry's uniqueness invariant and
// needs an administrative fix before affected filings can resolve.
type AmbiguousName struct {
	Name       string      `json:"name"`
	ProfileIDs []uuid.UUID `json:"profile_ids"`
}

// DuplicateGroup flags filings sharing a normalized filer name as
// POTENTIAL_DUPLICATE. Repeated filings from one filer are often
// legitimate, so this is triage input, not a verdict.
type DuplicateGroup struct {
	FilerName string      `json:"filer_name"`
	FilingIDs []uuid.UUID `json:"filing_ids"`
}

type Report struct {
	GeneratedAt         time.Time         `json:"generated_at"`
	FilingCount         int               `json:"filing_count"`
	ExactCount          int               `json:"exact_count"`
	Unmatched           []UnmatchedFiling `json:"unmatched"`
	Ambiguous           []AmbiguousName   `json:"ambiguous"`
	PotentialDuplicates []DuplicateGroup  `json:"potential_duplicates"`
}
