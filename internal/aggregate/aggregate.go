// Package aggregate computes financial rollups over committed filings.
// Results are a pure function of committed state: the denormalized totals
// cached on filings are derived values, and a from-scratch recompute must
// reproduce them exactly.
package aggregate

import (
	"time"

	"github.com/google/uuid"
)

// Scope selects whose money is summed. It is a closed set: per-profile, or
// per-jurisdiction as the union of every profile tagged with that city. A
// jurisdiction is never resolved by string-matching filer names; that would
// reintroduce the ambiguity the resolver exists to remove.
type Scope interface {
	scope()
}

type ProfileScope struct{ ProfileID uuid.UUID }

type JurisdictionScope struct{ City string }

func (ProfileScope) scope()      {}
func (JurisdictionScope) scope() {}

// TimeRange restricts aggregation to transactions dated within [Start, End].
// Either bound may be nil for an open end.
type TimeRange struct {
	Start *time.Time
	End   *time.Time
}

// PeriodTotal is one year's slice of the time series. Undated transactions
// contribute to the overall totals but not to any period.
type PeriodTotal struct {
	Period        string // "2024"
	Contributions int64  // cents
	Expenditures  int64  // cents
}

// Summary is the rollup for one scope. Only PROCESSED filings contribute; a
// PENDING filing mid-batch is invisible here, so concurrent ingestion of
// other filings never double-counts or half-counts.
type Summary struct {
	TotalContributions int64 // cents
	TotalExpenditures  int64 // cents
	ByPeriod           []PeriodTotal
}
