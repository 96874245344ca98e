// Package filing holds the disclosure-side domain: a Filing is one disclosure
// submission identified by its source document, and a Transaction is one
// monetary line item owned by exactly one Filing.
package filing

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a Filing's ingestion batch.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusProcessed Status = "PROCESSED"
	StatusFailed    Status = "FAILED"
)

// TxType distinguishes inflow from outflow. Amounts are stored as absolute
// cents; direction is carried by the type, never by the sign.
type TxType string

const (
	TxContribution TxType = "CONTRIBUTION"
	TxExpenditure  TxType = "EXPENDITURE"
	TxUnknown      TxType = "UNKNOWN"
)

var ErrNotFound = errors.New("filing not found")

// Filing is one disclosure submission. SourceReference identifies the
// originating document and is the dedup key: uploading the same file twice
// reuses the same Filing. ProfileID is nil while the filer name is unresolved.
// TotalContributions / TotalExpenditures are a derived cache recomputed from
// the transaction set, never a source of truth.
type Filing struct {
	ID                 uuid.UUID
	FilerName          string // raw, as received
	SourceReference    string
	ProfileID          *uuid.UUID
	TotalContributions int64 // cents
	TotalExpenditures  int64 // cents
	Status             Status
	CreatedAt          time.Time
}

// Transaction is one monetary line item. ExternalID is the deterministic
// fingerprint of the row's stable attributes and is globally unique, so
// re-ingesting the same logical row never creates a second one. Committed
// transactions are immutable outside administrative correction.
type Transaction struct {
	ID         uuid.UUID
	FilingID   uuid.UUID
	EntityName string
	Amount     int64 // cents, absolute value
	Date       *time.Time
	Type       TxType
	ExternalID string
	Memo       string
	CreatedAt  time.Time
}
