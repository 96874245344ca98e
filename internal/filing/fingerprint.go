package filing

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/cvwatch/sunlight/internal/normalize"
)

// ExternalID derives the dedup fingerprint for one disclosed row from its
// stable attributes: the owning document, the row's position within it, the
// amount in cents, the transaction date, and the normalized entity name.
// Nothing random or time-based goes in, so re-running ingestion over the same
// source produces the same set of ids.
//
// The source data carries no authoritative row identifier, so position is part
// of the key; if a source ever re-exports rows in a different order the rows
// are, for this engine's purposes, different rows.
func ExternalID(sourceReference string, position int, amountCents int64, date *time.Time, entityName string) string {
	h := sha256.New()

	parts := []string{
		sourceReference,
		strconv.Itoa(position),
		strconv.FormatInt(amountCents, 10),
		fingerprintDate(date),
		normalize.Name(entityName),
	}
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}

func fingerprintDate(date *time.Time) string {
	if date == nil {
		return ""
	}

	return date.Format(time.DateOnly)
}
