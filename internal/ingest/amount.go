package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseCents parses a source amount string into cents. Currency symbols,
// thousands separators, and surrounding whitespace are stripped; a
// parenthesized value is treated as negative (common in accounting exports).
// Format examples: "$1,000.00" -> 100000, "(250.50)" -> -25050, "12" -> 1200.
func ParseCents(s string) (int64, error) {
	clean := strings.TrimSpace(s)

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		negative = true
		clean = clean[1 : len(clean)-1]
	}

	clean = strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', ' ':
			return -1
		}

		return r
	}, clean)

	if clean == "" {
		return 0, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	cents := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if negative {
		cents = -cents
	}

	return cents, nil
}

// dateLayouts are the source date formats seen across city clerk exports.
var dateLayouts = []string{
	time.DateOnly,
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	time.RFC3339,
}

// ParseDate parses a source date string. Empty input is not an error: many
// rows legitimately carry no date and stay NULL.
func ParseDate(s string) (*time.Time, error) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return nil, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, clean); err == nil {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("unrecognized date %q", s)
}
