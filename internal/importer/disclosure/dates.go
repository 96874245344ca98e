package disclosure

import (
	"strconv"
	"time"
)

// Excel stores dates as day counts from an epoch of 1899-12-30. Spreadsheet
// exports sometimes leak these serials instead of formatted dates, so a cell
// like "45321" really means 2024-01-30.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Serials outside this window (roughly 1954 to 2117) are treated as ordinary
// numbers, not dates. Keeps short ids from being misread as days.
const (
	serialMin = 20000
	serialMax = 80000
)

// normalizeDate rewrites an Excel date serial to ISO form and leaves every
// other value untouched for the ingestor to parse.
func normalizeDate(s string) string {
	serial, err := strconv.Atoi(s)
	if err != nil || serial < serialMin || serial > serialMax {
		return s
	}

	return excelEpoch.AddDate(0, 0, serial).Format(time.DateOnly)
}
