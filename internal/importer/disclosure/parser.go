package disclosure

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	enc "github.com/cvwatch/sunlight/internal/encoding"
	"github.com/cvwatch/sunlight/internal/ingest"
)

// Parser reads campaign disclosure CSV exports and produces raw rows for
// ingestion. It auto-detects which schedule format is being used by matching
// column headers against known layouts, and leaves every field as the raw
// string it found: parsing, warning, and flagging bad values is the
// ingestor's job, so no row is silently repaired here.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]ingest.RawRow, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	layout, colMap, headerIdx := detectLayout(rows)
	if layout == nil {
		return nil, fmt.Errorf("no recognized disclosure layout: expected schedule A, schedule E, combined, or generic columns")
	}

	return extractRows(layout, colMap, rows[headerIdx+1:]), nil
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectLayout scans rows for a header that matches a known layout. Agency
// exports often carry preamble lines before the real header, so every row is
// a candidate. Returns the matched layout, column index map, and header row
// index.
func detectLayout(rows [][]string) (*Layout, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range layouts {
			if matchesLayout(&layouts[i], cols) {
				return &layouts[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesLayout checks if all required columns of a layout are present.
func matchesLayout(l *Layout, cols colIndex) bool {
	for _, name := range l.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// extractRows turns data rows into raw ingestion rows using the matched
// layout. Rows with nothing in any mapped column are footer or spacer lines
// and are skipped; everything else passes through untouched.
func extractRows(l *Layout, cols colIndex, rows [][]string) []ingest.RawRow {
	entityIdx := cols[l.EntityCol]
	dateIdx := cols[l.DateCol]
	amountIdx := cols[l.AmountCol]

	typeIdx := -1
	if l.TypeCol != "" {
		typeIdx = cols[l.TypeCol]
	}

	memoIdx := -1
	if l.MemoCol != "" {
		if i, ok := cols[l.MemoCol]; ok {
			memoIdx = i
		}
	}

	var out []ingest.RawRow

	for _, row := range rows {
		raw := ingest.RawRow{
			EntityName: cellValue(row, entityIdx),
			Date:       normalizeDate(cellValue(row, dateIdx)),
			Amount:     cellValue(row, amountIdx),
		}

		if raw.EntityName == "" && raw.Amount == "" && raw.Date == "" {
			continue
		}

		if typeIdx >= 0 {
			raw.TypeHint = cellValue(row, typeIdx)
		} else {
			raw.TypeHint = l.TypeHint
		}

		if memoIdx >= 0 {
			raw.Memo = cellValue(row, memoIdx)
		}

		out = append(out, raw)
	}

	return out
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
