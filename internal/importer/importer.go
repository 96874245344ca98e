package importer

import (
	"io"

	"github.com/cvwatch/sunlight/internal/ingest"
)

type Source string

const (
	SourceDisclosureCSV Source = "disclosure_csv"
)

type Importer interface {
	Parse(r io.Reader) ([]ingest.RawRow, error)
}
