package importer

import (
	"fmt"
	"io"

	"github.com/cvwatch/sunlight/internal/importer/disclosure"
	"github.com/cvwatch/sunlight/internal/ingest"
)

type Service struct {
	disclosureImporter Importer
}

func NewService() *Service {
	return &Service{
		disclosureImporter: disclosure.NewParser(),
	}
}

func (s *Service) Import(source Source, r io.Reader) ([]ingest.RawRow, error) {
	var importer Importer

	switch source {
	case SourceDisclosureCSV:
		importer = s.disclosureImporter
	default:
		return nil, fmt.Errorf("unknown source: %s", source)
	}

	return importer.Parse(r)
}
