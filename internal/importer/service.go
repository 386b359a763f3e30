package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/gigdash/internal/importer/delimited"
	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

type Service struct {
	importers map[Format]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatJSON: jsonImporter{},
			FormatCSV:  delimited.NewParser(),
		},
	}
}

// Import reads raw records; normalization happens downstream.
func (s *Service) Import(format Format, r io.Reader) ([]transaction.Record, error) {
	importer, ok := s.importers[format]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	records, err := importer.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", format, err)
	}

	return records, nil
}
