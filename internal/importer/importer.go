// Package importer reads transaction batches from exported files.
package importer

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/gigdash/internal/transaction"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// FormatFromPath picks the format from a file extension, defaulting to CSV.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}

	return FormatCSV
}

type Importer interface {
	Parse(r io.Reader) ([]transaction.Record, error)
}
