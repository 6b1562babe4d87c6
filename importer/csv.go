package importer

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

// CSVImporter imports heightmaps written as rows of comma separated values
type CSVImporter struct{}

// NewCSVImporter creates a new CSV importer
func NewCSVImporter() *CSVImporter {
	return &CSVImporter{}
}

// CanImport accepts content whose first record parses as numbers
func (c *CSVImporter) CanImport(content string) bool {
	var line string
	for _, l := range strings.Split(content, "\n") {
		l = strings.TrimSpace(l)
		if l != "" && !strings.HasPrefix(l, "#") {
			line = l
			break
		}
	}
	if line == "" {
		return false
	}
	for _, f := range strings.Split(line, ",") {
		if _, err := strconv.ParseFloat(strings.TrimSpace(f), 64); err != nil {
			return false
		}
	}
	return true
}

// Import parses every record. Blank lines and lines starting with '#' are skipped.
func (c *CSVImporter) Import(content string) ([][]float64, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.Comment = '#'
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1 // ragged rows are reported by the grid

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	rows := make([][]float64, 0, len(records))
	for j, rec := range records {
		row := make([]float64, len(rec))
		for i, f := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", j+1, i+1, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FormatName returns the format name
func (c *CSVImporter) FormatName() string {
	return "CSV"
}

// FileExtensions returns common file extensions
func (c *CSVImporter) FileExtensions() []string {
	return []string{".csv"}
}
