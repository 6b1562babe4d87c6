// Package importer reads heightmaps and previously exported results.
package importer

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"topo/field"
)

var (
	// ErrUnknownFormat is returned when no importer accepts the content.
	ErrUnknownFormat = errors.New("unable to detect format")
	// ErrEmptyHeightmap is returned for content without any samples.
	ErrEmptyHeightmap = errors.New("empty heightmap")
	// ErrOutOfRange is returned for samples outside [0,1].
	ErrOutOfRange = errors.New("sample out of range")
)

// Importer defines methods for importing heightmaps from various formats
type Importer interface {
	// CanImport checks if the given content can be imported by this importer
	CanImport(content string) bool

	// Import converts the content into row-major samples in [0,1]
	Import(content string) ([][]float64, error)

	// FormatName returns the human-readable name of the format
	FormatName() string

	// FileExtensions returns common file extensions for this format
	FileExtensions() []string
}

// ImporterRegistry manages available importers
type ImporterRegistry struct {
	importers []Importer
}

// NewImporterRegistry creates a new importer registry. Detection tries
// the more specific formats first.
func NewImporterRegistry() *ImporterRegistry {
	r := &ImporterRegistry{}
	r.Register(NewPGMImporter())
	r.Register(NewJSONImporter())
	r.Register(NewCSVImporter())
	return r
}

// Register adds a new importer to the registry
func (r *ImporterRegistry) Register(importer Importer) {
	r.importers = append(r.importers, importer)
}

// DetectFormat attempts to detect the format of the given content
func (r *ImporterRegistry) DetectFormat(content string) (Importer, error) {
	for _, imp := range r.importers {
		if imp.CanImport(content) {
			return imp, nil
		}
	}
	return nil, ErrUnknownFormat
}

// Import detects the format and builds a grid with samples gridSize apart.
func (r *ImporterRegistry) Import(content string, gridSize float64) (*field.Grid, error) {
	importer, err := r.DetectFormat(content)
	if err != nil {
		return nil, err
	}
	return toGrid(importer, content, gridSize)
}

// ImportWithFormat imports content using a specific format
func (r *ImporterRegistry) ImportWithFormat(content, format string, gridSize float64) (*field.Grid, error) {
	format = strings.ToLower(format)

	for _, imp := range r.importers {
		if strings.ToLower(imp.FormatName()) == format {
			return toGrid(imp, content, gridSize)
		}
		for _, ext := range imp.FileExtensions() {
			if strings.TrimPrefix(ext, ".") == strings.TrimPrefix(format, ".") {
				return toGrid(imp, content, gridSize)
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// AvailableFormats returns a list of available import formats
func (r *ImporterRegistry) AvailableFormats() []string {
	formats := make([]string, len(r.importers))
	for i, imp := range r.importers {
		formats[i] = imp.FormatName()
	}
	return formats
}

func toGrid(imp Importer, content string, gridSize float64) (*field.Grid, error) {
	rows, err := imp.Import(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", imp.FormatName(), err)
	}
	if err := checkSamples(rows); err != nil {
		return nil, fmt.Errorf("%s: %w", imp.FormatName(), err)
	}
	g, err := field.FromRows(rows, gridSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", imp.FormatName(), err)
	}
	return g, nil
}

// checkSamples rejects empty input and values outside [0,1].
func checkSamples(rows [][]float64) error {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return ErrEmptyHeightmap
	}
	for j, row := range rows {
		for i, v := range row {
			if math.IsNaN(v) || v < 0 || v > 1 {
				return fmt.Errorf("%w: %v at row %d column %d", ErrOutOfRange, v, j, i)
			}
		}
	}
	return nil
}
