package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadHeader is returned for PGM files with a malformed header.
var ErrBadHeader = errors.New("malformed pgm header")

// PGMImporter imports plain (P2) grayscale images. Gray levels are divided
// by the header's maximum value.
type PGMImporter struct{}

// NewPGMImporter creates a new PGM importer
func NewPGMImporter() *PGMImporter {
	return &PGMImporter{}
}

// CanImport checks for the P2 magic number
func (p *PGMImporter) CanImport(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), "P2")
}

// Import parses the header and raster.
func (p *PGMImporter) Import(content string) ([][]float64, error) {
	fields := pgmFields(content)
	if len(fields) < 4 || fields[0] != "P2" {
		return nil, ErrBadHeader
	}

	var header [3]int
	for k := range header {
		n, err := strconv.Atoi(fields[k+1])
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrBadHeader, fields[k+1])
		}
		header[k] = n
	}
	width, height, maxval := header[0], header[1], header[2]

	samples := fields[4:]
	if len(samples) != width*height {
		return nil, fmt.Errorf("%w: have %d samples, want %dx%d", ErrBadHeader, len(samples), width, height)
	}

	rows := make([][]float64, height)
	for j := range rows {
		rows[j] = make([]float64, width)
		for i := range rows[j] {
			n, err := strconv.Atoi(samples[j*width+i])
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", j+1, i+1, err)
			}
			rows[j][i] = float64(n) / float64(maxval)
		}
	}
	return rows, nil
}

// FormatName returns the format name
func (p *PGMImporter) FormatName() string {
	return "PGM"
}

// FileExtensions returns common file extensions
func (p *PGMImporter) FileExtensions() []string {
	return []string{".pgm"}
}

// pgmFields splits content on whitespace, dropping '#' comments.
func pgmFields(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		out = append(out, strings.Fields(line)...)
	}
	return out
}
