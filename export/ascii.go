package export

import (
	"fmt"
	"math"
	"topo/canvas"
	"topo/core"
)

// DefaultASCIIColumns is the output width used by NewExporter.
const DefaultASCIIColumns = 120

// ASCIIExporter exports results to character art
type ASCIIExporter struct {
	columns int
	style   canvas.Style
}

// NewASCIIExporter creates a new ASCII exporter producing columns characters
// per row. Rows follow the canvas aspect ratio, halved because terminal
// cells are about twice as tall as they are wide.
func NewASCIIExporter(columns int) *ASCIIExporter {
	if columns <= 0 {
		columns = DefaultASCIIColumns
	}
	return &ASCIIExporter{
		columns: columns,
		style:   canvas.DefaultStyle(),
	}
}

// maxASCIIRows bounds the output of very tall canvases.
const maxASCIIRows = 4096

// Rows returns the row count used for a canvas of the given size. A
// degenerate canvas gets a single blank row.
func (e *ASCIIExporter) Rows(width, height float64) int {
	ratio := height / width
	if !(width > 0) || !(height > 0) || math.IsInf(ratio, 0) || math.IsNaN(ratio) {
		return 1
	}
	rows := math.Round(float64(e.columns) * ratio / 2)
	return int(math.Max(1, math.Min(rows, maxASCIIRows)))
}

// Export rasterizes the result
func (e *ASCIIExporter) Export(r *core.Result) ([]byte, error) {
	if r == nil {
		return nil, ErrNilResult
	}

	c, err := canvas.Rasterize(r, e.columns, e.Rows(r.Params.Width, r.Params.Height), e.style)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize result: %w", err)
	}
	return []byte(c.String() + "\n"), nil
}

// FileExtension returns the recommended file extension
func (e *ASCIIExporter) FileExtension() string {
	return ".txt"
}

// FormatName returns the format name
func (e *ASCIIExporter) FormatName() string {
	return "ASCII Art"
}
