package field

import (
	"errors"
	"fmt"
	"math"
)

// DefaultScale is the noise-space distance between adjacent grid samples.
const DefaultScale = 0.05

// ErrRaggedRows is returned when imported rows differ in length.
var ErrRaggedRows = errors.New("rows have different lengths")

// Grid is an immutable 2D array of samples in [0, 1], indexed [col][row].
// GridSize is the pixel spacing between samples.
type Grid struct {
	values   [][]float64
	cols     int
	rows     int
	gridSize float64
}

// MaxCells bounds the number of samples in one grid. Larger lattices are
// treated as degenerate.
const MaxCells = 1 << 24

// Dimensions returns the column and row counts for a canvas sampled every
// gridSize pixels: ceil(width/gridSize)+1 by ceil(height/gridSize)+1.
// Non-positive or non-finite inputs, and lattices above MaxCells, yield 0, 0.
func Dimensions(width, height, gridSize float64) (cols, rows int) {
	if !positiveFinite(width) || !positiveFinite(height) || !positiveFinite(gridSize) {
		return 0, 0
	}
	c := math.Ceil(width/gridSize) + 1
	r := math.Ceil(height/gridSize) + 1
	if c*r > MaxCells {
		return 0, 0
	}
	return int(c), int(r)
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Synthesize samples noise at (i*scale, j*scale) for every grid point and
// remaps the result from [-1, 1] to [0, 1]. A degenerate canvas returns an
// empty grid rather than failing.
func Synthesize(width, height, gridSize, scale float64, noise Noise) *Grid {
	cols, rows := Dimensions(width, height, gridSize)
	g := &Grid{cols: cols, rows: rows, gridSize: gridSize}
	if cols == 0 || rows == 0 || noise == nil {
		g.cols, g.rows = 0, 0
		return g
	}
	if !positiveFinite(scale) {
		scale = DefaultScale
	}

	g.values = make([][]float64, cols)
	for i := 0; i < cols; i++ {
		col := make([]float64, rows)
		for j := 0; j < rows; j++ {
			col[j] = (noise.Eval2(float64(i)*scale, float64(j)*scale) + 1) / 2
		}
		g.values[i] = col
	}
	return g
}

// FromRows builds a grid from row-major samples (rows[j][i]), such as an
// imported heightmap. Values are used as given.
func FromRows(rows [][]float64, gridSize float64) (*Grid, error) {
	if gridSize <= 0 {
		return nil, fmt.Errorf("invalid grid size %v", gridSize)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return &Grid{gridSize: gridSize}, nil
	}
	width := len(rows[0])
	for j, r := range rows {
		if len(r) != width {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", j, len(r), width, ErrRaggedRows)
		}
	}

	g := &Grid{cols: width, rows: len(rows), gridSize: gridSize}
	g.values = make([][]float64, width)
	for i := 0; i < width; i++ {
		g.values[i] = make([]float64, len(rows))
		for j := range rows {
			g.values[i][j] = rows[j][i]
		}
	}
	return g, nil
}

// Size returns the number of columns and rows.
func (g *Grid) Size() (cols, rows int) {
	return g.cols, g.rows
}

// GridSize returns the pixel spacing between samples.
func (g *Grid) GridSize() float64 {
	return g.gridSize
}

// At returns the sample at column i, row j. Out of range reads return 0.
func (g *Grid) At(i, j int) float64 {
	if i < 0 || i >= g.cols || j < 0 || j >= g.rows {
		return 0
	}
	return g.values[i][j]
}

// Degenerate reports whether the grid has no 2x2 cell to march over.
func (g *Grid) Degenerate() bool {
	return g.cols < 2 || g.rows < 2
}

// Canvas returns the pixel extent covered by the grid.
func (g *Grid) Canvas() (width, height float64) {
	if g.cols == 0 || g.rows == 0 {
		return 0, 0
	}
	return float64(g.cols-1) * g.gridSize, float64(g.rows-1) * g.gridSize
}
