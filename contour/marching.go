// Package contour extracts iso-contour segments from a scalar grid with marching squares.
package contour

import (
	"topo/core"
	"topo/field"
	"topo/geometry"
)

// Edge identifies one side of a grid cell.
type Edge int

const (
	Top Edge = iota
	Right
	Bottom
	Left
)

// String returns the string representation of an Edge.
func (e Edge) String() string {
	switch e {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// Corner bit weights of the cell state.
const (
	TopLeft     = 8
	TopRight    = 4
	BottomRight = 2
	BottomLeft  = 1
)

// EdgePair is one emitted segment, named by the two cell edges it joins.
type EdgePair [2]Edge

// Table maps each of the 16 cell states to the segments it emits.
// States 0 and 15 emit nothing. The saddles 5 and 10 always split into two
// segments without sampling the cell center.
var Table = [16][]EdgePair{
	0:  nil,
	1:  {{Left, Bottom}},
	2:  {{Bottom, Right}},
	3:  {{Left, Right}},
	4:  {{Top, Right}},
	5:  {{Left, Top}, {Bottom, Right}},
	6:  {{Top, Bottom}},
	7:  {{Left, Top}},
	8:  {{Left, Top}},
	9:  {{Top, Bottom}},
	10: {{Left, Bottom}, {Top, Right}},
	11: {{Top, Right}},
	12: {{Left, Right}},
	13: {{Bottom, Right}},
	14: {{Left, Bottom}},
	15: nil,
}

// Cell holds the four corner samples of one grid cell.
type Cell struct {
	TL, TR, BR, BL float64
}

// State returns the 4-bit corner classification of the cell: a corner
// contributes its weight when its value is at or above threshold.
func (c Cell) State(threshold float64) int {
	state := 0
	if c.TL >= threshold {
		state |= TopLeft
	}
	if c.TR >= threshold {
		state |= TopRight
	}
	if c.BR >= threshold {
		state |= BottomRight
	}
	if c.BL >= threshold {
		state |= BottomLeft
	}
	return state
}

// Segments returns the contour segments crossing a cell whose top-left
// corner sits at (x, y) and whose sides are size pixels long.
func (c Cell) Segments(x, y, size, threshold float64) []core.Segment {
	pairs := Table[c.State(threshold)]
	if len(pairs) == 0 {
		return nil
	}
	out := make([]core.Segment, 0, len(pairs))
	for _, pair := range pairs {
		out = append(out, core.Segment{
			P1: c.crossing(pair[0], x, y, size, threshold),
			P2: c.crossing(pair[1], x, y, size, threshold),
		})
	}
	return out
}

// crossing interpolates where the threshold crosses the given edge.
// Edges run a->b (top), b->c (right), d->c (bottom) and a->d (left).
func (c Cell) crossing(e Edge, x, y, size, threshold float64) core.Point {
	switch e {
	case Top:
		return core.Point{X: x + size*geometry.InverseLerp(c.TL, c.TR, threshold), Y: y}
	case Right:
		return core.Point{X: x + size, Y: y + size*geometry.InverseLerp(c.TR, c.BR, threshold)}
	case Bottom:
		return core.Point{X: x + size*geometry.InverseLerp(c.BL, c.BR, threshold), Y: y + size}
	default:
		return core.Point{X: x, Y: y + size*geometry.InverseLerp(c.TL, c.BL, threshold)}
	}
}

// Extract walks every 2x2 cell of the grid and returns the segments of the
// iso-contour at threshold. Cells are visited column by column.
func Extract(g *field.Grid, threshold float64) []core.Segment {
	if g == nil || g.Degenerate() {
		return nil
	}
	cols, rows := g.Size()
	size := g.GridSize()

	var segments []core.Segment
	for i := 0; i < cols-1; i++ {
		for j := 0; j < rows-1; j++ {
			cell := Cell{
				TL: g.At(i, j),
				TR: g.At(i+1, j),
				BR: g.At(i+1, j+1),
				BL: g.At(i, j+1),
			}
			segments = append(segments, cell.Segments(float64(i)*size, float64(j)*size, size, threshold)...)
		}
	}
	return segments
}
