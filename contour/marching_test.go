package contour

import (
	"math"
	"testing"
	"topo/core"
	"topo/field"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cellForState builds a cell whose corners are 1 where the state bit is set
// and 0 otherwise, so every crossing lands on an edge midpoint.
func cellForState(state int) Cell {
	v := func(bit int) float64 {
		if state&bit != 0 {
			return 1
		}
		return 0
	}
	return Cell{TL: v(TopLeft), TR: v(TopRight), BR: v(BottomRight), BL: v(BottomLeft)}
}

var (
	top    = core.Point{X: 5, Y: 0}
	right  = core.Point{X: 10, Y: 5}
	bottom = core.Point{X: 5, Y: 10}
	left   = core.Point{X: 0, Y: 5}
)

func TestMarchingSquaresAllStates(t *testing.T) {
	tests := []struct {
		state int
		want  []core.Segment
	}{
		{0, nil},
		{1, []core.Segment{{P1: left, P2: bottom}}},
		{2, []core.Segment{{P1: bottom, P2: right}}},
		{3, []core.Segment{{P1: left, P2: right}}},
		{4, []core.Segment{{P1: top, P2: right}}},
		{5, []core.Segment{{P1: left, P2: top}, {P1: bottom, P2: right}}},
		{6, []core.Segment{{P1: top, P2: bottom}}},
		{7, []core.Segment{{P1: left, P2: top}}},
		{8, []core.Segment{{P1: left, P2: top}}},
		{9, []core.Segment{{P1: top, P2: bottom}}},
		{10, []core.Segment{{P1: left, P2: bottom}, {P1: top, P2: right}}},
		{11, []core.Segment{{P1: top, P2: right}}},
		{12, []core.Segment{{P1: left, P2: right}}},
		{13, []core.Segment{{P1: bottom, P2: right}}},
		{14, []core.Segment{{P1: left, P2: bottom}}},
		{15, nil},
	}

	for _, tt := range tests {
		cell := cellForState(tt.state)
		require.Equal(t, tt.state, cell.State(0.5), "state %d", tt.state)
		got := cell.Segments(0, 0, 10, 0.5)
		assert.Equal(t, tt.want, got, "state %d", tt.state)
	}
}

func TestTableSegmentCounts(t *testing.T) {
	none, one, two := 0, 0, 0
	for state, pairs := range Table {
		switch len(pairs) {
		case 0:
			none++
			assert.Contains(t, []int{0, 15}, state)
		case 1:
			one++
		case 2:
			two++
			assert.Contains(t, []int{5, 10}, state)
		default:
			t.Errorf("state %d emits %d segments", state, len(pairs))
		}
	}
	assert.Equal(t, 2, none)
	assert.Equal(t, 12, one)
	assert.Equal(t, 2, two)
}

func TestStateUsesInclusiveThreshold(t *testing.T) {
	c := Cell{TL: 0.5, TR: 0.49, BR: 0.5, BL: 0.49}
	assert.Equal(t, TopLeft|BottomRight, c.State(0.5))
}

func TestCrossingInterpolation(t *testing.T) {
	// Only the bottom-left corner is above: crossings on the left and bottom edges.
	c := Cell{TL: 0.2, TR: 0.2, BR: 0.2, BL: 0.6}
	segs := c.Segments(100, 200, 10, 0.3)
	require.Len(t, segs, 1)

	// left: a->d, t = (0.3-0.2)/(0.6-0.2) = 0.25
	assert.InDelta(t, 100, segs[0].P1.X, 1e-9)
	assert.InDelta(t, 202.5, segs[0].P1.Y, 1e-9)
	// bottom: d->c, t = (0.3-0.6)/(0.2-0.6) = 0.75
	assert.InDelta(t, 107.5, segs[0].P2.X, 1e-9)
	assert.InDelta(t, 210, segs[0].P2.Y, 1e-9)
}

func TestEqualCornersDoNotProduceNaN(t *testing.T) {
	// Both corners of the top edge sit exactly on the threshold.
	c := Cell{TL: 0.5, TR: 0.5, BR: 0.4, BL: 0.4}
	for _, s := range c.Segments(0, 0, 10, 0.5) {
		for _, p := range []core.Point{s.P1, s.P2} {
			assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y), "NaN in %+v", s)
			assert.False(t, math.IsInf(p.X, 0) || math.IsInf(p.Y, 0), "Inf in %+v", s)
		}
	}
}

func TestExtractUniformFieldHasNoSegments(t *testing.T) {
	g := field.Synthesize(100, 100, 10, field.DefaultScale, field.Constant(0.2)) // 0.6 everywhere
	assert.Empty(t, Extract(g, 0.5))
	assert.Empty(t, Extract(g, 0.7))
}

func TestExtractSingleBump(t *testing.T) {
	rows := [][]float64{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	}
	g, err := field.FromRows(rows, 10)
	require.NoError(t, err)

	segs := Extract(g, 0.5)
	require.Len(t, segs, 4)

	keys := map[string]int{}
	for _, s := range segs {
		keys[s.P1.Key()]++
		keys[s.P2.Key()]++
	}
	// A diamond around the center: four points each shared by two segments.
	assert.Len(t, keys, 4)
	for k, n := range keys {
		assert.Equal(t, 2, n, "key %s", k)
	}
}

func TestExtractDegenerate(t *testing.T) {
	assert.Nil(t, Extract(nil, 0.5))
	g, err := field.FromRows([][]float64{{0.1, 0.9}}, 10)
	require.NoError(t, err)
	assert.Nil(t, Extract(g, 0.5))
}

func TestEdgeString(t *testing.T) {
	assert.Equal(t, "top", Top.String())
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "unknown", Edge(9).String())
}
