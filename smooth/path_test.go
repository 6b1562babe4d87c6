package smooth

import (
	"strings"
	"testing"
	"topo/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pts(xy ...float64) []core.Point {
	out := make([]core.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, core.Point{X: xy[i], Y: xy[i+1]})
	}
	return out
}

func TestPathShortChains(t *testing.T) {
	assert.Equal(t, "", Path(nil, false))
	assert.Equal(t, "", Path(pts(1, 2), true))
}

func TestPathTwoPointsIsStraight(t *testing.T) {
	got := Path(pts(0, 0, 10, 5), false)
	assert.Equal(t, "M 0 0 L 10 5", got)
	assert.NotContains(t, got, "Q")

	// The close flag does not turn a two point chain into a curve.
	assert.Equal(t, "M 0 0 L 10 5", Path(pts(0, 0, 10, 5), true))
}

func TestPathOpenMidpointQuadratics(t *testing.T) {
	got := Path(pts(0, 0, 10, 0, 10, 10), false)
	assert.Equal(t, "M 0 0 Q 0 0 5 0 Q 10 0 10 5 L 10 10", got)
}

func TestPathClosed(t *testing.T) {
	got := Path(pts(0, 0, 10, 0, 10, 10, 0, 0), true)
	assert.Equal(t, "M 0 0 Q 0 0 5 0 Q 10 0 10 5 Q 10 10 5 5 Q 0 0 0 0 Z", got)
	assert.True(t, strings.HasSuffix(got, " Z"))
}

func TestFormatCoord(t *testing.T) {
	assert.Equal(t, "1.23", formatCoord(1.234))
	assert.Equal(t, "1.24", formatCoord(1.2351))
	assert.Equal(t, "5", formatCoord(5.0000001))
	assert.Equal(t, "0", formatCoord(-0.001))
	assert.Equal(t, "-2.5", formatCoord(-2.5))
}

func TestJoinSkipsEmptyChains(t *testing.T) {
	chains := []core.Chain{
		{Points: pts(0, 0, 1, 1)},
		{Points: pts(5, 5)},
		{Points: pts(2, 2, 3, 3)},
	}
	assert.Equal(t, "M 0 0 L 1 1 M 2 2 L 3 3", Join(chains, 0))
	assert.Equal(t, "", Join(nil, 0))
}

func TestChainSimplifies(t *testing.T) {
	c := core.Chain{Points: pts(0, 0, 1, 0.01, 2, 0, 3, 0.01, 4, 0)}
	assert.Equal(t, "M 0 0 L 4 0", Chain(c, 0.5))
	assert.Contains(t, Chain(c, 0), "Q")
}

func TestParseRoundTrip(t *testing.T) {
	d := Path(pts(0, 0, 10, 0, 10, 10, 0, 0), true) + " " + Path(pts(1, 1, 2, 2), false)
	cmds, err := Parse(d)
	require.NoError(t, err)

	ops := make([]Op, len(cmds))
	for i, c := range cmds {
		ops[i] = c.Op
	}
	assert.Equal(t, []Op{MoveTo, QuadTo, QuadTo, QuadTo, QuadTo, ClosePath, MoveTo, LineTo}, ops)
	assert.Equal(t, pts(10, 0, 10, 5), cmds[2].Points)
	assert.Equal(t, pts(2, 2), cmds[7].Points)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		d    string
	}{
		{"no leading move", "L 1 2"},
		{"unknown command", "M 0 0 C 1 1 2 2 3 3"},
		{"missing coordinate", "M 0 0 L 1"},
		{"quad missing end", "M 0 0 Q 1 1"},
		{"bad number", "M 0 x"},
		{"glued token", "M0 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.d)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}

	cmds, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, cmds)
}

func TestFlatten(t *testing.T) {
	cmds, err := Parse("M 0 0 L 10 0 M 0 10 Q 5 10 10 10 Z")
	require.NoError(t, err)

	lines := Flatten(cmds, 4)
	require.Len(t, lines, 2)
	assert.Equal(t, pts(0, 0, 10, 0), lines[0])

	second := lines[1]
	require.Len(t, second, 6) // move + 4 curve samples + close
	assert.Equal(t, core.Point{X: 10, Y: 10}, second[4])
	assert.Equal(t, core.Point{X: 0, Y: 10}, second[5])
}
