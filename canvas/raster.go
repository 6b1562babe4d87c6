package canvas

import (
	"math"
	"topo/core"
	"topo/smooth"
)

// curveSteps is how many line segments approximate each quadratic.
const curveSteps = 4

// Style selects the characters used for each layer.
type Style struct {
	// Levels is a ramp indexed from the lowest to the highest threshold.
	Levels []rune
	Stream rune
	Lake   rune
	Peak   rune
	Labels bool
}

// DefaultStyle returns the ramp used by the ASCII exporter.
func DefaultStyle() Style {
	return Style{
		Levels: []rune(".:-=+*#%@"),
		Stream: '~',
		Lake:   'o',
		Peak:   '^',
		Labels: true,
	}
}

// Rasterize draws a result onto a cols x rows canvas. World coordinates
// are scaled so the whole result canvas fits.
func Rasterize(r *core.Result, cols, rows int, style Style) (*MatrixCanvas, error) {
	c, err := NewMatrixCanvas(cols, rows)
	if err != nil {
		return nil, err
	}
	if r == nil || r.Params.Width <= 0 || r.Params.Height <= 0 {
		return c, nil
	}

	t := transform{
		sx: float64(cols) / r.Params.Width,
		sy: float64(rows) / r.Params.Height,
	}

	for i, level := range r.Levels {
		c.drawPath(level.Path, levelRune(style.Levels, i, len(r.Levels)), t)
	}
	for _, s := range r.Streams {
		c.drawPath(s, style.Stream, t)
	}
	for _, lake := range r.Lakes {
		c.drawPath(lake.Path, style.Lake, t)
	}
	for _, peak := range r.Peaks {
		p := t.cell(core.Point{X: peak.X, Y: peak.Y})
		c.setClipped(p.X, p.Y, style.Peak)
		if style.Labels && peak.Name != "" {
			_ = c.DrawText(p.X+2, p.Y, peak.Name)
		}
	}
	if style.Labels {
		for _, lake := range r.Lakes {
			p := t.cell(core.Point{X: lake.X, Y: lake.Y})
			_ = c.DrawLabel(p.X, p.Y, lake.Name)
		}
	}
	return c, nil
}

// drawPath replays path data as straight lines. Malformed data is skipped.
func (c *MatrixCanvas) drawPath(d string, char rune, t transform) {
	if d == "" {
		return
	}
	cmds, err := smooth.Parse(d)
	if err != nil {
		return
	}
	for _, line := range smooth.Flatten(cmds, curveSteps) {
		for i := 1; i < len(line); i++ {
			c.DrawLine(t.cell(line[i-1]), t.cell(line[i]), char)
		}
	}
}

func levelRune(ramp []rune, i, n int) rune {
	if len(ramp) == 0 {
		return '*'
	}
	if n <= 1 {
		return ramp[0]
	}
	return ramp[i*(len(ramp)-1)/(n-1)]
}

type transform struct {
	sx, sy float64
}

func (t transform) cell(p core.Point) Cell {
	return Cell{
		X: int(math.Floor(p.X * t.sx)),
		Y: int(math.Floor(p.Y * t.sy)),
	}
}
