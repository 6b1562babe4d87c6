package smooth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"topo/core"
	"topo/geometry"
)

// ErrSyntax is returned for path data that does not follow the M/L/Q/Z grammar.
var ErrSyntax = errors.New("invalid path data")

// Op is a path command letter.
type Op byte

const (
	MoveTo    Op = 'M'
	LineTo    Op = 'L'
	QuadTo    Op = 'Q'
	ClosePath Op = 'Z'
)

// Command is one parsed path command with its absolute points.
// QuadTo carries the control point followed by the end point.
type Command struct {
	Op     Op
	Points []core.Point
}

var arity = map[Op]int{
	MoveTo:    1,
	LineTo:    1,
	QuadTo:    2,
	ClosePath: 0,
}

// Parse reads path data produced by Path (possibly several sub-paths joined
// with spaces) back into commands. Only absolute M, L, Q and Z are accepted.
func Parse(d string) ([]Command, error) {
	fields := strings.FieldsFunc(d, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\n' || r == '\t'
	})

	var cmds []Command
	for i := 0; i < len(fields); {
		tok := fields[i]
		if len(tok) != 1 {
			return nil, fmt.Errorf("%w: expected command at token %d, got %q", ErrSyntax, i, tok)
		}
		op := Op(tok[0])
		n, ok := arity[op]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported command %q", ErrSyntax, tok)
		}
		if len(cmds) == 0 && op != MoveTo {
			return nil, fmt.Errorf("%w: path must start with M, got %q", ErrSyntax, tok)
		}
		i++

		cmd := Command{Op: op}
		for k := 0; k < n; k++ {
			if i+1 >= len(fields) {
				return nil, fmt.Errorf("%w: %c needs %d points", ErrSyntax, op, n)
			}
			x, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad x %q: %v", ErrSyntax, fields[i], err)
			}
			y, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad y %q: %v", ErrSyntax, fields[i+1], err)
			}
			cmd.Points = append(cmd.Points, core.Point{X: x, Y: y})
			i += 2
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// Flatten approximates parsed commands as polylines, one per sub-path.
// Quadratic curves are sampled with steps segments each.
func Flatten(cmds []Command, steps int) [][]core.Point {
	if steps < 1 {
		steps = 1
	}
	var lines [][]core.Point
	var cur []core.Point
	var start, pen core.Point

	flush := func() {
		if len(cur) > 1 {
			lines = append(lines, cur)
		}
		cur = nil
	}

	for _, c := range cmds {
		switch c.Op {
		case MoveTo:
			flush()
			start, pen = c.Points[0], c.Points[0]
			cur = []core.Point{pen}
		case LineTo:
			pen = c.Points[0]
			cur = append(cur, pen)
		case QuadTo:
			ctrl, end := c.Points[0], c.Points[1]
			for s := 1; s <= steps; s++ {
				t := float64(s) / float64(steps)
				cur = append(cur, quadAt(pen, ctrl, end, t))
			}
			pen = end
		case ClosePath:
			if pen != start {
				cur = append(cur, start)
			}
			pen = start
		}
	}
	flush()
	return lines
}

// quadAt evaluates the quadratic bezier at t by de Casteljau's construction.
func quadAt(p0, p1, p2 core.Point, t float64) core.Point {
	a := core.Point{X: geometry.Lerp(p0.X, p1.X, t), Y: geometry.Lerp(p0.Y, p1.Y, t)}
	b := core.Point{X: geometry.Lerp(p1.X, p2.X, t), Y: geometry.Lerp(p1.Y, p2.Y, t)}
	return core.Point{X: geometry.Lerp(a.X, b.X, t), Y: geometry.Lerp(a.Y, b.Y, t)}
}
