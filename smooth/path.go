// Package smooth turns point chains into compact quadratic-bezier path data
// and reads that path data back.
package smooth

import (
	"math"
	"strconv"
	"strings"
	"topo/core"
	"topo/geometry"
)

// Path renders points as SVG path data. Each point becomes the control point
// of a quadratic curve ending at the midpoint to the next point, so the curve
// passes near every point without tangent computation.
//
// Fewer than two points yield "". Two points yield a straight "M … L …".
// Open paths finish with a line to the last point; closed paths with more
// than two points finish with a curve through the last point back to the
// first and a close command.
func Path(points []core.Point, closed bool) string {
	n := len(points)
	if n < 2 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(n * 24)
	sb.WriteString("M ")
	writePoint(&sb, points[0])

	if n == 2 {
		sb.WriteString(" L ")
		writePoint(&sb, points[1])
		return sb.String()
	}

	for i := 0; i < n-1; i++ {
		cur, next := points[i], points[i+1]
		sb.WriteString(" Q ")
		writePoint(&sb, cur)
		sb.WriteByte(' ')
		writePoint(&sb, geometry.Midpoint(cur, next))
	}

	if closed {
		sb.WriteString(" Q ")
		writePoint(&sb, points[n-1])
		sb.WriteByte(' ')
		writePoint(&sb, points[0])
		sb.WriteString(" Z")
	} else {
		sb.WriteString(" L ")
		writePoint(&sb, points[n-1])
	}
	return sb.String()
}

// Chain renders one stitched chain, optionally simplified first.
func Chain(c core.Chain, tolerance float64) string {
	return Path(geometry.Simplify(c.Points, tolerance), c.Closed)
}

// Join renders every chain and concatenates the non-empty results.
func Join(chains []core.Chain, tolerance float64) string {
	parts := make([]string, 0, len(chains))
	for _, c := range chains {
		if p := Chain(c, tolerance); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func writePoint(sb *strings.Builder, p core.Point) {
	sb.WriteString(formatCoord(p.X))
	sb.WriteByte(' ')
	sb.WriteString(formatCoord(p.Y))
}

// formatCoord prints v with at most two decimals and no trailing zeros.
func formatCoord(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
