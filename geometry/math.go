package geometry

import (
	"math"
	"topo/core"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// CloseTolerance is the distance, per axis, under which two chain endpoints
// are considered the same point.
const CloseTolerance = 0.1

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// InverseLerp returns where t falls between v0 and v1 as a fraction.
// Equal endpoints have no defined crossing; the midpoint is returned instead
// of propagating an infinity.
func InverseLerp(v0, v1, t float64) float64 {
	d := v1 - v0
	if d == 0 {
		return 0.5
	}
	return (t - v0) / d
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b core.Point) core.Point {
	return core.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// ApproxEqual reports whether a and b lie within tol of each other on both axes.
func ApproxEqual(a, b core.Point, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol
}

// IsFinite reports whether both coordinates are real numbers.
func IsFinite(p core.Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// IsClosed reports whether the points form a loop: the last point returns to
// the first within CloseTolerance.
func IsClosed(points []core.Point) bool {
	if len(points) < 2 {
		return false
	}
	return ApproxEqual(points[0], points[len(points)-1], CloseTolerance)
}

// Centroid returns the arithmetic mean of the points (not the area centroid).
func Centroid(points []core.Point) core.Point {
	if len(points) == 0 {
		return core.Point{}
	}
	c, _ := planar.CentroidArea(toMultiPoint(points))
	return core.Point{X: c[0], Y: c[1]}
}

// Simplify reduces the points with Douglas-Peucker at the given tolerance.
// A non-positive tolerance, or fewer than three points, returns the input.
// Endpoints are always kept, so closed chains stay closed. A closed chain
// that would collapse below a triangle (4 points with the repeat) is
// returned unchanged.
func Simplify(points []core.Point, tolerance float64) []core.Point {
	if !(tolerance > 0) || len(points) < 3 {
		return points
	}
	minPoints := 2
	if IsClosed(points) {
		minPoints = 4
	}
	ls := toLineString(points)
	reduced, ok := simplify.DouglasPeucker(tolerance).Simplify(ls.Clone()).(orb.LineString)
	if !ok || len(reduced) < minPoints {
		return points
	}
	out := make([]core.Point, len(reduced))
	for i, p := range reduced {
		out[i] = core.Point{X: p[0], Y: p[1]}
	}
	return out
}

func toLineString(points []core.Point) orb.LineString {
	ls := make(orb.LineString, len(points))
	for i, p := range points {
		ls[i] = orb.Point{p.X, p.Y}
	}
	return ls
}

func toMultiPoint(points []core.Point) orb.MultiPoint {
	mp := make(orb.MultiPoint, len(points))
	for i, p := range points {
		mp[i] = orb.Point{p.X, p.Y}
	}
	return mp
}
