// Package core contains the fundamental types used throughout the topo contour generator.
package core

import (
	"fmt"
	"math"
)

// Point represents a 2D coordinate in canvas pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Key returns the adjacency key of the point: both coordinates rounded to
// one decimal place. Points sharing a key are treated as the same location.
func (p Point) Key() string {
	return fmt.Sprintf("%.1f,%.1f", round1(p.X), round1(p.Y))
}

// round1 rounds half away from zero so that keys do not depend on the
// banker's rounding that fmt applies to exact halves.
func round1(v float64) float64 {
	r := math.Round(v*10) / 10
	if r == 0 {
		return 0 // avoid "-0.0"
	}
	return r
}

// Segment is an unordered pair of points produced by one grid cell
// crossing one threshold.
type Segment struct {
	P1, P2 Point
}

// Degenerate reports whether both endpoints collapse onto the same key.
func (s Segment) Degenerate() bool {
	return s.P1.Key() == s.P2.Key()
}

// Chain is an ordered sequence of stitched contour points. A closed chain
// repeats its starting point as the last element.
type Chain struct {
	Points []Point
	Closed bool
}

// Len returns the number of points in the chain.
func (c Chain) Len() int {
	return len(c.Points)
}

// IsEmpty returns true if the chain has no points.
func (c Chain) IsEmpty() bool {
	return len(c.Points) == 0
}

// Lake is a large closed chain at the river threshold.
type Lake struct {
	Path string  `json:"path"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Name string  `json:"name"`
}

// Peak is a strict local maximum of the field above the peak floor.
type Peak struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Height float64 `json:"height"`
	Name   string  `json:"name,omitempty"`
}

// Level holds the stitched chains and smoothed path data for one contour threshold.
type Level struct {
	Threshold float64 `json:"threshold"`
	Chains    []Chain `json:"-"`
	Path      string  `json:"path"`
}

// NoiseKind selects the noise primitive used to synthesize the field.
type NoiseKind string

const (
	NoiseSimplex NoiseKind = "simplex"
	NoisePerlin  NoiseKind = "perlin"
)

// Params are the inputs of one generation pass.
type Params struct {
	Width             float64   `json:"width"`
	Height            float64   `json:"height"`
	GridSize          float64   `json:"grid_size"`
	Seed              int64     `json:"seed"`
	ContourThresholds []float64 `json:"contour_thresholds"`
	RiverThreshold    float64   `json:"river_threshold"`
	NoiseScale        float64   `json:"noise_scale"`
	Noise             NoiseKind `json:"noise"`
	SimplifyTolerance float64   `json:"simplify_tolerance,omitempty"`
}

// DefaultThresholds returns count thresholds starting at start, spaced by step.
// Values are rounded to avoid float drift such as 0.30000000000000004.
func DefaultThresholds(start, step float64, count int) []float64 {
	out := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		v := start + float64(i)*step
		out = append(out, math.Round(v*1e6)/1e6)
	}
	return out
}

// DefaultParams returns the canvas defaults: a 1920x1080 canvas sampled every
// 5 pixels, 12 contour levels from 0.25 and a river pass at 0.22.
func DefaultParams() Params {
	return Params{
		Width:             1920,
		Height:            1080,
		GridSize:          5,
		ContourThresholds: DefaultThresholds(0.25, 0.05, 12),
		RiverThreshold:    0.22,
		NoiseScale:        0.05,
		Noise:             NoiseSimplex,
	}
}

// Result is the complete output of one generation pass.
type Result struct {
	RunID   string   `json:"run_id,omitempty"`
	Params  Params   `json:"params"`
	Levels  []Level  `json:"levels"`
	Streams []string `json:"streams"`
	Lakes   []Lake   `json:"lakes"`
	Peaks   []Peak   `json:"peaks"`
}

// ContourPaths returns one path string per threshold, in threshold order.
func (r *Result) ContourPaths() []string {
	paths := make([]string, len(r.Levels))
	for i, l := range r.Levels {
		paths[i] = l.Path
	}
	return paths
}

// IsEmpty returns true if the pass produced no geometry at all.
func (r *Result) IsEmpty() bool {
	for _, l := range r.Levels {
		if l.Path != "" {
			return false
		}
	}
	return len(r.Streams) == 0 && len(r.Lakes) == 0 && len(r.Peaks) == 0
}
