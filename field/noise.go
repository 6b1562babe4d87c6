// Package field synthesizes the scalar elevation grid that contours are traced on.
package field

import (
	"fmt"
	"math"
	"topo/core"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Noise is a seeded, deterministic 2D noise source returning values in [-1, 1].
type Noise interface {
	Eval2(x, y float64) float64
}

// NoiseFunc adapts a plain function to the Noise interface.
type NoiseFunc func(x, y float64) float64

// Eval2 calls f(x, y).
func (f NoiseFunc) Eval2(x, y float64) float64 {
	return f(x, y)
}

// Constant returns a noise source that yields v everywhere.
func Constant(v float64) Noise {
	return NoiseFunc(func(float64, float64) float64 { return v })
}

// Perlin parameters: the usual alpha/beta of 2 with three octaves.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

type perlinNoise struct {
	p *perlin.Perlin
}

// Eval2 samples perlin noise, clamped because the summed octaves can
// overshoot the unit range.
func (n perlinNoise) Eval2(x, y float64) float64 {
	return math.Max(-1, math.Min(1, n.p.Noise2D(x, y)))
}

// NewNoise builds the noise source of the given kind for seed.
func NewNoise(kind core.NoiseKind, seed int64) (Noise, error) {
	switch kind {
	case core.NoiseSimplex, "":
		return opensimplex.New(seed), nil
	case core.NoisePerlin:
		return perlinNoise{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}, nil
	default:
		return nil, fmt.Errorf("unknown noise kind: %q", kind)
	}
}

// ParseNoiseKind converts a string to a NoiseKind.
func ParseNoiseKind(s string) (core.NoiseKind, error) {
	switch s {
	case "simplex", "opensimplex", "":
		return core.NoiseSimplex, nil
	case "perlin":
		return core.NoisePerlin, nil
	default:
		return "", fmt.Errorf("unknown noise kind: %q", s)
	}
}
