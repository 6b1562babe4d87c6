package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointKey(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want string
	}{
		{"integers", Point{10, 20}, "10.0,20.0"},
		{"rounds down", Point{1.04, 2.01}, "1.0,2.0"},
		{"rounds up", Point{1.06, 2.09}, "1.1,2.1"},
		{"half away from zero", Point{12.25, 0.05}, "12.3,0.1"},
		{"no negative zero", Point{-0.04, -0.01}, "0.0,0.0"},
		{"negative", Point{-3.26, -7}, "-3.3,-7.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Key())
		})
	}
}

func TestPointKeyMergesNearbyInterpolations(t *testing.T) {
	// Two cells interpolating the same shared edge rarely agree bit for bit.
	a := Point{X: 35.000000001, Y: 10}
	b := Point{X: 34.999999998, Y: 10}
	assert.Equal(t, a.Key(), b.Key())
}

func TestSegmentDegenerate(t *testing.T) {
	assert.True(t, Segment{Point{1, 1}, Point{1.01, 1.02}}.Degenerate())
	assert.False(t, Segment{Point{1, 1}, Point{1.2, 1}}.Degenerate())
}

func TestDefaultThresholds(t *testing.T) {
	got := DefaultThresholds(0.25, 0.05, 12)
	require.Len(t, got, 12)
	assert.Equal(t, 0.25, got[0])
	assert.Equal(t, 0.3, got[1])
	assert.Equal(t, 0.8, got[11])
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 1920.0, p.Width)
	assert.Equal(t, 1080.0, p.Height)
	assert.Equal(t, 5.0, p.GridSize)
	assert.Equal(t, 0.22, p.RiverThreshold)
	assert.Equal(t, NoiseSimplex, p.Noise)
	assert.Len(t, p.ContourThresholds, 12)
}

func TestResultContourPaths(t *testing.T) {
	r := &Result{Levels: []Level{
		{Threshold: 0.3, Path: "M 0 0 L 1 1"},
		{Threshold: 0.4, Path: ""},
	}}
	assert.Equal(t, []string{"M 0 0 L 1 1", ""}, r.ContourPaths())
	assert.False(t, r.IsEmpty())

	empty := &Result{Levels: []Level{{Threshold: 0.3}}}
	assert.True(t, empty.IsEmpty())
}

func TestResultJSONOmitsChains(t *testing.T) {
	r := Result{
		Levels: []Level{{
			Threshold: 0.5,
			Chains:    []Chain{{Points: []Point{{1, 2}, {3, 4}}}},
			Path:      "M 1 2 L 3 4",
		}},
		Peaks: []Peak{{X: 10, Y: 20, Height: 0.9, Name: "Eagle Peak"}},
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Chains")

	var loaded Result
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, "M 1 2 L 3 4", loaded.Levels[0].Path)
	assert.Nil(t, loaded.Levels[0].Chains)
	assert.Equal(t, r.Peaks, loaded.Peaks)
}
