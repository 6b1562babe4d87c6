package validation

import (
	"strings"
	"testing"
	"topo/core"
	"topo/generator"
)

func validResult() *core.Result {
	return &core.Result{
		Params: core.Params{
			Width: 100, Height: 100, GridSize: 10,
			ContourThresholds: []float64{0.4, 0.6},
		},
		Levels: []core.Level{
			{Threshold: 0.4, Path: "M 0 0 Q 10 10 20 20 L 30 30"},
			{Threshold: 0.6, Path: ""},
		},
		Streams: []string{"M 5 5 L 50 50"},
		Lakes:   []core.Lake{{Path: "M 40 40 Q 50 40 50 45 Q 50 50 40 40 Z", X: 46, Y: 43, Name: "Heron Lake"}},
		Peaks:   []core.Peak{{X: 60, Y: 60, Height: 0.85, Name: "Pine Knob"}},
	}
}

func TestResultValidator_Valid(t *testing.T) {
	if errs := Validate(validResult()); len(errs) != 0 {
		t.Errorf("Validate() = %v, want no errors", errs)
	}
}

func TestResultValidator_GeneratedResult(t *testing.T) {
	p := core.DefaultParams()
	p.Width, p.Height, p.Seed = 400, 300, 21
	r := generator.New().Generate(p)

	v := NewResultValidator()
	v.SetStrictMode(true)
	if errs := v.Validate(r); len(errs) != 0 {
		t.Errorf("generated result has %d errors, first: %s", len(errs), errs[0])
	}
}

func TestResultValidator_Findings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*core.Result)
		layer  string
		want   string
	}{
		{"level count", func(r *core.Result) { r.Levels = r.Levels[:1] }, "params", "1 levels for 2 thresholds"},
		{"threshold mismatch", func(r *core.Result) { r.Levels[1].Threshold = 0.7 }, "contours", "threshold 0.7"},
		{"bad contour", func(r *core.Result) { r.Levels[0].Path = "Q 1 2 3 4" }, "contours", "invalid path data"},
		{"empty stream", func(r *core.Result) { r.Streams = append(r.Streams, "") }, "streams", "empty path"},
		{"non-finite stream", func(r *core.Result) { r.Streams[0] = "M NaN 0 L 1 1" }, "streams", "non-finite"},
		{"open lake", func(r *core.Result) { r.Lakes[0].Path = "M 40 40 L 50 50" }, "lakes", "not closed"},
		{"unnamed lake", func(r *core.Result) { r.Lakes[0].Name = "" }, "lakes", "missing name"},
		{"lake off canvas", func(r *core.Result) { r.Lakes[0].X = 500 }, "lakes", "outside"},
		{"low peak", func(r *core.Result) { r.Peaks[0].Height = 0.8 }, "peaks", "height 0.8"},
		{"negative peak", func(r *core.Result) { r.Peaks[0].Y = -1 }, "peaks", "outside"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validResult()
			tt.mutate(r)
			errs := Validate(r)
			if len(errs) != 1 {
				t.Fatalf("Validate() returned %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Layer != tt.layer {
				t.Errorf("Layer = %q, want %q", errs[0].Layer, tt.layer)
			}
			if !strings.Contains(errs[0].String(), tt.want) {
				t.Errorf("error %q does not mention %q", errs[0], tt.want)
			}
		})
	}
}

func TestResultValidator_StrictMode(t *testing.T) {
	r := validResult()
	r.Streams[0] = "M 5 5 L 250 50"

	if errs := Validate(r); len(errs) != 0 {
		t.Errorf("default mode should ignore off-canvas paths, got %v", errs)
	}

	v := NewResultValidator()
	v.SetStrictMode(true)
	errs := v.Validate(r)
	if len(errs) != 1 || !strings.Contains(errs[0].Message, "off canvas") {
		t.Errorf("strict mode errors = %v", errs)
	}
}

func TestResultValidator_Nil(t *testing.T) {
	errs := Validate(nil)
	if len(errs) != 1 || errs[0].String() != "result[0]: result is nil" {
		t.Errorf("Validate(nil) = %v", errs)
	}
}
