package validation

import (
	"fmt"
	"topo/core"
	"topo/features"
	"topo/geometry"
	"topo/smooth"
)

// ResultValidator checks that a generated or imported result is internally
// consistent before it is exported.
type ResultValidator struct {
	// Track validation errors
	errors []ValidationError
	// Options
	strictMode bool // Also require path coordinates to stay on the canvas
}

// ValidationError represents a validation error with location information.
type ValidationError struct {
	Layer   string // contours, streams, lakes, peaks or params
	Index   int
	Message string
}

// NewResultValidator creates a new validator with default settings.
func NewResultValidator() *ResultValidator {
	return &ResultValidator{}
}

// SetStrictMode enables or disables strict validation.
func (v *ResultValidator) SetStrictMode(strict bool) {
	v.strictMode = strict
}

// Validate runs the default checks on r.
func Validate(r *core.Result) []ValidationError {
	return NewResultValidator().Validate(r)
}

// Validate checks every layer of r and returns all problems found.
func (v *ResultValidator) Validate(r *core.Result) []ValidationError {
	v.errors = nil
	if r == nil {
		v.addError("result", 0, "result is nil")
		return v.errors
	}

	p := r.Params
	if len(r.Levels) != len(p.ContourThresholds) {
		v.addError("params", 0, "%d levels for %d thresholds", len(r.Levels), len(p.ContourThresholds))
	}
	for i, level := range r.Levels {
		if i < len(p.ContourThresholds) && level.Threshold != p.ContourThresholds[i] {
			v.addError("contours", i, "threshold %g, want %g", level.Threshold, p.ContourThresholds[i])
		}
		v.checkPath(r, "contours", i, level.Path)
	}

	for i, s := range r.Streams {
		if s == "" {
			v.addError("streams", i, "empty path")
			continue
		}
		v.checkPath(r, "streams", i, s)
	}

	for i, lake := range r.Lakes {
		cmds := v.checkPath(r, "lakes", i, lake.Path)
		if len(cmds) > 0 && cmds[len(cmds)-1].Op != smooth.ClosePath {
			v.addError("lakes", i, "outline is not closed")
		}
		if lake.Name == "" {
			v.addError("lakes", i, "missing name")
		}
		v.checkPosition(r, "lakes", i, core.Point{X: lake.X, Y: lake.Y})
	}

	for i, peak := range r.Peaks {
		if !(peak.Height > features.PeakFloor) || peak.Height > 1 {
			v.addError("peaks", i, "height %g outside (%g,1]", peak.Height, features.PeakFloor)
		}
		v.checkPosition(r, "peaks", i, core.Point{X: peak.X, Y: peak.Y})
	}

	return v.errors
}

// checkPath parses d and checks its coordinates. It returns the parsed
// commands, or nil when parsing failed.
func (v *ResultValidator) checkPath(r *core.Result, layer string, i int, d string) []smooth.Command {
	cmds, err := smooth.Parse(d)
	if err != nil {
		v.addError(layer, i, "%v", err)
		return nil
	}
	slack := r.Params.GridSize
	for _, c := range cmds {
		for _, pt := range c.Points {
			if !geometry.IsFinite(pt) {
				v.addError(layer, i, "non-finite coordinate (%g, %g)", pt.X, pt.Y)
				return cmds
			}
			if v.strictMode && !onCanvas(r.Params, pt, slack) {
				v.addError(layer, i, "coordinate (%g, %g) off canvas", pt.X, pt.Y)
				return cmds
			}
		}
	}
	return cmds
}

func (v *ResultValidator) checkPosition(r *core.Result, layer string, i int, pt core.Point) {
	if !geometry.IsFinite(pt) {
		v.addError(layer, i, "non-finite position (%g, %g)", pt.X, pt.Y)
		return
	}
	// The lattice may extend one cell past the canvas edge.
	if !onCanvas(r.Params, pt, r.Params.GridSize) {
		v.addError(layer, i, "position (%g, %g) outside %gx%g canvas", pt.X, pt.Y, r.Params.Width, r.Params.Height)
	}
}

func onCanvas(p core.Params, pt core.Point, slack float64) bool {
	return pt.X >= 0 && pt.Y >= 0 && pt.X <= p.Width+slack && pt.Y <= p.Height+slack
}

// addError adds a validation error.
func (v *ResultValidator) addError(layer string, index int, format string, args ...interface{}) {
	v.errors = append(v.errors, ValidationError{
		Layer:   layer,
		Index:   index,
		Message: fmt.Sprintf(format, args...),
	})
}

// String formats validation errors as a string.
func (e ValidationError) String() string {
	return fmt.Sprintf("%s[%d]: %s", e.Layer, e.Index, e.Message)
}
