package export

import (
	"bytes"
	"errors"
	"fmt"
	"topo/core"
	"topo/smooth"

	"github.com/fogleman/gg"
)

// MaxPNGSide caps either image dimension.
const MaxPNGSide = 16384

// ErrCanvasTooLarge is returned when the image would exceed MaxPNGSide.
var ErrCanvasTooLarge = errors.New("canvas too large")

// PNGExporter exports results as raster images
type PNGExporter struct {
	palette Palette
}

// NewPNGExporter creates a new PNG exporter
func NewPNGExporter() *PNGExporter {
	return &PNGExporter{palette: DefaultPalette()}
}

// Export draws the same layers as the SVG exporter onto an image.
func (e *PNGExporter) Export(r *core.Result) ([]byte, error) {
	if r == nil {
		return nil, ErrNilResult
	}
	w, h := pixelSize(r.Params)
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: canvas %gx%g", ErrEmptyCanvas, r.Params.Width, r.Params.Height)
	}
	if w > MaxPNGSide || h > MaxPNGSide {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrCanvasTooLarge, w, h, MaxPNGSide)
	}

	p := e.palette
	dc := gg.NewContext(w, h)
	dc.SetHexColor(p.Background)
	dc.Clear()

	dc.SetLineWidth(1)
	dc.SetHexColor(p.Contour)
	for _, level := range r.Levels {
		if err := tracePath(dc, level.Path); err != nil {
			return nil, fmt.Errorf("contour %g: %w", level.Threshold, err)
		}
	}
	dc.Stroke()

	dc.SetLineWidth(1.5)
	dc.SetHexColor(p.Stream)
	for _, s := range r.Streams {
		if err := tracePath(dc, s); err != nil {
			return nil, fmt.Errorf("stream: %w", err)
		}
	}
	dc.Stroke()

	for _, lake := range r.Lakes {
		if err := tracePath(dc, lake.Path); err != nil {
			return nil, fmt.Errorf("lake %s: %w", lake.Name, err)
		}
		dc.SetHexColor(p.LakeFill)
		dc.FillPreserve()
		dc.SetHexColor(p.LakeStroke)
		dc.Stroke()
	}

	dc.SetHexColor(p.Label)
	for _, lake := range r.Lakes {
		dc.DrawStringAnchored(lake.Name, lake.X, lake.Y, 0.5, 0.5)
	}
	for _, peak := range r.Peaks {
		dc.SetHexColor(p.Peak)
		dc.MoveTo(peak.X-5, peak.Y+4)
		dc.LineTo(peak.X, peak.Y-5)
		dc.LineTo(peak.X+5, peak.Y+4)
		dc.ClosePath()
		dc.Fill()
		if peak.Name != "" {
			dc.SetHexColor(p.Label)
			dc.DrawString(peak.Name, peak.X+8, peak.Y+4)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// FileExtension returns the file extension for PNG
func (e *PNGExporter) FileExtension() string {
	return ".png"
}

// FormatName returns the format name
func (e *PNGExporter) FormatName() string {
	return "PNG"
}

// tracePath replays path data onto the current gg path without stroking.
func tracePath(dc *gg.Context, d string) error {
	cmds, err := smooth.Parse(d)
	if err != nil {
		return err
	}
	for _, c := range cmds {
		switch c.Op {
		case smooth.MoveTo:
			dc.MoveTo(c.Points[0].X, c.Points[0].Y)
		case smooth.LineTo:
			dc.LineTo(c.Points[0].X, c.Points[0].Y)
		case smooth.QuadTo:
			dc.QuadraticTo(c.Points[0].X, c.Points[0].Y, c.Points[1].X, c.Points[1].Y)
		case smooth.ClosePath:
			dc.ClosePath()
		}
	}
	return nil
}
