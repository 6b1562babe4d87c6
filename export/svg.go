package export

import (
	"bytes"
	"fmt"
	"math"
	"topo/core"
	"topo/geometry"

	svg "github.com/ajstarks/svgo"
)

// Palette holds the colors shared by the SVG and PNG exporters.
type Palette struct {
	Background string
	Contour    string
	Stream     string
	LakeFill   string
	LakeStroke string
	Peak       string
	Label      string
}

// DefaultPalette returns the paper map colors.
func DefaultPalette() Palette {
	return Palette{
		Background: "#f4efe1",
		Contour:    "#8b5a2b",
		Stream:     "#3a7bd5",
		LakeFill:   "#a8d0f0",
		LakeStroke: "#3a7bd5",
		Peak:       "#5a3a1a",
		Label:      "#2b2b2b",
	}
}

// SVGExporter exports results as layered SVG
type SVGExporter struct {
	palette Palette
}

// NewSVGExporter creates a new SVG exporter
func NewSVGExporter() *SVGExporter {
	return &SVGExporter{palette: DefaultPalette()}
}

// Export writes one group per layer: contours, streams, lakes, peaks.
func (e *SVGExporter) Export(r *core.Result) ([]byte, error) {
	if r == nil {
		return nil, ErrNilResult
	}
	w, h := pixelSize(r.Params)
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: canvas %gx%g", ErrEmptyCanvas, r.Params.Width, r.Params.Height)
	}

	var buf bytes.Buffer
	p := e.palette
	doc := svg.New(&buf)
	doc.Start(w, h)
	doc.Title("Topographic map")
	doc.Rect(0, 0, w, h, "fill:"+p.Background)

	doc.Gid("contours")
	doc.Gstyle(fmt.Sprintf("fill:none;stroke:%s;stroke-width:1;stroke-opacity:0.8", p.Contour))
	for _, level := range r.Levels {
		if level.Path != "" {
			doc.Path(level.Path, fmt.Sprintf(`data-threshold="%g"`, level.Threshold))
		}
	}
	doc.Gend()
	doc.Gend()

	doc.Gid("streams")
	doc.Gstyle(fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5", p.Stream))
	for _, s := range r.Streams {
		doc.Path(s)
	}
	doc.Gend()
	doc.Gend()

	doc.Gid("lakes")
	doc.Gstyle(fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5", p.LakeFill, p.LakeStroke))
	for _, lake := range r.Lakes {
		doc.Path(lake.Path)
	}
	doc.Gend()
	for _, lake := range r.Lakes {
		doc.Text(round(lake.X), round(lake.Y), lake.Name,
			fmt.Sprintf("fill:%s;font-family:serif;font-style:italic;font-size:14px;text-anchor:middle", p.Label))
	}
	doc.Gend()

	doc.Gid("peaks")
	for _, peak := range r.Peaks {
		x, y := round(peak.X), round(peak.Y)
		doc.Polygon([]int{x - 5, x, x + 5}, []int{y + 4, y - 5, y + 4}, "fill:"+p.Peak)
		if peak.Name != "" {
			doc.Text(x+8, y+4, peak.Name,
				fmt.Sprintf("fill:%s;font-family:serif;font-size:12px", p.Label))
		}
	}
	doc.Gend()

	doc.End()
	return buf.Bytes(), nil
}

// FileExtension returns the file extension for SVG
func (e *SVGExporter) FileExtension() string {
	return ".svg"
}

// FormatName returns the format name
func (e *SVGExporter) FormatName() string {
	return "SVG"
}

// pixelSize returns the canvas size in whole pixels, or zeros when empty.
func pixelSize(p core.Params) (int, int) {
	if p.Width <= 0 || p.Height <= 0 || !geometry.IsFinite(core.Point{X: p.Width, Y: p.Height}) {
		return 0, 0
	}
	return int(math.Ceil(p.Width)), int(math.Ceil(p.Height))
}

func round(v float64) int {
	return int(math.Round(v))
}
