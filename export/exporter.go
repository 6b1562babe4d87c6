// Package export renders generated terrain into files.
package export

import (
	"errors"
	"fmt"
	"topo/core"
)

// Format represents an export format
type Format string

const (
	// FormatSVG exports layered vector paths (default)
	FormatSVG Format = "svg"
	// FormatPNG exports a raster image
	FormatPNG Format = "png"
	// FormatJSON exports the raw result
	FormatJSON Format = "json"
	// FormatASCII exports character art
	FormatASCII Format = "ascii"
)

var (
	// ErrUnknownFormat is returned for format names no exporter handles.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrNilResult is returned when there is nothing to export.
	ErrNilResult = errors.New("result is nil")
	// ErrEmptyCanvas is returned by image formats for a zero sized canvas.
	ErrEmptyCanvas = errors.New("empty canvas")
)

// Exporter interface for different export formats
type Exporter interface {
	// Export renders a result in the target format
	Export(r *core.Result) ([]byte, error)
	// FileExtension returns the recommended file extension for this format
	FileExtension() string
	// FormatName returns a human-readable name for this format
	FormatName() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatSVG:
		return NewSVGExporter(), nil
	case FormatPNG:
		return NewPNGExporter(), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatASCII:
		return NewASCIIExporter(DefaultASCIIColumns), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "json":
		return FormatJSON, nil
	case "ascii", "text", "txt":
		return FormatASCII, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
	}
}

// FormatFromExtension maps a file extension such as ".png" to a Format.
func FormatFromExtension(ext string) (Format, error) {
	if len(ext) > 0 && ext[0] == '.' {
		ext = ext[1:]
	}
	return ParseFormat(ext)
}

// AvailableFormats returns a list of all available export formats
func AvailableFormats() []Format {
	return []Format{
		FormatSVG,
		FormatPNG,
		FormatJSON,
		FormatASCII,
	}
}

// FormatDescriptions returns human-readable descriptions of all formats
func FormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatSVG:   "SVG vector map with labels",
		FormatPNG:   "PNG raster image",
		FormatJSON:  "JSON result (paths, lakes, peaks)",
		FormatASCII: "ASCII character art",
	}
}
