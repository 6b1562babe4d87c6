package export

import (
	"encoding/json"
	"topo/core"
)

// JSONExporter exports results to JSON format
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts a result to indented JSON
func (e *JSONExporter) Export(r *core.Result) ([]byte, error) {
	if r == nil {
		return nil, ErrNilResult
	}
	return json.MarshalIndent(r, "", "  ")
}

// FileExtension returns the file extension for JSON
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// FormatName returns the format name
func (e *JSONExporter) FormatName() string {
	return "JSON"
}
