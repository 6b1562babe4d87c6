package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"topo/core"
)

// JSONImporter imports heightmaps written as a JSON array of rows
type JSONImporter struct{}

// NewJSONImporter creates a new JSON importer
func NewJSONImporter() *JSONImporter {
	return &JSONImporter{}
}

// CanImport checks for a nested array
func (j *JSONImporter) CanImport(content string) bool {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "[") {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(s[1:]), "[") || strings.TrimSpace(s[1:]) == "]"
}

// Import decodes [[v, v, ...], ...]
func (j *JSONImporter) Import(content string) ([][]float64, error) {
	var rows [][]float64
	if err := json.Unmarshal([]byte(content), &rows); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}
	return rows, nil
}

// FormatName returns the format name
func (j *JSONImporter) FormatName() string {
	return "JSON"
}

// FileExtensions returns common file extensions
func (j *JSONImporter) FileExtensions() []string {
	return []string{".json"}
}

// ReadResult decodes a result written by the JSON exporter. Level chains
// are not serialized, so they are empty on the returned result.
func ReadResult(r io.Reader) (*core.Result, error) {
	var res core.Result
	dec := json.NewDecoder(r)
	if err := dec.Decode(&res); err != nil {
		return nil, fmt.Errorf("failed to parse result: %w", err)
	}
	if len(res.Levels) != len(res.Params.ContourThresholds) {
		return nil, fmt.Errorf("failed to parse result: %d levels for %d thresholds",
			len(res.Levels), len(res.Params.ContourThresholds))
	}
	return &res, nil
}
