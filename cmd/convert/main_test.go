package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"topo/core"
	"topo/export"
	"topo/generator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultJSON(t *testing.T) []byte {
	t.Helper()
	p := core.DefaultParams()
	p.Width, p.Height, p.Seed = 160, 100, 11
	data, err := export.NewJSONExporter().Export(generator.New().Generate(p))
	require.NoError(t, err)
	return data
}

func TestConvertStdinToSVG(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run(nil, bytes.NewReader(resultJSON(t)), &out, &errOut)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "<?xml"))
	assert.Contains(t, out.String(), "<svg")
}

func TestConvertFormatFromOutputExtension(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "map.json")
	require.NoError(t, os.WriteFile(in, resultJSON(t), 0644))
	outPath := filepath.Join(dir, "map.png")

	var out, errOut bytes.Buffer
	require.NoError(t, run([]string{"-i", in, "-o", outPath}, nil, &out, &errOut))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Converted")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestConvertASCIIColumns(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-f", "ascii", "-cols", "30"}, bytes.NewReader(resultJSON(t)), &out, &bytes.Buffer{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.NotEmpty(t, lines)
	for _, l := range lines {
		assert.LessOrEqual(t, len([]rune(l)), 30)
	}
}

func TestConvertErrors(t *testing.T) {
	json := resultJSON(t)

	err := run([]string{"-f", "gif"}, bytes.NewReader(json), &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, export.ErrUnknownFormat)

	err = run([]string{"-o", "map.out"}, bytes.NewReader(json), &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, export.ErrUnknownFormat)

	err = run(nil, strings.NewReader("not json"), &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "reading result")

	err = run([]string{"-i", filepath.Join(t.TempDir(), "missing.json")}, nil, &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "reading input file")

	err = run([]string{"-bogus"}, nil, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		name, format, output string
		want                 export.Format
	}{
		{"flag wins", "json", "map.png", export.FormatJSON},
		{"extension", "", "map.txt", export.FormatASCII},
		{"default", "", "", export.FormatSVG},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputFormat(tt.format, tt.output)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
