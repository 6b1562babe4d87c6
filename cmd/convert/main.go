// Command convert re-exports a saved JSON result in another format.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"topo/export"
	"topo/importer"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		inputFile = fs.String("i", "", "Input result JSON (default: stdin)")
		format    = fs.String("f", "", "Format (svg, png, json, ascii) - taken from -o extension if not specified")
		output    = fs.String("o", "", "Output file path (default: stdout)")
		columns   = fs.Int("cols", export.DefaultASCIIColumns, "Columns for ascii output")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := stdin
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			return fmt.Errorf("reading input file: %w", err)
		}
		defer f.Close()
		in = f
	}

	result, err := importer.ReadResult(in)
	if err != nil {
		return fmt.Errorf("reading result: %w", err)
	}

	f, err := outputFormat(*format, *output)
	if err != nil {
		return err
	}

	var exporter export.Exporter
	if f == export.FormatASCII {
		exporter = export.NewASCIIExporter(*columns)
	} else if exporter, err = export.NewExporter(f); err != nil {
		return err
	}

	data, err := exporter.Export(result)
	if err != nil {
		return fmt.Errorf("exporting %s: %w", exporter.FormatName(), err)
	}

	if *output == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	fmt.Fprintf(stderr, "Converted %s to %s\n", *inputFile, *output)
	return nil
}

// outputFormat picks -f, then the extension of -o, then SVG.
func outputFormat(name, output string) (export.Format, error) {
	if name != "" {
		return export.ParseFormat(name)
	}
	if ext := filepath.Ext(output); ext != "" {
		return export.FormatFromExtension(ext)
	}
	return export.FormatSVG, nil
}
