package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"topo/config"
	"topo/core"
	"topo/export"
	"topo/generator"
	"topo/importer"
	"topo/validation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errValidation is returned when --validate finds problems.
var errValidation = errors.New("validation failed")

type generateOptions struct {
	seed      int64
	width     float64
	height    float64
	grid      float64
	format    string
	output    string
	heightmap string
	validate  bool
	strict    bool
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a map and export it",
		Example: `  topo generate --seed 42 -o map.svg
  topo generate --format png --width 800 --height 600
  topo generate --heightmap terrain.csv --grid 4 --format json -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.Int64Var(&opts.seed, "seed", -1, "Noise seed (-1 picks a random seed)")
	f.Float64Var(&opts.width, "width", 0, "Canvas width in pixels")
	f.Float64Var(&opts.height, "height", 0, "Canvas height in pixels")
	f.Float64Var(&opts.grid, "grid", 0, "Pixels between field samples")
	f.StringVar(&opts.format, "format", "", "Export format: svg, png, json, ascii")
	f.StringVarP(&opts.output, "output", "o", "", `Output file, "-" for stdout`)
	f.StringVar(&opts.heightmap, "heightmap", "", "Trace a CSV, JSON or PGM heightmap instead of noise")
	f.BoolVar(&opts.validate, "validate", false, "Check the result before exporting")
	f.BoolVar(&opts.strict, "strict", false, "With --validate, also require paths to stay on the canvas")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	cfg := a.cfg
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Noise.Seed = opts.seed
	}
	if flags.Changed("width") {
		cfg.Canvas.Width = opts.width
	}
	if flags.Changed("height") {
		cfg.Canvas.Height = opts.height
	}
	if flags.Changed("grid") {
		cfg.Canvas.GridSize = opts.grid
	}

	format, output, err := resolveOutput(cfg.Export.Format, cfg.Export.Output, opts.format, opts.output)
	if err != nil {
		return err
	}
	cfg.Export.Format = string(format)
	if err := cfg.Validate(); err != nil {
		return err
	}

	params := cfg.Params()
	if params.Seed == -1 {
		params.Seed = generator.NewSeed()
	}
	gen := newGenerator(cfg, a.logger, 0)

	var result *core.Result
	if opts.heightmap != "" {
		result, err = generateFromHeightmap(gen, opts.heightmap, params)
		if err != nil {
			return err
		}
	} else {
		result = gen.Generate(params)
	}

	if opts.validate {
		v := validation.NewResultValidator()
		v.SetStrictMode(opts.strict)
		if errs := v.Validate(result); len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintln(cmd.ErrOrStderr(), "invalid:", e)
			}
			return fmt.Errorf("%w: %d problems", errValidation, len(errs))
		}
	}

	exporter, err := export.NewExporter(format)
	if err != nil {
		return err
	}
	data, err := exporter.Export(result)
	if err != nil {
		return fmt.Errorf("failed to export %s: %w", exporter.FormatName(), err)
	}

	if output == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := writeFile(output, data); err != nil {
		return err
	}
	a.logger.Info("map written",
		zap.String("path", output),
		zap.String("format", string(format)),
		zap.Int64("seed", result.Params.Seed),
		zap.String("run_id", result.RunID))
	return nil
}

// resolveOutput picks the export format and destination. An explicit
// --format wins, then the extension of -o, then the config.
func resolveOutput(cfgFormat, cfgOutput, flagFormat, flagOutput string) (export.Format, string, error) {
	switch {
	case flagFormat != "":
		format, err := export.ParseFormat(flagFormat)
		if err != nil {
			return "", "", err
		}
		output := flagOutput
		if output == "" {
			exp, err := export.NewExporter(format)
			if err != nil {
				return "", "", err
			}
			output = "terrain" + exp.FileExtension()
		}
		return format, output, nil

	case flagOutput != "" && flagOutput != "-":
		if format, err := export.FormatFromExtension(filepath.Ext(flagOutput)); err == nil {
			return format, flagOutput, nil
		}
		format, err := export.ParseFormat(cfgFormat)
		return format, flagOutput, err

	default:
		format, err := export.ParseFormat(cfgFormat)
		output := cfgOutput
		if flagOutput != "" {
			output = flagOutput
		}
		return format, output, err
	}
}

func generateFromHeightmap(gen *generator.Generator, path string, params core.Params) (*core.Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read heightmap: %w", err)
	}

	registry := importer.NewImporterRegistry()
	grid, err := registry.ImportWithFormat(string(content), filepath.Ext(path), params.GridSize)
	if errors.Is(err, importer.ErrUnknownFormat) {
		grid, err = registry.Import(string(content), params.GridSize)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to import heightmap %s: %w", path, err)
	}

	params.Width, params.Height = grid.Canvas()
	return gen.GenerateFromGrid(grid, params), nil
}

// newGenerator builds a generator from the generator section of cfg. The
// cache holds at least minCache results.
func newGenerator(cfg *config.Config, logger *zap.Logger, minCache int) *generator.Generator {
	return generator.New(
		generator.WithLogger(logger),
		generator.WithWorkers(cfg.Generator.Workers),
		generator.WithCache(max(cfg.Generator.CacheSize, minCache)),
	)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
