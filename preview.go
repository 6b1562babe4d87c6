package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"topo/config"
	"topo/core"
	"topo/generator"
	"topo/terminal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// previewCacheSize keeps recent maps so toggling back and forth is instant.
const previewCacheSize = 16

func newPreviewCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the map in the terminal",
		Long: `Render the map as character art sized to the terminal.

Keys: r reseed, +/- grid size, n toggle noise kind, q or Esc quit.
With --watch the map is regenerated whenever the config file is saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPreview(watch)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "Regenerate when the config file changes")
	return cmd
}

func (a *app) runPreview(watch bool) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	params := a.cfg.Params()
	if params.Seed == -1 {
		params.Seed = generator.NewSeed()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}

	gen := newGenerator(a.cfg, a.logger, previewCacheSize)
	preview := terminal.NewPreview(screen, gen, params, a.logger)
	defer func() {
		stats := gen.CacheStats()
		a.logger.Debug("preview closed",
			zap.Int64("cache_hits", stats.Hits),
			zap.Int64("cache_misses", stats.Misses),
			zap.Float64("hit_rate", stats.HitRate))
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !watch {
		return ignoreCanceled(preview.Run(ctx))
	}

	watcher, err := terminal.NewConfigWatcher(a.configPath, a.logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watcher.Run(gctx, func() {
			next, err := reloadParams(a.configPath, params.Seed)
			if err != nil {
				a.logger.Warn("ignoring config change", zap.Error(err))
				return
			}
			if err := preview.Reload(next); err != nil {
				a.logger.Warn("preview busy, change dropped", zap.Error(err))
			}
		})
	})
	g.Go(func() error {
		defer cancel()
		return preview.Run(gctx)
	})
	return ignoreCanceled(g.Wait())
}

// ignoreCanceled treats an interrupt as a normal exit.
func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// reloadParams reads the config again. A random seed (-1) keeps the seed
// currently on screen so edits do not reshuffle the terrain.
func reloadParams(path string, seed int64) (core.Params, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return core.Params{}, err
	}
	if err := cfg.Validate(); err != nil {
		return core.Params{}, err
	}
	if cfg.Noise.Seed == -1 {
		cfg.Noise.Seed = seed
	}
	return cfg.Params(), nil
}
