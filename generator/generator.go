// Package generator runs the full terrain pipeline: field synthesis,
// contour extraction, stitching, smoothing and feature detection.
package generator

import (
	"math/rand"
	"time"
	"topo/contour"
	"topo/core"
	"topo/features"
	"topo/field"
	"topo/smooth"
	"topo/stitch"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Generator produces contour maps. A Generator is safe for concurrent use.
type Generator struct {
	logger  *zap.Logger
	namer   *features.Namer
	workers int
	cache   *ResultCache
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithRand makes lake names come from rng instead of a source seeded
// from each run's seed.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.namer = features.NewNamer(rng)
		}
	}
}

// WithWorkers sets how many thresholds are traced concurrently.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// WithCache keeps up to size results keyed by their parameters.
func WithCache(size int) Option {
	return func(g *Generator) {
		if size > 0 {
			g.cache = NewResultCache(size)
		}
	}
}

// New creates a generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		logger:  zap.NewNop(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewSeed returns a fresh random seed.
func NewSeed() int64 {
	return rand.Int63()
}

// CacheStats returns the cache statistics, or zero stats without a cache.
func (g *Generator) CacheStats() CacheStats {
	if g.cache == nil {
		return CacheStats{}
	}
	return g.cache.Stats()
}

// Generate synthesizes a noise field from p and traces it. The returned
// result may be shared with other callers when caching is enabled and
// must not be modified.
func (g *Generator) Generate(p core.Params) *core.Result {
	key := KeyFor(p)
	if g.cache != nil {
		if r, ok := g.cache.Get(key); ok {
			g.logger.Debug("cache hit", zap.String("run_id", r.RunID), zap.Int64("seed", p.Seed))
			return r
		}
	}

	start := time.Now()
	noise, err := field.NewNoise(p.Noise, p.Seed)
	if err != nil {
		// Unknown kinds fall back to simplex; config validation rejects them earlier.
		g.logger.Warn("falling back to simplex noise", zap.Error(err))
		noise, _ = field.NewNoise(core.NoiseSimplex, p.Seed)
	}
	grid := field.Synthesize(p.Width, p.Height, p.GridSize, p.NoiseScale, noise)
	g.logger.Debug("field synthesized", zap.Duration("elapsed", time.Since(start)))

	r := g.GenerateFromGrid(grid, p)
	if g.cache != nil {
		g.cache.Put(key, r)
	}
	return r
}

// GenerateFromGrid traces an existing field, such as an imported heightmap.
// A degenerate grid yields a result with an empty path per threshold and
// no features.
func (g *Generator) GenerateFromGrid(grid *field.Grid, p core.Params) *core.Result {
	r := &core.Result{
		RunID:   uuid.NewString(),
		Params:  p,
		Levels:  make([]core.Level, len(p.ContourThresholds)),
		Streams: []string{},
		Lakes:   []core.Lake{},
		Peaks:   []core.Peak{},
	}
	for i, t := range p.ContourThresholds {
		r.Levels[i].Threshold = t
	}
	log := g.logger.With(zap.String("run_id", r.RunID))

	if grid == nil || grid.Degenerate() {
		log.Info("degenerate grid, nothing to trace",
			zap.Float64("width", p.Width),
			zap.Float64("height", p.Height),
			zap.Float64("grid_size", p.GridSize))
		return r
	}

	start := time.Now()
	g.traceLevels(grid, p, r.Levels)
	log.Debug("contours traced",
		zap.Int("levels", len(r.Levels)),
		zap.Int("workers", g.workers),
		zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	chains := stitch.Stitch(contour.Extract(grid, p.RiverThreshold))
	water := features.Classify(chains, g.namerFor(p), p.SimplifyTolerance)
	if water.Streams != nil {
		r.Streams = water.Streams
	}
	if water.Lakes != nil {
		r.Lakes = water.Lakes
	}
	log.Debug("water classified",
		zap.Int("streams", len(r.Streams)),
		zap.Int("lakes", len(r.Lakes)),
		zap.Duration("elapsed", time.Since(start)))

	if peaks := features.FindPeaks(grid); peaks != nil {
		r.Peaks = peaks
	}

	cols, rows := grid.Size()
	log.Info("terrain generated",
		zap.Int64("seed", p.Seed),
		zap.Int("cols", cols),
		zap.Int("rows", rows),
		zap.Int("levels", len(r.Levels)),
		zap.Int("streams", len(r.Streams)),
		zap.Int("lakes", len(r.Lakes)),
		zap.Int("peaks", len(r.Peaks)))
	return r
}

// traceLevels fills levels in place. Each level is independent, so the
// output does not depend on the worker count.
func (g *Generator) traceLevels(grid *field.Grid, p core.Params, levels []core.Level) {
	trace := func(i int) {
		chains := stitch.Stitch(contour.Extract(grid, levels[i].Threshold))
		levels[i].Chains = chains
		levels[i].Path = smooth.Join(chains, p.SimplifyTolerance)
	}

	if g.workers <= 1 || len(levels) < 2 {
		for i := range levels {
			trace(i)
		}
		return
	}

	var eg errgroup.Group
	eg.SetLimit(g.workers)
	for i := range levels {
		i := i // per-iteration copy; go directive is 1.21
		eg.Go(func() error {
			trace(i)
			return nil
		})
	}
	_ = eg.Wait() // trace never fails
}

func (g *Generator) namerFor(p core.Params) *features.Namer {
	if g.namer != nil {
		return g.namer
	}
	return features.NewNamer(rand.New(rand.NewSource(p.Seed)))
}
