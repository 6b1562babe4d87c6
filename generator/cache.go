package generator

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"topo/core"
)

// CacheKey identifies one generation pass. Two passes with equal keys
// produce the same geometry.
type CacheKey struct {
	Width, Height, GridSize float64
	Seed                    int64
	Noise                   core.NoiseKind
	Scale                   float64
	River                   float64
	Simplify                float64
	Thresholds              string // canonical rendering of the threshold list
}

// KeyFor builds the cache key of p.
func KeyFor(p core.Params) CacheKey {
	parts := make([]string, len(p.ContourThresholds))
	for i, t := range p.ContourThresholds {
		parts[i] = fmt.Sprintf("%g", t)
	}
	return CacheKey{
		Width:      p.Width,
		Height:     p.Height,
		GridSize:   p.GridSize,
		Seed:       p.Seed,
		Noise:      p.Noise,
		Scale:      p.NoiseScale,
		River:      p.RiverThreshold,
		Simplify:   p.SimplifyTolerance,
		Thresholds: strings.Join(parts, ","),
	}
}

// ResultCache stores previously generated results for reuse.
type ResultCache struct {
	mu        sync.RWMutex
	cache     map[CacheKey]*core.Result
	order     []CacheKey // insertion order, oldest first
	maxSize   int
	hits      int64 // Use atomic operations
	misses    int64 // Use atomic operations
	evictions int64 // Use atomic operations
}

// NewResultCache creates a cache holding at most maxSize results.
func NewResultCache(maxSize int) *ResultCache {
	return &ResultCache{
		cache:   make(map[CacheKey]*core.Result),
		maxSize: maxSize,
	}
}

// Get retrieves a result from the cache if it exists.
func (rc *ResultCache) Get(key CacheKey) (*core.Result, bool) {
	rc.mu.RLock()
	r, found := rc.cache[key]
	rc.mu.RUnlock()

	if found {
		atomic.AddInt64(&rc.hits, 1)
	} else {
		atomic.AddInt64(&rc.misses, 1)
	}
	return r, found
}

// Put stores a result, evicting the oldest entry when full.
func (rc *ResultCache) Put(key CacheKey, r *core.Result) {
	if rc.maxSize <= 0 {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if _, exists := rc.cache[key]; exists {
		rc.cache[key] = r
		return
	}
	for len(rc.cache) >= rc.maxSize && len(rc.order) > 0 {
		oldest := rc.order[0]
		rc.order = rc.order[1:]
		delete(rc.cache, oldest)
		atomic.AddInt64(&rc.evictions, 1)
	}
	rc.cache[key] = r
	rc.order = append(rc.order, key)
}

// Clear removes all entries and resets statistics.
func (rc *ResultCache) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.cache = make(map[CacheKey]*core.Result)
	rc.order = nil
	atomic.StoreInt64(&rc.hits, 0)
	atomic.StoreInt64(&rc.misses, 0)
	atomic.StoreInt64(&rc.evictions, 0)
}

// Size returns the current number of cached results.
func (rc *ResultCache) Size() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.cache)
}

// CacheStats contains cache performance statistics.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	HitRate   float64
}

// Stats returns cache statistics.
func (rc *ResultCache) Stats() CacheStats {
	hits := atomic.LoadInt64(&rc.hits)
	misses := atomic.LoadInt64(&rc.misses)

	stats := CacheStats{
		Hits:      hits,
		Misses:    misses,
		Evictions: atomic.LoadInt64(&rc.evictions),
		Size:      rc.Size(),
	}
	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}
	return stats
}
