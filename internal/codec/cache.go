package codec

import (
	"context"
	"image"
	"sync"
)

// EstimateCache provides thread-safe caching of size estimates to avoid
// redundant encode work while the synchronizer churns through parameter
// changes.
//
// Entries are keyed by (revision, format, quality). The revision is the
// caller's parameter version: any change that produces a new preview raster
// must come with a new revision, so a cached entry can never describe a
// stale raster. PNG ignores quality, so all PNG entries for a revision
// share one key regardless of the active quality setting.
//
// EstimateCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Entries remain until Clear() is called. Sessions clear the cache on reset
// and whenever the source image changes; estimate entries are a few bytes
// each, so between-reset growth is bounded by the number of distinct
// quality values a user can dial through.
type EstimateCache struct {
	mu      sync.RWMutex
	entries map[estimateKey]int64
}

type estimateKey struct {
	revision uint64
	format   Format
	quality  int // 1..100 for JPEG, 0 for PNG
}

// NewEstimateCache creates an empty estimate cache ready for use.
func NewEstimateCache() *EstimateCache {
	return &EstimateCache{
		entries: make(map[estimateKey]int64),
	}
}

// EstimateSize returns the cached byte count for (revision, settings) or
// computes, stores, and returns it. Computation failures are not cached.
func (c *EstimateCache) EstimateSize(ctx context.Context, raster image.Image, revision uint64, s Settings) (int64, error) {
	key := keyFor(revision, s)

	c.mu.RLock()
	if n, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		return n, nil
	}
	c.mu.RUnlock()

	n, err := EstimateSize(ctx, raster, s)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.entries[key] = n
	c.mu.Unlock()

	return n, nil
}

// Clear removes all cached estimates.
func (c *EstimateCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[estimateKey]int64)
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *EstimateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func keyFor(revision uint64, s Settings) estimateKey {
	key := estimateKey{revision: revision, format: s.Format}
	if s.Format == FormatJPEG {
		key.quality = jpegQuality(s.Quality)
	}
	return key
}
