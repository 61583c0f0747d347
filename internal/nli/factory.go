package nli

import (
	"log/slog"
	"time"

	"github.com/ppiankov/nli-prover/internal/cache"
	"github.com/ppiankov/nli-prover/internal/model"
)

// NewScorer builds the configured backend and layers throttling, caching
// and the safety adapter on top of it
func NewScorer(cfg *model.Config, logger *slog.Logger) (*SafeScorer, error) {
	backend, err := NewBackend(cfg.NLI, cfg.HTTP)
	if err != nil {
		return nil, err
	}

	if cfg.RateLimit.RequestsPerSecond > 0 {
		backend = NewThrottledBackend(backend, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	if cfg.Cache.Enabled {
		backend = NewCachedBackend(backend, newCache(cfg.Cache), cfg.NLI.Model, 0)
	}

	return NewSafeScorer(backend, cfg.NLI.MaxInputChars, logger), nil
}

func newCache(cfg model.CacheConfig) cache.Cache {
	memoryTTL := cfg.MemoryTTL
	if memoryTTL <= 0 {
		memoryTTL = time.Hour
	}

	if cfg.Dir == "" {
		return cache.NewMemoryCache(memoryTTL, 10*time.Minute)
	}
	return cache.NewLayeredCache(memoryTTL, cfg.Dir, cfg.DiskTTL)
}
