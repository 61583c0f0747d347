package nli

import (
	"context"
	"time"

	"github.com/ppiankov/nli-prover/internal/cache"
)

// CachedBackend memoizes successful classifications. Errors are never cached.
type CachedBackend struct {
	next  Backend
	cache cache.Cache
	model string
	ttl   time.Duration
}

// NewCachedBackend wraps next; model is mixed into the key so switching
// models does not reuse stale scores
func NewCachedBackend(next Backend, c cache.Cache, model string, ttl time.Duration) *CachedBackend {
	return &CachedBackend{
		next:  next,
		cache: c,
		model: model,
		ttl:   ttl,
	}
}

// Name returns the wrapped backend name
func (b *CachedBackend) Name() string {
	return b.next.Name()
}

// IsAvailable delegates to the wrapped backend
func (b *CachedBackend) IsAvailable(ctx context.Context) bool {
	return b.next.IsAvailable(ctx)
}

// Classify serves from cache when possible
func (b *CachedBackend) Classify(ctx context.Context, premise, hypothesis string) (map[string]float64, error) {
	key := cache.CacheKey(b.next.Name(), b.model, premise, hypothesis)
	if scores, ok := b.cache.Get(key); ok {
		return scores, nil
	}

	scores, err := b.next.Classify(ctx, premise, hypothesis)
	if err != nil {
		return nil, err
	}

	// A failed write only costs a future cache miss
	_ = b.cache.Set(key, scores, b.ttl)

	return scores, nil
}
