package nli

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// ThrottledBackend waits for a rate limiter token before each call so
// hosted endpoints with request quotas are not flooded by lemma scans
type ThrottledBackend struct {
	next    Backend
	limiter *rate.Limiter
}

// NewThrottledBackend allows requestsPerSecond calls with the given burst
func NewThrottledBackend(next Backend, requestsPerSecond float64, burst int) *ThrottledBackend {
	if burst <= 0 {
		burst = 1
	}
	return &ThrottledBackend{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Name returns the wrapped backend name
func (b *ThrottledBackend) Name() string {
	return b.next.Name()
}

// IsAvailable delegates without consuming a token
func (b *ThrottledBackend) IsAvailable(ctx context.Context) bool {
	return b.next.IsAvailable(ctx)
}

// Classify blocks until a token is available or ctx ends
func (b *ThrottledBackend) Classify(ctx context.Context, premise, hypothesis string) (map[string]float64, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	return b.next.Classify(ctx, premise, hypothesis)
}
