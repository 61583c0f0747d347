package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores NLI probability maps keyed by an opaque string
type Cache interface {
	Get(key string) (map[string]float64, bool)
	Set(key string, scores map[string]float64, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey derives a key from the parts that determine an inference result,
// typically provider, model, premise and hypothesis
func CacheKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return "nli-prover:v1:" + hex.EncodeToString(h.Sum(nil))
}

func copyScores(scores map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(scores))
	for k, v := range scores {
		out[k] = v
	}
	return out
}
