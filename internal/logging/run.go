package logging

import (
	"crypto/rand"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewRunID returns a sortable identifier for one process run
func NewRunID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// WithRun tags every record of logger with a fresh run id
func WithRun(logger *slog.Logger) (*slog.Logger, string) {
	id := NewRunID()
	return logger.With("run", id), id
}
