package zipstore

import (
	"log/slog"
	"runtime"

	"github.com/opencontainers/go-digest"
)

// config holds configuration shared by Assemble and ComputeEntries.
type config struct {
	logger          *slog.Logger
	progress        ProgressFunc
	maxEntries      int
	concurrency     int
	digestAlgorithm digest.Algorithm
}

// Option configures archive assembly and entry computation.
type Option func(*config)

func newConfig(opts []Option) config {
	cfg := config{
		maxEntries:      MaxEntries,
		digestAlgorithm: digest.Canonical,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.concurrency <= 0 {
		cfg.concurrency = runtime.GOMAXPROCS(0)
	}
	return cfg
}

// log returns the logger, falling back to a discard logger if nil.
func (c *config) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// reportProgress sends a progress event if a callback is configured.
func (c *config) reportProgress(ev ProgressEvent) {
	if c.progress == nil {
		return
	}
	c.progress(ev)
}

// WithLogger sets the logger for assembly and entry computation.
// A nil logger discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithProgress sets a callback that receives progress events.
// The callback may be invoked concurrently by ComputeEntries.
func WithProgress(fn ProgressFunc) Option {
	return func(cfg *config) {
		cfg.progress = fn
	}
}

// WithMaxEntries limits the number of entries in an archive.
// Values <= 0 or above MaxEntries use MaxEntries.
func WithMaxEntries(n int) Option {
	return func(cfg *config) {
		if n <= 0 || n > MaxEntries {
			n = MaxEntries
		}
		cfg.maxEntries = n
	}
}

// WithConcurrency sets how many checksums ComputeEntries runs in parallel.
// Values <= 0 use GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(cfg *config) {
		cfg.concurrency = n
	}
}

// WithDigestAlgorithm sets the algorithm used by Archive.Digest
// (default: digest.Canonical). Assembly does not depend on it; an
// unavailable algorithm is reported by Digest.
func WithDigestAlgorithm(alg digest.Algorithm) Option {
	return func(cfg *config) {
		cfg.digestAlgorithm = alg
	}
}
