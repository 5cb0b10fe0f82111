package verifier

import (
	"go.uber.org/zap"
)

// DefaultMaxProofSize bounds the proofs accepted by DefaultConfig.
const DefaultMaxProofSize = 64 * 1024

// Config configures a Verifier.
type Config struct {
	// NumWorkers bounds batch verification concurrency (0 = auto-detect)
	NumWorkers int

	// MaxProofSize rejects longer proofs before parsing (0 = unlimited)
	MaxProofSize int

	// Logger receives debug and rejection logs (nil = no logging)
	Logger *zap.Logger

	// Metrics records verification outcomes (nil = disabled)
	Metrics *Metrics
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		NumWorkers:   0, // Auto-detect
		MaxProofSize: DefaultMaxProofSize,
		Logger:       zap.NewNop(),
	}
}

// WithNumWorkers sets the batch worker count.
func (c Config) WithNumWorkers(n int) Config {
	c.NumWorkers = n
	return c
}

// WithMaxProofSize sets the proof size limit.
func (c Config) WithMaxProofSize(n int) Config {
	c.MaxProofSize = n
	return c
}

// WithLogger sets the logger.
func (c Config) WithLogger(log *zap.Logger) Config {
	c.Logger = log
	return c
}

// WithMetrics sets the metrics sink.
func (c Config) WithMetrics(m *Metrics) Config {
	c.Metrics = m
	return c
}
