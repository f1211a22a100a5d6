package virtual

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Option configures a Graph.
type Option func(*config)

// config holds configuration for a Graph instance.
type config struct {
	logger *slog.Logger
	tracer trace.Tracer
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLogger sets a custom logger for the graph.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for the graph. When set,
// FreezeAndIndex records a span covering the indexing pass with node and
// link counts as attributes.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}
