package index

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("github.com/zero-day-ai/nodegraph/index")

// Build instruments. Registration errors are ignored: the global meter
// provider falls back to a no-op implementation.
var (
	buildCount metric.Int64Counter
	nodeCount  metric.Int64Counter
)

func init() {
	buildCount, _ = meter.Int64Counter("nodegraph.index.builds",
		metric.WithDescription("Number of tree indexes built."))
	nodeCount, _ = meter.Int64Counter("nodegraph.index.nodes",
		metric.WithDescription("Number of raw nodes indexed."))
}
