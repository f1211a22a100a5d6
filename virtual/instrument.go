package virtual

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("github.com/zero-day-ai/nodegraph/virtual")

// Freeze instruments. Registration errors are ignored: the global meter
// provider falls back to a no-op implementation.
var (
	freezeCount     metric.Int64Counter
	frozenNodeCount metric.Int64Counter
)

func init() {
	freezeCount, _ = meter.Int64Counter("nodegraph.virtual.freezes",
		metric.WithDescription("Number of virtual graphs frozen."))
	frozenNodeCount, _ = meter.Int64Counter("nodegraph.virtual.nodes",
		metric.WithDescription("Number of virtual nodes indexed at freeze."))
}
