package index

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNew_WithTracer(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
	)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tr, _, _, _ := rerouteChainTree()
	New(tr, WithTracer(tp.Tracer("test")))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "index.build", spans[0].Name)

	attrs := make(map[string]any, len(spans[0].Attributes))
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, int64(3), attrs["tree.nodes"])
	assert.Equal(t, int64(2), attrs["tree.links"])
	assert.Equal(t, int64(2), attrs["tree.actual_nodes"])
}

func TestNew_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tr, _, _, _ := rerouteChainTree()
	New(tr, WithLogger(logger))

	assert.Contains(t, buf.String(), "built tree index")
}
