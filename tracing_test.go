package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	return exporter, tp
}

func spanAttr(span tracetest.SpanStub, key attribute.Key) string {
	for _, kv := range span.Attributes {
		if kv.Key == key {
			return kv.Value.AsString()
		}
	}

	return ""
}

func TestTracing(t *testing.T) {
	t.Parallel()

	exporter, tp := setupTestTracer(t)

	m, err := New(ActionFuncs{}, WithName("traced"), WithTracerProvider(tp))
	require.NoError(t, err)

	require.NoError(t, m.Start())
	require.Error(t, m.Reset())

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	ok := spans[0]
	assert.Equal(t, "lifecycle.start", ok.Name)
	assert.Equal(t, codes.Ok, ok.Status.Code)
	assert.Equal(t, "traced", spanAttr(ok, "lifecycle.machine"))
	assert.Equal(t, "Idle", spanAttr(ok, "lifecycle.from"))
	assert.Equal(t, "Processing", spanAttr(ok, "lifecycle.state"))

	rejected := spans[1]
	assert.Equal(t, "lifecycle.reset", rejected.Name)
	assert.Equal(t, codes.Error, rejected.Status.Code)
	assert.Equal(t, "Processing", spanAttr(rejected, "lifecycle.state"))
	require.Len(t, rejected.Events, 1)
	assert.Equal(t, "exception", rejected.Events[0].Name)
}
