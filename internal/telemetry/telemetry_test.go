package telemetry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enetx/lifecycle"
	"github.com/enetx/lifecycle/internal/config"
)

func TestTracing_Disabled(t *testing.T) {
	t.Parallel()

	tp, shutdown, err := Tracing(t.Context(), config.Tracing{}, slogt.New(t))
	require.NoError(t, err)
	require.NotNil(t, tp)
	assert.NoError(t, shutdown(t.Context()))
}

func TestTracing_Enabled(t *testing.T) {
	t.Parallel()

	cfg := config.Tracing{
		Endpoint:    "http://127.0.0.1:4318/v1/traces",
		ServiceName: "lifecycle-test",
	}

	tp, shutdown, err := Tracing(t.Context(), cfg, slogt.New(t))
	require.NoError(t, err)
	require.NotNil(t, tp)

	// Nothing was exported, so shutdown does not need the collector.
	assert.NoError(t, shutdown(t.Context()))
}

func TestMetricsHandler(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()

	m, err := lifecycle.New(lifecycle.ActionFuncs{},
		lifecycle.WithName("scraped"),
		lifecycle.WithMetrics(lifecycle.NewMetrics(reg)),
	)
	require.NoError(t, err)
	require.NoError(t, m.Start())

	srv := httptest.NewServer(MetricsHandler(reg))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `lifecycle_transitions_total{from_state="Idle",machine="scraped",to_state="Processing",transition="start"} 1`)
}

func TestServeMetrics_Disabled(t *testing.T) {
	t.Parallel()

	shutdown := ServeMetrics("", prometheus.NewRegistry(), slogt.New(t))
	assert.NoError(t, shutdown(t.Context()))
}
