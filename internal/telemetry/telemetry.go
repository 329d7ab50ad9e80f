// Package telemetry wires OpenTelemetry tracing and the Prometheus metrics endpoint
// for the lifecycle CLI.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/enetx/lifecycle/internal/config"
)

const readHeaderTimeout = 5 * time.Second

// ShutdownFunc flushes and stops a telemetry component.
type ShutdownFunc func(ctx context.Context) error

// Tracing returns the tracer provider described by cfg. With no endpoint
// configured it returns a no-op provider.
func Tracing(ctx context.Context, cfg config.Tracing, logger *slog.Logger) (trace.TracerProvider, ShutdownFunc, error) {
	if cfg.Endpoint == "" {
		logger.DebugContext(ctx, "OpenTelemetry endpoint not configured, tracing disabled")

		return noop.NewTracerProvider(), func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(cfg.Endpoint),
		otlptracehttp.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	logger.InfoContext(ctx, "OpenTelemetry tracing initialized",
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
	)

	return tp, tp.Shutdown, nil
}

// MetricsHandler exposes reg on /metrics.
func MetricsHandler(reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return r
}

// ServeMetrics starts serving reg on addr in the background. An empty addr
// disables the endpoint.
func ServeMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) ShutdownFunc {
	if addr == "" {
		return func(context.Context) error { return nil }
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           MetricsHandler(reg),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Info("serving metrics", "addr", addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()

	return srv.Shutdown
}
