// Command lifecycle drives a processing lifecycle state machine from the terminal.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/enetx/lifecycle"
	"github.com/enetx/lifecycle/internal/config"
	"github.com/enetx/lifecycle/internal/console"
	"github.com/enetx/lifecycle/internal/logging"
	"github.com/enetx/lifecycle/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "lifecycle:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	logger := logging.New(
		logging.WithLevel(level),
		logging.WithFormat(logging.Format(cfg.LogFormat)),
		logging.WithAttr(slog.String("session_id", uuid.NewString())),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, shutdownTracing, err := telemetry.Tracing(ctx, cfg.Tracing, logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	shutdownMetrics := telemetry.ServeMetrics(cfg.MetricsAddr, reg, logger)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := shutdownMetrics(shutdownCtx); err != nil {
			logger.Warn("failed to stop metrics server", "error", err)
		}

		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("failed to flush traces", "error", err)
		}
	}()

	machine, err := lifecycle.New(console.NewPrinter(os.Stdout),
		lifecycle.WithName(cfg.MachineName),
		lifecycle.WithLogger(logger),
		lifecycle.WithMetrics(lifecycle.NewMetrics(reg)),
		lifecycle.WithTracerProvider(tp),
	)
	if err != nil {
		return err
	}

	session := console.NewSession(machine, os.Stdout, logger)

	return session.Run(ctx, console.StdinReader())
}
