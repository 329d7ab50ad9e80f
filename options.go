package lifecycle

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

const defaultName = "lifecycle"

// Option configures a Machine during construction.
type Option func(*Machine)

// WithName sets the name reported in logs, metrics and spans. Empty names are ignored.
func WithName(name string) Option {
	return func(m *Machine) {
		if name != "" {
			m.name = name
		}
	}
}

// WithObserver registers an observer for every transition attempt.
func WithObserver(o Observer) Option {
	return func(m *Machine) {
		if o != nil {
			m.observers.Push(o)
		}
	}
}

// WithLogger logs every transition attempt to l.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.observers.Push(NewLogObserver(l))
		}
	}
}

// WithMetrics records every transition attempt in mt.
func WithMetrics(mt *Metrics) Option {
	return func(m *Machine) {
		if mt != nil {
			m.observers.Push(mt)
		}
	}
}

// WithTracerProvider sets the provider used for transition spans.
// The global otel provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(m *Machine) {
		if tp != nil {
			m.tracer = tp.Tracer(tracerName)
		}
	}
}
