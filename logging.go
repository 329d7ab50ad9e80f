package lifecycle

import (
	"context"
	"log/slog"
)

// LogObserver writes transition attempts to a slog.Logger.
type LogObserver struct {
	logger *slog.Logger
}

var _ Observer = (*LogObserver)(nil)

// NewLogObserver creates a LogObserver. A nil logger falls back to slog.Default().
func NewLogObserver(l *slog.Logger) *LogObserver {
	if l == nil {
		l = slog.Default()
	}

	return &LogObserver{logger: l}
}

func (o *LogObserver) Transitioned(ctx context.Context, e Event) {
	o.logger.InfoContext(ctx, "transition applied",
		"machine", e.Machine,
		"from", e.From.String(),
		"to", e.To.String(),
		"transition", e.Transition.String(),
		"action", e.Action.String(),
		"duration_ms", e.Elapsed.Milliseconds(),
	)
}

func (o *LogObserver) Rejected(ctx context.Context, e Event) {
	if IsIllegalTransition(e.Err) {
		o.logger.WarnContext(ctx, "illegal transition",
			"machine", e.Machine,
			"state", e.From.String(),
			"transition", e.Transition.String(),
		)

		return
	}

	o.logger.ErrorContext(ctx, "transition action failed",
		"machine", e.Machine,
		"state", e.From.String(),
		"transition", e.Transition.String(),
		"action", e.Action.String(),
		"duration_ms", e.Elapsed.Milliseconds(),
		"error", e.Err,
	)
}
