package lifecycle

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons reported by Metrics.
const (
	reasonIllegal = "illegal"
	reasonAction  = "action_error"
)

// Metrics records transition attempts as Prometheus metrics.
// Create one per registry and share it between machines; the "machine" label
// keeps them apart.
type Metrics struct {
	transitions    *prometheus.CounterVec
	rejections     *prometheus.CounterVec
	actionDuration *prometheus.HistogramVec
	state          *prometheus.GaugeVec
}

var (
	_ Observer      = (*Metrics)(nil)
	_ stateReporter = (*Metrics)(nil)
)

// stateReporter is implemented by observers that track the current state and
// need the initial one when a machine is created.
type stateReporter interface {
	reportState(machine string, s State)
}

// NewMetrics creates the lifecycle metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lifecycle_transitions_total",
			Help: "Total number of committed transitions by machine, from state, to state and transition",
		}, []string{"machine", "from_state", "to_state", "transition"}),

		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lifecycle_rejections_total",
			Help: "Total number of rejected transition attempts by machine, state, transition and reason",
		}, []string{"machine", "state", "transition", "reason"}),

		actionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lifecycle_action_duration_seconds",
			Help:    "Duration of action execution by machine and action",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"machine", "action"}),

		state: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lifecycle_state",
			Help: "1 for the state each machine is currently in, 0 otherwise",
		}, []string{"machine", "state"}),
	}
}

func (mt *Metrics) Transitioned(_ context.Context, e Event) {
	mt.transitions.WithLabelValues(e.Machine, e.From.String(), e.To.String(), e.Transition.String()).Inc()
	mt.actionDuration.WithLabelValues(e.Machine, e.Action.String()).Observe(e.Elapsed.Seconds())
	mt.reportState(e.Machine, e.To)
}

func (mt *Metrics) reportState(machine string, current State) {
	for _, s := range States() {
		v := 0.0
		if s == current {
			v = 1
		}

		mt.state.WithLabelValues(machine, s.String()).Set(v)
	}
}

func (mt *Metrics) Rejected(_ context.Context, e Event) {
	reason := reasonAction
	if IsIllegalTransition(e.Err) {
		reason = reasonIllegal
	} else {
		mt.actionDuration.WithLabelValues(e.Machine, e.Action.String()).Observe(e.Elapsed.Seconds())
	}

	mt.rejections.WithLabelValues(e.Machine, e.From.String(), e.Transition.String(), reason).Inc()
}
