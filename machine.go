// Package lifecycle implements the finite state machine behind a four-state
// processing lifecycle: Idle -> Processing -> Succeeded|Failed -> Idle.
// The transition table is fixed; owners plug in behaviour through Actions.
package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/enetx/g"
	"go.opentelemetry.io/otel/trace"
)

// Machine is the lifecycle state machine. It is not safe for concurrent use;
// see SyncMachine.
type Machine struct {
	name      string
	current   State
	actions   Actions
	bindings  [stateCount][transitionCount]binding
	hooks     g.Slice[TransitionHook]
	observers g.Slice[Observer]
	tracer    trace.Tracer
	opts      []Option
}

// New creates a Machine in the Idle state whose transitions invoke the given actions.
func New(actions Actions, opts ...Option) (*Machine, error) {
	if actions == nil {
		return nil, ErrNilActions
	}

	m := &Machine{
		name:    defaultName,
		current: Idle,
		actions: actions,
		opts:    opts,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.tracer == nil {
		m.tracer = defaultTracer()
	}

	for _, r := range rows {
		m.bindings[r.From][r.Transition] = binding{row: r, call: r.Action.bind(actions), ok: true}
	}

	for _, o := range m.observers {
		if sr, ok := o.(stateReporter); ok {
			sr.reportState(m.name, m.current)
		}
	}

	return m, nil
}

// Clone creates a new Machine with the same actions and options, starting in Idle.
// Hooks registered with OnTransition are carried over.
func (m *Machine) Clone() *Machine {
	// m.actions is non-nil, so New cannot fail.
	c, _ := New(m.actions, m.opts...)
	c.hooks = m.hooks.Clone()

	return c
}

// Name returns the machine name used in logs, metrics and spans.
func (m *Machine) Name() string { return m.name }

// Current returns the machine's current state.
func (m *Machine) Current() State { return m.current }

// CanFire reports whether t is legal from the current state.
func (m *Machine) CanFire(t Transition) bool {
	_, ok := m.lookup(m.current, t)
	return ok
}

// Available returns the transitions that are legal from the current state.
func (m *Machine) Available() g.Slice[Transition] { return Outgoing(m.current) }

// OnTransition registers a hook called after every committed transition.
// A panicking hook is reported as an *ErrHook; the transition stays committed.
func (m *Machine) OnTransition(hook TransitionHook) *Machine {
	m.hooks.Push(hook)
	return m
}

// Start moves Idle to Processing, running StartProcessing.
func (m *Machine) Start() error { return m.Fire(Start) }

// Succeed moves Processing to Succeeded, running ProcessSucceeded.
func (m *Machine) Succeed() error { return m.Fire(Succeed) }

// Fail moves Processing to Failed, running ProcessFailed.
func (m *Machine) Fail() error { return m.Fire(Fail) }

// Reset moves Succeeded or Failed back to Idle, running ResetToIdle.
func (m *Machine) Reset() error { return m.Fire(Reset) }

// Fire attempts transition t from the current state.
func (m *Machine) Fire(t Transition) error {
	return m.FireContext(context.Background(), t)
}

// FireContext attempts transition t from the current state. The context only
// carries tracing and logging values; transitions are never cancelled.
//
// On success exactly one action has run and the state is the row's target.
// An *ErrIllegalTransition or *ErrAction means no state change happened.
// An *ErrHook means the transition was committed but a hook panicked.
func (m *Machine) FireContext(ctx context.Context, t Transition) (err error) {
	from := m.current

	ctx, span := m.startSpan(ctx, from, t)
	defer func() { endSpan(span, m.current, err) }()

	b, ok := m.lookup(from, t)
	if !ok {
		err = &ErrIllegalTransition{State: from, Transition: t}
		m.reject(ctx, Event{Machine: m.name, From: from, To: from, Transition: t, Err: err})

		return err
	}

	start := time.Now()
	err = m.invoke(b)
	elapsed := time.Since(start)

	e := Event{Machine: m.name, From: from, To: b.row.To, Transition: t, Action: b.row.Action, Elapsed: elapsed}

	if err != nil {
		e.Err = err
		m.reject(ctx, e)

		return err
	}

	m.current = b.row.To

	for _, o := range m.observers {
		o.Transitioned(ctx, e)
	}

	for _, hook := range m.hooks {
		if err = runHook(hook, b.row); err != nil {
			return err
		}
	}

	return nil
}

// runHook calls hook for a committed row, recovering from panics.
func runHook(hook TransitionHook, r Row) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &ErrHook{From: r.From, To: r.To, Transition: r.Transition, Err: fmt.Errorf("panic: %v", v)}
		}
	}()

	hook(r.From, r.To, r.Transition)

	return nil
}

func (m *Machine) lookup(s State, t Transition) (binding, bool) {
	if !s.valid() || !t.valid() {
		return binding{}, false
	}

	b := m.bindings[s][t]

	return b, b.ok
}

// invoke runs the bound action, recovering from panics.
func (m *Machine) invoke(b binding) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ErrAction{
				Action:     b.row.Action,
				State:      b.row.From,
				Transition: b.row.Transition,
				Err:        fmt.Errorf("panic: %v", r),
			}
		}
	}()

	if b.call == nil {
		return nil
	}

	if cbErr := b.call(); cbErr != nil {
		err = &ErrAction{Action: b.row.Action, State: b.row.From, Transition: b.row.Transition, Err: cbErr}
	}

	return err
}

func (m *Machine) reject(ctx context.Context, e Event) {
	for _, o := range m.observers {
		o.Rejected(ctx, e)
	}
}

// Sync wraps the machine in a SyncMachine. The original Machine must not be used
// directly afterwards.
func (m *Machine) Sync() *SyncMachine { return &SyncMachine{m: m} }
