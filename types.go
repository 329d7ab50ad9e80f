package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/enetx/g"
)

type (
	// State represents one of the fixed lifecycle states.
	State uint8
	// Transition represents a named command that moves the machine between states.
	Transition uint8
	// Action identifies the callback bound to a transition.
	Action uint8
)

const (
	Idle State = iota
	Processing
	Succeeded
	Failed

	stateCount = int(iota)
)

const (
	Start Transition = iota
	Succeed
	Fail
	Reset

	transitionCount = int(iota)
)

const (
	StartProcessing Action = iota
	ProcessSucceeded
	ProcessFailed
	ResetToIdle

	actionCount = int(iota)
)

var (
	stateNames      = [stateCount]g.String{"Idle", "Processing", "Succeeded", "Failed"}
	transitionNames = [transitionCount]g.String{"start", "succeed", "fail", "reset"}
	actionNames     = [actionCount]g.String{"start_processing", "process_succeeded", "process_failed", "reset_to_idle"}
)

type (
	// TransitionHook is called after a transition has been committed.
	TransitionHook func(from, to State, t Transition)

	// Event describes a transition attempt as seen by an Observer.
	// To and Action are only meaningful when the attempt matched a table row.
	Event struct {
		Machine    string
		From       State
		To         State
		Transition Transition
		Action     Action
		Elapsed    time.Duration
		Err        error
	}

	// Observer receives every transition attempt made on a Machine.
	Observer interface {
		Transitioned(ctx context.Context, e Event)
		Rejected(ctx context.Context, e Event)
	}

	// binding is a table row with its action resolved against the owner's Actions.
	binding struct {
		row  Row
		call func() error
		ok   bool
	}
)

// States returns every lifecycle state in declaration order.
func States() g.Slice[State] {
	return g.SliceOf(Idle, Processing, Succeeded, Failed)
}

// Transitions returns every transition in declaration order.
func Transitions() g.Slice[Transition] {
	return g.SliceOf(Start, Succeed, Fail, Reset)
}

// Name returns the human-readable state name, e.g. "Processing".
func (s State) Name() g.String {
	if s.valid() {
		return stateNames[s]
	}

	return g.String(fmt.Sprintf("State(%d)", uint8(s)))
}

func (s State) String() string { return string(s.Name()) }

func (s State) valid() bool { return int(s) < stateCount }

// Name returns the command name of the transition, e.g. "start".
func (t Transition) Name() g.String {
	if t.valid() {
		return transitionNames[t]
	}

	return g.String(fmt.Sprintf("Transition(%d)", uint8(t)))
}

func (t Transition) String() string { return string(t.Name()) }

func (t Transition) valid() bool { return int(t) < transitionCount }

// Name returns the action name, e.g. "reset_to_idle".
func (a Action) Name() g.String {
	if int(a) < actionCount {
		return actionNames[a]
	}

	return g.String(fmt.Sprintf("Action(%d)", uint8(a)))
}

func (a Action) String() string { return string(a.Name()) }

// ParseState resolves a state by name, ignoring case and surrounding whitespace.
func ParseState(name g.String) (State, error) {
	want := name.Trim().Lower()
	for i, n := range stateNames {
		if n.Lower() == want {
			return State(i), nil
		}
	}

	return Idle, &ErrUnknownState{Name: name}
}

// ParseTransition resolves a transition by command name, ignoring case and surrounding whitespace.
func ParseTransition(name g.String) (Transition, error) {
	want := name.Trim().Lower()
	for i, n := range transitionNames {
		if n == want {
			return Transition(i), nil
		}
	}

	return Start, &ErrUnknownTransition{Name: name}
}
