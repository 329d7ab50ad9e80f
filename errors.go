package lifecycle

import (
	"errors"
	"fmt"

	"github.com/enetx/g"
)

// ErrNilActions is returned by New when no Actions implementation is supplied.
var ErrNilActions = errors.New("lifecycle: actions must not be nil")

// ErrIllegalTransition is returned when a transition is not legal from the current state.
// The machine is left untouched and remains usable.
type ErrIllegalTransition struct {
	State      State
	Transition Transition
}

func (e *ErrIllegalTransition) Error() string {
	return fmt.Sprintf("lifecycle: illegal transition %q from state %q", e.Transition, e.State)
}

// ErrAction is returned when the action bound to a legal transition returns an error
// or panics. The transition is aborted and the state is unchanged. It wraps the original
// error, so it can be inspected with errors.Is and errors.As.
type ErrAction struct {
	// Action is the action that failed.
	Action Action
	// State is the state the machine was in, and still is.
	State State
	// Transition is the transition that was being attempted.
	Transition Transition
	// Err is the error returned by the action, or the error created after recovering from a panic.
	Err error
}

func (e *ErrAction) Error() string {
	return fmt.Sprintf("lifecycle: action %s failed during %q from state %q: %v",
		e.Action, e.Transition, e.State, e.Err)
}

func (e *ErrAction) Unwrap() error { return e.Err }

// ErrHook is returned when an OnTransition hook panics. Unlike ErrAction, the
// transition has already been committed: the machine is in To. Hooks registered
// after the failing one are skipped.
type ErrHook struct {
	From       State
	To         State
	Transition Transition
	Err        error
}

func (e *ErrHook) Error() string {
	return fmt.Sprintf("lifecycle: transition hook failed after %q from state %q to %q: %v",
		e.Transition, e.From, e.To, e.Err)
}

func (e *ErrHook) Unwrap() error { return e.Err }

// ErrUnknownState is returned when parsing a name that is not a lifecycle state.
type ErrUnknownState struct {
	Name g.String
}

func (e *ErrUnknownState) Error() string {
	return fmt.Sprintf("lifecycle: unknown state %q", string(e.Name))
}

// ErrUnknownTransition is returned when parsing a name that is not a transition command.
type ErrUnknownTransition struct {
	Name g.String
}

func (e *ErrUnknownTransition) Error() string {
	return fmt.Sprintf("lifecycle: unknown transition %q", string(e.Name))
}

// IsIllegalTransition reports whether err is, or wraps, an *ErrIllegalTransition.
func IsIllegalTransition(err error) bool {
	var e *ErrIllegalTransition
	return errors.As(err, &e)
}
