package lifecycle

import (
	"context"

	"github.com/enetx/g"
)

// StateMachine is the caller-facing contract shared by Machine and SyncMachine.
type StateMachine interface {
	Start() error
	Succeed() error
	Fail() error
	Reset() error
	Fire(Transition) error
	FireContext(context.Context, Transition) error
	Current() State
	CanFire(Transition) bool
	Available() g.Slice[Transition]
	Name() string
	Status() Status
	ToDOT() g.String
	MarshalJSON() ([]byte, error)
}
