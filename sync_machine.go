package lifecycle

import (
	"context"
	"sync"

	"github.com/enetx/g"
)

// SyncMachine is a thread-safe wrapper around a Machine.
// Every transition (lookup, action, state update) runs under one lock, so a
// legal transition invokes its action exactly once even with concurrent callers.
// Actions must not call back into the same SyncMachine.
type SyncMachine struct {
	m  *Machine
	mu sync.RWMutex
}

// Interface compliance check.
var (
	_ StateMachine = (*Machine)(nil)
	_ StateMachine = (*SyncMachine)(nil)
)

// Start is the thread-safe version of Machine.Start.
func (sm *SyncMachine) Start() error { return sm.Fire(Start) }

// Succeed is the thread-safe version of Machine.Succeed.
func (sm *SyncMachine) Succeed() error { return sm.Fire(Succeed) }

// Fail is the thread-safe version of Machine.Fail.
func (sm *SyncMachine) Fail() error { return sm.Fire(Fail) }

// Reset is the thread-safe version of Machine.Reset.
func (sm *SyncMachine) Reset() error { return sm.Fire(Reset) }

// Fire is the thread-safe version of Machine.Fire.
func (sm *SyncMachine) Fire(t Transition) error {
	return sm.FireContext(context.Background(), t)
}

// FireContext is the thread-safe version of Machine.FireContext.
func (sm *SyncMachine) FireContext(ctx context.Context, t Transition) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.m.FireContext(ctx, t)
}

// Current is the thread-safe version of Machine.Current.
func (sm *SyncMachine) Current() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Current()
}

// CanFire is the thread-safe version of Machine.CanFire.
func (sm *SyncMachine) CanFire(t Transition) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.CanFire(t)
}

// Available is the thread-safe version of Machine.Available.
func (sm *SyncMachine) Available() g.Slice[Transition] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Available()
}

// Name returns the wrapped machine's name.
func (sm *SyncMachine) Name() string { return sm.m.Name() }

// ToDOT is the thread-safe version of Machine.ToDOT.
func (sm *SyncMachine) ToDOT() g.String {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.ToDOT()
}

// Status is the thread-safe version of Machine.Status.
func (sm *SyncMachine) Status() Status {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.Status()
}

// MarshalJSON implements the json.Marshaler interface for thread-safe
// serialization of the machine's status.
func (sm *SyncMachine) MarshalJSON() ([]byte, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.m.MarshalJSON()
}
