package lifecycle

// Actions is implemented by the owner of a Machine. Each method is invoked exactly
// once per successful transition, before the state changes. A returned error aborts
// the transition and leaves the machine in its previous state.
type Actions interface {
	StartProcessing() error
	ProcessSucceeded() error
	ProcessFailed() error
	ResetToIdle() error
}

// ActionFuncs adapts plain functions to the Actions interface. Nil fields are no-ops.
type ActionFuncs struct {
	OnStart   func() error
	OnSucceed func() error
	OnFail    func() error
	OnReset   func() error
}

var _ Actions = ActionFuncs{}

func (f ActionFuncs) StartProcessing() error  { return call(f.OnStart) }
func (f ActionFuncs) ProcessSucceeded() error { return call(f.OnSucceed) }
func (f ActionFuncs) ProcessFailed() error    { return call(f.OnFail) }
func (f ActionFuncs) ResetToIdle() error      { return call(f.OnReset) }

func call(fn func() error) error {
	if fn == nil {
		return nil
	}

	return fn()
}

// bind resolves the action against the owner's implementation.
func (a Action) bind(actions Actions) func() error {
	switch a {
	case StartProcessing:
		return actions.StartProcessing
	case ProcessSucceeded:
		return actions.ProcessSucceeded
	case ProcessFailed:
		return actions.ProcessFailed
	case ResetToIdle:
		return actions.ResetToIdle
	default:
		return nil
	}
}
