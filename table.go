package lifecycle

import "github.com/enetx/g"

// Row is a single legal edge of the lifecycle: from -> transition -> to, running action.
type Row struct {
	From       State
	Transition Transition
	To         State
	Action     Action
}

// rows is the complete transition table. Anything not listed is illegal.
var rows = [...]Row{
	{From: Idle, Transition: Start, To: Processing, Action: StartProcessing},
	{From: Processing, Transition: Succeed, To: Succeeded, Action: ProcessSucceeded},
	{From: Processing, Transition: Fail, To: Failed, Action: ProcessFailed},
	{From: Succeeded, Transition: Reset, To: Idle, Action: ResetToIdle},
	{From: Failed, Transition: Reset, To: Idle, Action: ResetToIdle},
}

// lookupTable indexes rows by [from][transition].
var lookupTable = func() (t [stateCount][transitionCount]struct {
	row Row
	ok  bool
}) {
	for _, r := range rows {
		t[r.From][r.Transition].row = r
		t[r.From][r.Transition].ok = true
	}

	return t
}()

// Table returns a copy of the transition table in declaration order.
func Table() g.Slice[Row] {
	return g.SliceOf(rows[:]...).Clone()
}

// Lookup reports the row for transition t taken from state s, if one exists.
func Lookup(s State, t Transition) (Row, bool) {
	if !s.valid() || !t.valid() {
		return Row{}, false
	}

	e := lookupTable[s][t]

	return e.row, e.ok
}

// Outgoing returns the transitions that are legal from state s, in table order.
func Outgoing(s State) g.Slice[Transition] {
	var out g.Slice[Transition]

	for _, r := range rows {
		if r.From == s {
			out.Push(r.Transition)
		}
	}

	return out
}
