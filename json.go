package lifecycle

import (
	"encoding/json"

	"github.com/enetx/g"
)

// Status is a serializable snapshot of a machine, meant for reporting.
type Status struct {
	Machine   string       `json:"machine"`
	Current   State        `json:"current"`
	Available []Transition `json:"available"`
}

// Status returns a snapshot of the machine.
func (m *Machine) Status() Status {
	return Status{
		Machine:   m.name,
		Current:   m.current,
		Available: m.Available(),
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (m *Machine) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Status())
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	v, err := ParseState(g.String(text))
	if err != nil {
		return err
	}

	*s = v

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Transition) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Transition) UnmarshalText(text []byte) error {
	v, err := ParseTransition(g.String(text))
	if err != nil {
		return err
	}

	*t = v

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) { return []byte(a.String()), nil }
