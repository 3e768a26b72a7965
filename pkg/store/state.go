package store

import "maps"

// State is a snapshot of a form: committed values and per-field errors keyed
// by field name. A field without an entry in Errors, or with an empty
// message, is valid.
type State struct {
	Values map[string]string `json:"values"`
	Errors map[string]string `json:"errors,omitempty"`
}

// NewState builds a state with every name mapped to the empty string and no
// errors.
func NewState(names ...string) State {
	values := make(map[string]string, len(names))
	for _, name := range names {
		values[name] = ""
	}
	return State{Values: values, Errors: map[string]string{}}
}

// Clone returns a deep copy so callers can never mutate store internals.
func (s State) Clone() State {
	return State{
		Values: cloneMap(s.Values),
		Errors: cloneMap(s.Errors),
	}
}

// Value returns the committed value for name.
func (s State) Value(name string) string {
	return s.Values[name]
}

// Error returns the error message for name, empty when valid.
func (s State) Error(name string) string {
	return s.Errors[name]
}

// HasErrors reports whether any field carries a non-empty error.
func (s State) HasErrors() bool {
	for _, msg := range s.Errors {
		if msg != "" {
			return true
		}
	}
	return false
}

func cloneMap(src map[string]string) map[string]string {
	if len(src) == 0 {
		return make(map[string]string)
	}
	return maps.Clone(src)
}
