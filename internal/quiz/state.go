package quiz

import "fmt"

// State is the lifecycle phase of a Session.
type State int

const (
	StateIdle           State = iota // Created, not started
	StateLoading                     // Batch fetch in flight
	StateAwaitingAnswer              // Question shown, zero or several choices marked
	StateAnswerSelected              // Exactly one choice marked
	StateAdvancing                   // Answer being evaluated
	StateFailed                      // First batch could not be loaded; terminal
	StateClosed                      // Disposed by the host; terminal
)

var stateNames = [...]string{
	StateIdle:           "idle",
	StateLoading:        "loading",
	StateAwaitingAnswer: "awaiting-answer",
	StateAnswerSelected: "answer-selected",
	StateAdvancing:      "advancing",
	StateFailed:         "failed",
	StateClosed:         "closed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// MarshalText renders the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name.
func (s *State) UnmarshalText(b []byte) error {
	for i, name := range stateNames {
		if name == string(b) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown quiz state %q", b)
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateFailed || s == StateClosed
}
