package sim

import "fmt"

// HealthState indexes a state within a StateSpace.
type HealthState int

// NoState marks an unset state reference (e.g. a model without a progressed state).
const NoState HealthState = -1

// StateSpace is the ordered enumeration of health states a model uses.
// Absorbing states have no outgoing transitions; entering one records death.
type StateSpace struct {
	Names      []string
	Absorbing  []bool
	Progressed HealthState // first entry into this state records time-to-progression
}

// NewStateSpace builds a StateSpace. absorbing lists the indices of death states.
func NewStateSpace(names []string, progressed HealthState, absorbing ...HealthState) (StateSpace, error) {
	if len(names) == 0 {
		return StateSpace{}, fmt.Errorf("%w: state space has no states", ErrInvalidParameters)
	}
	ss := StateSpace{
		Names:      append([]string(nil), names...),
		Absorbing:  make([]bool, len(names)),
		Progressed: progressed,
	}
	for _, a := range absorbing {
		if !ss.Valid(a) {
			return StateSpace{}, fmt.Errorf("%w: absorbing state %d out of range", ErrInvalidParameters, a)
		}
		ss.Absorbing[a] = true
	}
	if progressed != NoState && !ss.Valid(progressed) {
		return StateSpace{}, fmt.Errorf("%w: progressed state %d out of range", ErrInvalidParameters, progressed)
	}
	return ss, nil
}

// Len returns the number of states.
func (ss StateSpace) Len() int { return len(ss.Names) }

// Valid reports whether s indexes a state of this space.
func (ss StateSpace) Valid(s HealthState) bool {
	return s >= 0 && int(s) < len(ss.Names)
}

// IsAbsorbing reports whether s is a death state.
func (ss StateSpace) IsAbsorbing(s HealthState) bool {
	return ss.Valid(s) && ss.Absorbing[s]
}

// Name returns the display name of s.
func (ss StateSpace) Name(s HealthState) string {
	if !ss.Valid(s) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return ss.Names[s]
}
