package sim

import (
	"fmt"

	"github.com/cohort-sim/cohort-sim/sim/trace"
)

// OutcomeMonitor is the outcome record of one patient. It is a value type:
// every accepted event goes through Update, which returns the next record.
//
// SurvivalTime is set once, when an absorbing state is entered.
// TimeToProgression is set at most once, on the first entry into the
// progressed state. Both stay unset for right-censored patients.
type OutcomeMonitor struct {
	Current           HealthState
	SurvivalTime      *float64
	TimeToProgression *float64
	Costs             CostUtilityAccumulator
}

// NewOutcomeMonitor starts a monitor in the parameter set's initial state.
func NewOutcomeMonitor(p *Parameters) OutcomeMonitor {
	return OutcomeMonitor{Current: p.Initial}
}

// Absorbed reports whether the patient has reached a death state.
func (m OutcomeMonitor) Absorbed(p *Parameters) bool {
	return p.States.IsAbsorbing(m.Current)
}

// Update records a move to next at time t. Costs accrue for the state being
// vacated, since that state was current during the interval that just ended.
// A move out of an absorbing state is an ErrInvariant.
func (m OutcomeMonitor) Update(p *Parameters, t float64, next HealthState) (OutcomeMonitor, error) {
	if m.Absorbed(p) {
		return m, fmt.Errorf("%w: update to %s at t=%v after absorption in %s",
			ErrInvariant, p.States.Name(next), t, p.States.Name(m.Current))
	}
	if !p.States.Valid(next) {
		return m, fmt.Errorf("%w: unknown destination state %d", ErrInvariant, next)
	}

	if p.States.IsAbsorbing(next) {
		st := t
		m.SurvivalTime = &st
	}
	if p.States.Progressed != NoState && m.Current != p.States.Progressed &&
		next == p.States.Progressed && m.TimeToProgression == nil {
		tp := t
		m.TimeToProgression = &tp
	}

	costs, err := m.Costs.Update(p, t, m.Current)
	if err != nil {
		return m, err
	}
	m.Costs = costs
	m.Current = next
	return m, nil
}

// transitionRecord describes an accepted update for trajectory tracing.
func transitionRecord(p *Parameters, id PatientID, t float64, from, to HealthState, censored bool) trace.TransitionRecord {
	return trace.TransitionRecord{
		PatientID: int64(id),
		Time:      t,
		From:      p.States.Name(from),
		To:        p.States.Name(to),
		Censored:  censored,
	}
}
