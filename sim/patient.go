package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/cohort-sim/cohort-sim/sim/trace"
)

// ProcessStatus is the state of a patient simulation process.
type ProcessStatus int

const (
	Running ProcessStatus = iota
	Stopped
)

func (s ProcessStatus) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// StepResult is the outcome of applying one transition rule.
type StepResult struct {
	Monitor  OutcomeMonitor
	Clock    float64
	Status   ProcessStatus
	Applied  bool // false when the monitor was left untouched (absorbed)
	Censored bool // true when the step was truncated at the horizon
}

// Step applies one transition rule of the patient process to a sampled transition:
//   - absorbed: stop without touching the monitor
//   - clock+Dt beyond the horizon: clamp the clock to the horizon, record the
//     patient as staying in its current state, stop (right-censoring)
//   - otherwise: advance the clock and record the move to tr.Next
func Step(p *Parameters, m OutcomeMonitor, clock, horizon float64, tr Transition) (StepResult, error) {
	if tr.Absorbed {
		return StepResult{Monitor: m, Clock: clock, Status: Stopped}, nil
	}
	if tr.Dt < 0 || math.IsNaN(tr.Dt) {
		return StepResult{}, fmt.Errorf("%w: waiting time %v", ErrInvariant, tr.Dt)
	}

	if clock+tr.Dt > horizon {
		next, err := m.Update(p, horizon, m.Current)
		if err != nil {
			return StepResult{}, err
		}
		return StepResult{Monitor: next, Clock: horizon, Status: Stopped, Applied: true, Censored: true}, nil
	}

	clock += tr.Dt
	next, err := m.Update(p, clock, tr.Next)
	if err != nil {
		return StepResult{}, err
	}
	return StepResult{Monitor: next, Clock: clock, Status: Running, Applied: true}, nil
}

// Patient is one simulated individual. It owns its outcome monitor and its
// random stream; the parameter set is shared read-only.
type Patient struct {
	ID      PatientID
	Monitor OutcomeMonitor

	params     *Parameters
	trajectory *trace.PatientTrace // nil unless trajectory tracing is on
}

// NewPatient creates a patient in the parameter set's initial state.
func NewPatient(id PatientID, params *Parameters) *Patient {
	return &Patient{
		ID:      id,
		Monitor: NewOutcomeMonitor(params),
		params:  params,
	}
}

// RecordTrajectory turns on state-change recording for this patient.
func (pt *Patient) RecordTrajectory() {
	pt.trajectory = &trace.PatientTrace{PatientID: int64(pt.ID)}
}

// Trajectory returns the recorded state changes, or nil if recording is off.
func (pt *Patient) Trajectory() *trace.PatientTrace {
	return pt.trajectory
}

// Simulate runs the patient until it is absorbed or the clock reaches simLength.
// It terminates for any finite simLength >= 0: every step either consumes
// simulated time or stops the process.
func (pt *Patient) Simulate(simLength float64) error {
	if simLength < 0 || math.IsNaN(simLength) || math.IsInf(simLength, 0) {
		return fmt.Errorf("%w: simulation length %v must be finite and non-negative", ErrInvalidParameters, simLength)
	}
	rng := NewPatientStream(pt.ID)
	sampler := NewGillespie(pt.params.Rates)

	clock := 0.0
	status := Running
	for status == Running {
		tr, err := sampler.Next(pt.Monitor.Current, rng)
		if err != nil {
			return err
		}
		from := pt.Monitor.Current
		res, err := Step(pt.params, pt.Monitor, clock, simLength, tr)
		if err != nil {
			return fmt.Errorf("patient %d at t=%v: %w", pt.ID, clock, err)
		}
		if res.Applied && pt.trajectory != nil {
			pt.trajectory.Transitions = append(pt.trajectory.Transitions,
				transitionRecord(pt.params, pt.ID, res.Clock, from, res.Monitor.Current, res.Censored))
		}
		pt.Monitor, clock, status = res.Monitor, res.Clock, res.Status
	}
	logrus.Tracef("patient %d stopped at t=%.4f in %s", pt.ID, clock, pt.params.States.Name(pt.Monitor.Current))
	return nil
}

// PatientOutcome is the terminal outcome extracted from a simulated patient.
type PatientOutcome struct {
	ID                PatientID
	SurvivalTime      *float64
	TimeToProgression *float64
	DiscountedCost    float64
	DiscountedUtility float64
}

// Outcome extracts the patient's terminal outcome.
func (pt *Patient) Outcome() PatientOutcome {
	return PatientOutcome{
		ID:                pt.ID,
		SurvivalTime:      pt.Monitor.SurvivalTime,
		TimeToProgression: pt.Monitor.TimeToProgression,
		DiscountedCost:    pt.Monitor.Costs.DiscountedCost,
		DiscountedUtility: pt.Monitor.Costs.DiscountedUtils,
	}
}
