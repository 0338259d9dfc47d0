package sim

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/cohort-sim/cohort-sim/sim/trace"
)

// DefaultAlpha is the significance level used for confidence intervals.
const DefaultAlpha = 0.05

// CohortConfig groups cohort run settings that do not affect trajectories.
type CohortConfig struct {
	Alpha      float64          // significance level for intervals, in (0, 1)
	Workers    int              // concurrent patient simulations; <= 0 means GOMAXPROCS
	TraceLevel trace.TraceLevel // "none" (default) or "transitions"
}

// DefaultCohortConfig returns the default run settings.
func DefaultCohortConfig() CohortConfig {
	return CohortConfig{Alpha: DefaultAlpha, TraceLevel: trace.TraceLevelNone}
}

// Cohort simulates PopSize independent patients under one parameter set.
// Patient ids are derived from (ID, index), so re-running a cohort with the same
// id, size and parameters reproduces every trajectory.
type Cohort struct {
	ID       int64
	PopSize  int
	Params   *Parameters
	Config   CohortConfig
	Outcomes *CohortOutcomes    // nil until Simulate succeeds
	Trace    *trace.CohortTrace // nil unless TraceLevel is "transitions"
}

// NewCohort creates a cohort with the default run settings.
func NewCohort(id int64, popSize int, params *Parameters) (*Cohort, error) {
	return NewCohortWithConfig(id, popSize, params, DefaultCohortConfig())
}

// NewCohortWithConfig creates a cohort, validating its configuration.
func NewCohortWithConfig(id int64, popSize int, params *Parameters, cfg CohortConfig) (*Cohort, error) {
	if popSize < 0 {
		return nil, fmt.Errorf("%w: population size %d must be non-negative", ErrInvalidParameters, popSize)
	}
	if params == nil {
		return nil, fmt.Errorf("%w: nil parameters", ErrInvalidParameters)
	}
	if !(cfg.Alpha > 0 && cfg.Alpha < 1) {
		return nil, fmt.Errorf("%w: alpha %v must be in (0, 1)", ErrInvalidParameters, cfg.Alpha)
	}
	if !trace.IsValidTraceLevel(string(cfg.TraceLevel)) {
		return nil, fmt.Errorf("%w: unknown trace level %q", ErrInvalidParameters, cfg.TraceLevel)
	}
	return &Cohort{ID: id, PopSize: popSize, Params: params, Config: cfg}, nil
}

// Simulate runs every patient over simLength years and populates Outcomes.
// Patients run on a bounded worker pool; outcomes are merged in patient order
// after all of them finish, so results do not depend on the worker count.
// The first invariant violation cancels the patients not yet started and
// leaves Outcomes nil.
func (c *Cohort) Simulate(simLength float64) error {
	if simLength < 0 || math.IsNaN(simLength) || math.IsInf(simLength, 0) {
		return fmt.Errorf("%w: simulation length %v must be finite and non-negative", ErrInvalidParameters, simLength)
	}
	c.Outcomes, c.Trace = nil, nil

	workers := c.Config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	tracing := c.Config.TraceLevel == trace.TraceLevelTransitions
	logrus.Debugf("cohort %d: simulating %d patients over %v years with %d workers", c.ID, c.PopSize, simLength, workers)
	start := time.Now()

	results := make([]PatientOutcome, c.PopSize)
	var trajectories []*trace.PatientTrace
	if tracing {
		trajectories = make([]*trace.PatientTrace, c.PopSize)
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for i := 0; i < c.PopSize && ctx.Err() == nil; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			patient := NewPatient(NewPatientID(c.ID, c.PopSize, i), c.Params)
			if tracing {
				patient.RecordTrajectory()
			}
			if err := patient.Simulate(simLength); err != nil {
				return fmt.Errorf("cohort %d: %w", c.ID, err)
			}
			results[i] = patient.Outcome()
			if tracing {
				trajectories[i] = patient.Trajectory()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	agg := newOutcomeAggregator(c.PopSize)
	for _, r := range results {
		agg.Extract(r)
	}
	c.Outcomes = agg.Finalize(c.Config.Alpha)

	if tracing {
		ct := trace.NewCohortTrace(trace.TraceConfig{Level: c.Config.TraceLevel})
		for _, pt := range trajectories {
			ct.RecordPatient(*pt)
		}
		c.Trace = ct
	}

	logrus.Debugf("cohort %d: done in %v, %d deaths, %d progressions", c.ID, time.Since(start),
		len(c.Outcomes.SurvivalTimes), len(c.Outcomes.TimesToProgression))
	return nil
}
