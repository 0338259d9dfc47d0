package sim

import (
	"sort"
)

// PathPoint is one step of the living-population time series.
type PathPoint struct {
	Time  float64 `json:"time"`
	Count int     `json:"count"`
}

// SurvivalPath is the number of living patients over time: a step function that
// starts at the initial population and drops by one at each recorded death.
type SurvivalPath struct {
	Points []PathPoint
}

// NewSurvivalPath builds the path from the recorded survival times.
func NewSurvivalPath(initialSize int, survivalTimes []float64) SurvivalPath {
	times := append([]float64(nil), survivalTimes...)
	sort.Float64s(times)

	points := make([]PathPoint, 0, len(times)+1)
	points = append(points, PathPoint{Time: 0, Count: initialSize})
	alive := initialSize
	for _, t := range times {
		alive--
		points = append(points, PathPoint{Time: t, Count: alive})
	}
	return SurvivalPath{Points: points}
}

// CountAt returns the number of living patients at time t.
func (sp SurvivalPath) CountAt(t float64) int {
	if len(sp.Points) == 0 {
		return 0
	}
	// first point strictly after t; the one before it is in effect
	idx := sort.Search(len(sp.Points), func(i int) bool { return sp.Points[i].Time > t })
	if idx == 0 {
		return sp.Points[0].Count
	}
	return sp.Points[idx-1].Count
}

// SurvivalProbability returns the fraction of the initial population alive at t.
func (sp SurvivalPath) SurvivalProbability(t float64) float64 {
	if len(sp.Points) == 0 || sp.Points[0].Count == 0 {
		return 0
	}
	return float64(sp.CountAt(t)) / float64(sp.Points[0].Count)
}

// Deaths returns the total number of decrements on the path.
func (sp SurvivalPath) Deaths() int {
	if len(sp.Points) == 0 {
		return 0
	}
	return sp.Points[0].Count - sp.Points[len(sp.Points)-1].Count
}

// CohortOutcomes holds the per-patient outcomes of a simulated cohort in patient
// order, their summary statistics and the survival path. It is built once by
// the cohort and never modified afterwards.
//
// SurvivalTimes and TimesToProgression only contain patients that reached the
// event before the horizon; censored patients are left out.
type CohortOutcomes struct {
	PopSize            int
	SurvivalTimes      []float64
	TimesToProgression []float64
	Costs              []float64
	Utilities          []float64

	StatSurvivalTime      SummaryStat
	StatTimeToProgression SummaryStat
	StatCost              SummaryStat
	StatUtility           SummaryStat

	NLiving SurvivalPath
}

// outcomeAggregator collects patient outcomes and finalises them into CohortOutcomes.
type outcomeAggregator struct {
	out CohortOutcomes
}

func newOutcomeAggregator(popSize int) *outcomeAggregator {
	return &outcomeAggregator{out: CohortOutcomes{
		PopSize:            popSize,
		SurvivalTimes:      make([]float64, 0, popSize),
		TimesToProgression: make([]float64, 0, popSize),
		Costs:              make([]float64, 0, popSize),
		Utilities:          make([]float64, 0, popSize),
	}}
}

// Extract appends one patient's outcome.
func (a *outcomeAggregator) Extract(o PatientOutcome) {
	if o.SurvivalTime != nil {
		a.out.SurvivalTimes = append(a.out.SurvivalTimes, *o.SurvivalTime)
	}
	if o.TimeToProgression != nil {
		a.out.TimesToProgression = append(a.out.TimesToProgression, *o.TimeToProgression)
	}
	a.out.Costs = append(a.out.Costs, o.DiscountedCost)
	a.out.Utilities = append(a.out.Utilities, o.DiscountedUtility)
}

// Finalize computes summary statistics and the survival path.
func (a *outcomeAggregator) Finalize(alpha float64) *CohortOutcomes {
	out := a.out
	out.StatSurvivalTime = NewSummaryStat("Survival time", out.SurvivalTimes, alpha)
	out.StatTimeToProgression = NewSummaryStat("Time to progression", out.TimesToProgression, alpha)
	out.StatCost = NewSummaryStat("Discounted cost", out.Costs, alpha)
	out.StatUtility = NewSummaryStat("Discounted utility", out.Utilities, alpha)
	out.NLiving = NewSurvivalPath(out.PopSize, out.SurvivalTimes)
	return &out
}
