// Package hiv holds the HIV mono- versus combination-therapy model: its health
// states, observed transition counts, costs, utilities and the parameter sets
// the simulation engine consumes.
package hiv

import (
	"fmt"

	"github.com/cohort-sim/cohort-sim/sim"
)

// Health states, in the order used by every matrix and vector below.
const (
	CD4200to500 sim.HealthState = iota
	CD4200
	AIDS
	HIVDeath
	NaturalDeath
)

// StateNames are the display names of the HIV health states.
var StateNames = []string{"CD4_200to500", "CD4_200", "AIDS", "HIV_DEATH", "NATURAL_DEATH"}

// Simulation defaults.
const (
	PopSize      = 2000   // cohort population size
	SimLength    = 1000.0 // years
	Alpha        = 0.05   // significance level for intervals
	DiscountRate = 0.03   // annual
)

// AnnualProbBackgroundMort is the annual probability of other-cause death
// (8.15 per 1,000 population).
const AnnualProbBackgroundMort = 8.15 / 1000

// TransCounts are observed transitions between HIV states; the last column is HIV death.
var TransCounts = [][]float64{
	{1251, 350, 116, 17}, // CD4_200to500
	{0, 731, 512, 15},    // CD4_200
	{0, 0, 1312, 437},    // AIDS
}

// AnnualStateCosts per health state; death states cost nothing.
var AnnualStateCosts = []float64{2756.0, 3025.0, 9007.0, 0, 0}

// AnnualStateUtilities per health state.
var AnnualStateUtilities = []float64{0.9, 0.85, 0.75, 0, 0}

// Annual drug costs.
const (
	ZidovudineCost = 2278.0
	LamivudineCost = 2086.0
)

// TreatmentRR is the relative risk of progression under combination therapy.
const TreatmentRR = 0.509

// Therapy selects the treatment policy.
type Therapy int

const (
	Mono Therapy = iota
	Combo
)

func (t Therapy) String() string {
	switch t {
	case Mono:
		return "mono"
	case Combo:
		return "combo"
	default:
		return fmt.Sprintf("therapy(%d)", int(t))
	}
}

// ParseTherapy converts "mono" or "combo" into a Therapy.
func ParseTherapy(s string) (Therapy, error) {
	switch s {
	case "mono":
		return Mono, nil
	case "combo":
		return Combo, nil
	}
	return 0, fmt.Errorf("unknown therapy %q (want mono or combo)", s)
}

// Inputs are the raw model inputs a parameter set is derived from.
// Defaults returns the published values; a model file may override them.
type Inputs struct {
	TransCounts              [][]float64
	AnnualProbBackgroundMort float64
	AnnualStateCosts         []float64
	AnnualStateUtilities     []float64
	ZidovudineCost           float64
	LamivudineCost           float64
	TreatmentRR              float64
	DiscountRate             float64
}

// Defaults returns the built-in model inputs.
func Defaults() Inputs {
	counts := make([][]float64, len(TransCounts))
	for i, row := range TransCounts {
		counts[i] = append([]float64(nil), row...)
	}
	return Inputs{
		TransCounts:              counts,
		AnnualProbBackgroundMort: AnnualProbBackgroundMort,
		AnnualStateCosts:         append([]float64(nil), AnnualStateCosts...),
		AnnualStateUtilities:     append([]float64(nil), AnnualStateUtilities...),
		ZidovudineCost:           ZidovudineCost,
		LamivudineCost:           LamivudineCost,
		TreatmentRR:              TreatmentRR,
		DiscountRate:             DiscountRate,
	}
}

// States returns the HIV state space: AIDS is the progressed state, both deaths absorb.
func States() sim.StateSpace {
	ss, err := sim.NewStateSpace(StateNames, AIDS, HIVDeath, NaturalDeath)
	if err != nil {
		panic(err) // static data
	}
	return ss
}

// NewParameters builds the parameter set of a therapy from the default inputs.
func NewParameters(therapy Therapy) (*sim.Parameters, error) {
	return Defaults().Parameters(therapy)
}

// Parameters builds the parameter set of a therapy from these inputs.
func (in Inputs) Parameters(therapy Therapy) (*sim.Parameters, error) {
	var treatmentCost, rr float64
	switch therapy {
	case Mono:
		treatmentCost, rr = in.ZidovudineCost, 1
	case Combo:
		treatmentCost, rr = in.ZidovudineCost+in.LamivudineCost, in.TreatmentRR
	default:
		return nil, fmt.Errorf("%w: unknown therapy %v", sim.ErrInvalidParameters, therapy)
	}

	mortality, err := sim.BackgroundMortalityRate(in.AnnualProbBackgroundMort)
	if err != nil {
		return nil, err
	}
	rates, err := sim.RateMatrixFromCounts(in.TransCounts, mortality, rr)
	if err != nil {
		return nil, fmt.Errorf("%s therapy: %w", therapy, err)
	}
	return sim.NewParameters(States(), CD4200to500, rates,
		in.AnnualStateCosts, in.AnnualStateUtilities, treatmentCost, in.DiscountRate)
}
