package sim

import (
	"fmt"
	"math"
)

// Parameters is the immutable bundle every patient of a cohort is simulated with.
// Create it once with NewParameters and share the pointer; patients never copy
// or modify it.
type Parameters struct {
	States               StateSpace
	Initial              HealthState
	Rates                *RateMatrix
	AnnualStateCosts     []float64 // indexed by HealthState
	AnnualStateUtilities []float64 // indexed by HealthState
	AnnualTreatmentCost  float64   // added to every state's cost while alive
	DiscountRate         float64   // annual, continuously compounded
}

// NewParameters validates and assembles a parameter set.
func NewParameters(states StateSpace, initial HealthState, rates *RateMatrix,
	stateCosts, stateUtilities []float64, treatmentCost, discountRate float64) (*Parameters, error) {
	n := states.Len()
	if rates == nil {
		return nil, fmt.Errorf("%w: nil rate matrix", ErrInvalidParameters)
	}
	if rates.Len() != n {
		return nil, fmt.Errorf("%w: rate matrix covers %d states, state space has %d", ErrInvalidParameters, rates.Len(), n)
	}
	if !states.Valid(initial) {
		return nil, fmt.Errorf("%w: initial state %d out of range", ErrInvalidParameters, initial)
	}
	for s := HealthState(0); int(s) < n; s++ {
		if states.IsAbsorbing(s) && rates.ExitRate(s) != 0 {
			return nil, fmt.Errorf("%w: absorbing state %s has outgoing rates", ErrInvalidParameters, states.Name(s))
		}
	}
	if err := checkStateVector("annual state costs", stateCosts, n); err != nil {
		return nil, err
	}
	if err := checkStateVector("annual state utilities", stateUtilities, n); err != nil {
		return nil, err
	}
	if !nonNegativeFinite(treatmentCost) {
		return nil, fmt.Errorf("%w: treatment cost %v must be a non-negative finite number", ErrInvalidParameters, treatmentCost)
	}
	if !nonNegativeFinite(discountRate) {
		return nil, fmt.Errorf("%w: discount rate %v must be a non-negative finite number", ErrInvalidParameters, discountRate)
	}

	return &Parameters{
		States:               states,
		Initial:              initial,
		Rates:                rates,
		AnnualStateCosts:     append([]float64(nil), stateCosts...),
		AnnualStateUtilities: append([]float64(nil), stateUtilities...),
		AnnualTreatmentCost:  treatmentCost,
		DiscountRate:         discountRate,
	}, nil
}

func checkStateVector(name string, v []float64, n int) error {
	if len(v) != n {
		return fmt.Errorf("%w: %s has %d entries, want %d", ErrInvalidParameters, name, len(v), n)
	}
	for i, x := range v {
		if !nonNegativeFinite(x) {
			return fmt.Errorf("%w: %s[%d]=%v must be a non-negative finite number", ErrInvalidParameters, name, i, x)
		}
	}
	return nil
}

func nonNegativeFinite(x float64) bool {
	return x >= 0 && !math.IsNaN(x) && !math.IsInf(x, 0)
}
