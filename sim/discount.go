package sim

import (
	"fmt"
	"math"
)

// PVContinuousPayment returns the present value at time 0 of a constant payment
// stream of `payment` per year received over (t0, t1], continuously discounted
// at annual rate `discount`:
//
//	payment · (e^(−d·t0) − e^(−d·t1)) / d
//
// A zero discount rate degenerates to payment · (t1 − t0).
func PVContinuousPayment(payment, discount, t0, t1 float64) float64 {
	dt := t1 - t0
	if dt == 0 || payment == 0 {
		return 0
	}
	if discount == 0 {
		return payment * dt
	}
	// e^(−d·t0) · (1 − e^(−d·dt)) / d, with Expm1 keeping small d·dt accurate.
	return payment * math.Exp(-discount*t0) * -math.Expm1(-discount*dt) / discount
}

// CostUtilityAccumulator integrates state-dependent cost and utility flows over
// the inter-event intervals of one patient. It is a value type: Update returns
// the next accumulator and leaves the receiver untouched.
type CostUtilityAccumulator struct {
	LastRecorded    float64 // time of the previous update
	DiscountedCost  float64
	DiscountedUtils float64 // discounted quality-adjusted life years
}

// Update adds the discounted cost and utility accrued in state `during` over
// (LastRecorded, t] and moves LastRecorded to t.
func (a CostUtilityAccumulator) Update(p *Parameters, t float64, during HealthState) (CostUtilityAccumulator, error) {
	if t < a.LastRecorded || math.IsNaN(t) {
		return a, fmt.Errorf("%w: accumulator time moved backwards from %v to %v", ErrInvariant, a.LastRecorded, t)
	}
	if !p.States.Valid(during) {
		return a, fmt.Errorf("%w: accumulating unknown state %d", ErrInvariant, during)
	}
	cost := p.AnnualStateCosts[during] + p.AnnualTreatmentCost
	utility := p.AnnualStateUtilities[during]

	a.DiscountedCost += PVContinuousPayment(cost, p.DiscountRate, a.LastRecorded, t)
	a.DiscountedUtils += PVContinuousPayment(utility, p.DiscountRate, a.LastRecorded, t)
	a.LastRecorded = t
	return a, nil
}
