package sim

import (
	"fmt"
	"math/rand"
)

// Transition is the outcome of one Gillespie draw. When Absorbed is true the
// current state has no outgoing transitions and Dt/Next are meaningless.
type Transition struct {
	Dt       float64     // years until the next event
	Next     HealthState // destination state
	Absorbed bool
}

// Gillespie samples continuous-time Markov chain transitions with the
// competing-exponentials method: the waiting time is exponential with the row's
// total rate, and the destination is chosen proportionally to individual rates.
type Gillespie struct {
	rates *RateMatrix
}

// NewGillespie creates a sampler over a rate matrix.
func NewGillespie(rates *RateMatrix) *Gillespie {
	return &Gillespie{rates: rates}
}

// Next draws the time to and destination of the next transition out of current.
// Exactly two values are drawn from rng per non-absorbed call: the waiting time,
// then the destination.
func (g *Gillespie) Next(current HealthState, rng *rand.Rand) (Transition, error) {
	if current < 0 || int(current) >= g.rates.Len() {
		return Transition{}, fmt.Errorf("%w: state %d outside rate matrix", ErrInvariant, current)
	}
	row := g.rates.Row(current)
	total := g.rates.ExitRate(current)
	if total <= 0 {
		return Transition{Absorbed: true}, nil
	}

	dt := rng.ExpFloat64() / total
	if dt < 0 {
		return Transition{}, fmt.Errorf("%w: negative waiting time %v from state %d", ErrInvariant, dt, current)
	}

	u := rng.Float64() * total
	next := NoState
	cumulative := 0.0
	for j, r := range row {
		if r <= 0 {
			continue
		}
		cumulative += r
		next = HealthState(j)
		if u < cumulative {
			break
		}
	}
	// next ends on the last positive-rate column if rounding left u >= cumulative.
	return Transition{Dt: dt, Next: next}, nil
}
