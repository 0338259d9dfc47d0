package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGillespie_AbsorbingState_ReportsAbsorbed(t *testing.T) {
	p := twoStateParams(t, 1, 0, 0, 0)
	g := NewGillespie(p.Rates)

	tr, err := g.Next(dead, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.True(t, tr.Absorbed)
}

func TestGillespie_UnknownState_IsInvariantViolation(t *testing.T) {
	p := twoStateParams(t, 1, 0, 0, 0)
	_, err := NewGillespie(p.Rates).Next(HealthState(7), rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestGillespie_SameStream_SameDraws(t *testing.T) {
	// GIVEN two streams with the same seed
	p := progressionParams(t)
	g := NewGillespie(p.Rates)
	r1, r2 := NewPatientStream(42), NewPatientStream(42)

	// WHEN drawing repeatedly from each
	for i := 0; i < 20; i++ {
		a, err := g.Next(stage1, r1)
		require.NoError(t, err)
		b, err := g.Next(stage1, r2)
		require.NoError(t, err)

		// THEN the draws are identical
		assert.Equal(t, a, b, "draw %d", i)
	}
}

func TestGillespie_WaitingTimeAndDestinationDistribution(t *testing.T) {
	// GIVEN Stage1 with rates 0.3, 0.05, 0.02 (total 0.37)
	p := progressionParams(t)
	g := NewGillespie(p.Rates)
	rng := rand.New(rand.NewSource(7))

	// WHEN sampling many transitions
	const n = 200000
	sumDt := 0.0
	counts := make(map[HealthState]int)
	for i := 0; i < n; i++ {
		tr, err := g.Next(stage1, rng)
		require.NoError(t, err)
		require.False(t, tr.Absorbed)
		require.Greater(t, tr.Dt, 0.0)
		sumDt += tr.Dt
		counts[tr.Next]++
	}

	// THEN the mean waiting time is 1/total and destinations follow the rates
	assert.InDelta(t, 1/0.37, sumDt/n, 0.05)
	assert.InDelta(t, 0.3/0.37, float64(counts[progressed])/n, 0.01)
	assert.InDelta(t, 0.05/0.37, float64(counts[diseaseDeath])/n, 0.01)
	assert.InDelta(t, 0.02/0.37, float64(counts[otherDeath])/n, 0.01)
	assert.Zero(t, counts[stage1], "self-transitions must never be sampled")
}
