package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Two-state model: Alive → Dead at a constant rate.
const (
	alive HealthState = 0
	dead  HealthState = 1
)

func twoStateParams(t *testing.T, rate, cost, utility, discount float64) *Parameters {
	t.Helper()
	states, err := NewStateSpace([]string{"Alive", "Dead"}, NoState, dead)
	require.NoError(t, err)
	rates, err := NewRateMatrix([][]float64{{0, rate}, {0, 0}})
	require.NoError(t, err)
	p, err := NewParameters(states, alive, rates, []float64{cost, 0}, []float64{utility, 0}, 0, discount)
	require.NoError(t, err)
	return p
}

// Progression model: Stage1 → Progressed → DeathFromDisease, with other-cause
// death from both live states.
const (
	stage1       HealthState = 0
	progressed   HealthState = 1
	diseaseDeath HealthState = 2
	otherDeath   HealthState = 3
)

func progressionParams(t *testing.T) *Parameters {
	t.Helper()
	states, err := NewStateSpace([]string{"Stage1", "Progressed", "DeathFromDisease", "DeathOtherCause"},
		progressed, diseaseDeath, otherDeath)
	require.NoError(t, err)
	rates, err := NewRateMatrix([][]float64{
		{0, 0.3, 0.05, 0.02},
		{0, 0, 0.5, 0.02},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	require.NoError(t, err)
	p, err := NewParameters(states, stage1, rates,
		[]float64{1000, 5000, 0, 0}, []float64{0.9, 0.6, 0, 0}, 200, 0.03)
	require.NoError(t, err)
	return p
}
