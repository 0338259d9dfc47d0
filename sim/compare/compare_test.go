package compare

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cohort-sim/cohort-sim/sim"
	"github.com/cohort-sim/cohort-sim/sim/internal/testutil"
)

func outcomes(costs, utilities, survival []float64) *sim.CohortOutcomes {
	return &sim.CohortOutcomes{
		PopSize:       len(costs),
		Costs:         costs,
		Utilities:     utilities,
		SurvivalTimes: survival,
	}
}

func TestNewDifference_WelchInterval(t *testing.T) {
	// GIVEN samples with means 2 and 5
	base := []float64{1, 2, 3}
	alt := []float64{4, 5, 6}

	// WHEN differenced
	d := NewDifference("x", base, alt, 0.05)

	// THEN the mean difference is 3 with a symmetric interval around it
	assert.InDelta(t, 3.0, d.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(1.0/3+1.0/3), d.StErr, 1e-12)
	// equal variances and sizes: Welch df = 4
	half := sim.TQuantile(0.975, 4) * d.StErr
	testutil.AssertFloat64Equal(t, "lower", 3-half, d.CI[0], 1e-9)
	testutil.AssertFloat64Equal(t, "upper", 3+half, d.CI[1], 1e-9)
}

func TestNewDifference_EmptySample_NaN(t *testing.T) {
	d := NewDifference("x", nil, []float64{1}, 0.05)
	assert.True(t, math.IsNaN(d.Mean))
}

func TestNewDifference_ConstantSamples_DegenerateInterval(t *testing.T) {
	d := NewDifference("x", []float64{2, 2}, []float64{3, 3}, 0.05)
	assert.Equal(t, 1.0, d.Mean)
	assert.Equal(t, [2]float64{1, 1}, d.CI)
}

func TestNew_ICERAndNetMonetaryBenefit(t *testing.T) {
	base := outcomes([]float64{100, 100}, []float64{1, 1}, []float64{5, 5})
	alt := outcomes([]float64{300, 300}, []float64{2, 2}, []float64{6, 6})

	c, err := New(base, alt, 0.05)
	require.NoError(t, err)

	assert.Equal(t, 200.0, c.ICER)
	assert.Equal(t, 1000*1.0-200, c.NetMonetaryBenefit(1000))
	assert.Equal(t, TradeOff, c.Dominance())
	assert.Equal(t, 1.0, c.SurvivalTime.Mean)
}

func TestNew_EqualUtility_ICERIsNaN(t *testing.T) {
	base := outcomes([]float64{1}, []float64{1}, nil)
	alt := outcomes([]float64{2}, []float64{1}, nil)
	c, err := New(base, alt, 0.05)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(c.ICER))
	assert.Equal(t, Dominated, c.Dominance())
}

func TestDominance(t *testing.T) {
	tests := []struct {
		name     string
		dc, du   float64
		expected Dominance
	}{
		{"cheaper and better", -1, 1, Dominant},
		{"costlier and worse", 1, -1, Dominated},
		{"pay for benefit", 1, 1, TradeOff},
		{"save by losing benefit", -1, -1, TradeOff},
		{"no change", 0, 0, Equivalent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Outcomes{Cost: Difference{Mean: tt.dc}, Utility: Difference{Mean: tt.du}}
			assert.Equal(t, tt.expected, o.Dominance())
		})
	}
}

func TestNew_RejectsMissingCohortsAndBadAlpha(t *testing.T) {
	o := outcomes([]float64{1}, []float64{1}, nil)
	_, err := New(nil, o, 0.05)
	assert.Error(t, err)
	_, err = New(o, o, 0)
	assert.Error(t, err)
}
