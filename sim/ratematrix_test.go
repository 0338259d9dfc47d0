package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateMatrix_RejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		rows [][]float64
	}{
		{"empty", nil},
		{"non-square", [][]float64{{0, 1, 2}, {0, 0, 0}}},
		{"ragged", [][]float64{{0, 1}, {0}}},
		{"negative rate", [][]float64{{0, -1}, {0, 0}}},
		{"NaN rate", [][]float64{{0, math.NaN()}, {0, 0}}},
		{"infinite rate", [][]float64{{0, math.Inf(1)}, {0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRateMatrix(tt.rows)
			assert.ErrorIs(t, err, ErrInvalidMatrix)
		})
	}
}

func TestNewRateMatrix_ZeroesDiagonalAndCopies(t *testing.T) {
	// GIVEN a matrix with a non-zero diagonal
	rows := [][]float64{{5, 1}, {0, 7}}

	// WHEN constructed and the input is mutated afterwards
	m, err := NewRateMatrix(rows)
	require.NoError(t, err)
	rows[0][1] = 100

	// THEN the diagonal is zero and the matrix is unaffected by the mutation
	assert.Equal(t, [][]float64{{0, 1}, {0, 0}}, m.Rows())
	assert.Equal(t, 1.0, m.ExitRate(0))
	assert.Equal(t, 0.0, m.ExitRate(1))
}

func TestProbabilitiesFromCounts_NormalisesRows(t *testing.T) {
	probs, err := ProbabilitiesFromCounts([][]float64{{1, 3}, {2, 2}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.25, 0.75}, {0.5, 0.5}}, probs)
}

func TestProbabilitiesFromCounts_RejectsNegativeAndEmptyRows(t *testing.T) {
	_, err := ProbabilitiesFromCounts([][]float64{{1, -1}})
	assert.ErrorIs(t, err, ErrInvalidMatrix)

	_, err = ProbabilitiesFromCounts([][]float64{{0, 0}})
	assert.ErrorIs(t, err, ErrInvalidMatrix)
}

func TestDiscreteToContinuous_PreservesStayingProbability(t *testing.T) {
	// GIVEN a row that stays with probability 0.6 and splits the rest 3:1
	probs := [][]float64{{0.6, 0.3, 0.1}}

	// WHEN converted to rates over one year
	rates, err := DiscreteToContinuous(probs, 1)
	require.NoError(t, err)

	// THEN the total exit rate reproduces the staying probability
	exit := rates[0][1] + rates[0][2]
	assert.InDelta(t, 0.6, math.Exp(-exit), 1e-12)
	// AND destinations keep their relative weights
	assert.InDelta(t, 3.0, rates[0][1]/rates[0][2], 1e-12)
	assert.Equal(t, 0.0, rates[0][0])
}

func TestDiscreteToContinuous_NeverLeavingRowHasZeroRates(t *testing.T) {
	rates, err := DiscreteToContinuous([][]float64{{1, 0}}, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, rates[0])
}

func TestDiscreteToContinuous_AlwaysLeavingRowIsRejected(t *testing.T) {
	// GIVEN a row whose staying probability is zero
	_, err := DiscreteToContinuous([][]float64{{0, 1}}, 1)

	// THEN no finite exit rate reproduces it
	assert.ErrorIs(t, err, ErrInvalidMatrix)
}

func TestBackgroundMortalityRate(t *testing.T) {
	r, err := BackgroundMortalityRate(0.1)
	require.NoError(t, err)
	assert.InDelta(t, -math.Log(0.9), r, 1e-15)

	_, err = BackgroundMortalityRate(1)
	assert.ErrorIs(t, err, ErrInvalidMatrix)
}

func TestRateMatrixFromCounts_Shape(t *testing.T) {
	// GIVEN 3 transient states with a disease-death column
	counts := [][]float64{
		{1251, 350, 116, 17},
		{0, 731, 512, 15},
		{0, 0, 1312, 437},
	}

	// WHEN the full rate matrix is derived
	m, err := RateMatrixFromCounts(counts, 0.01, 1)
	require.NoError(t, err)

	// THEN it covers the transient states plus both deaths
	require.Equal(t, 5, m.Len())
	for s := HealthState(0); s < 3; s++ {
		assert.Equal(t, 0.01, m.Rate(s, 4), "background mortality from state %d", s)
	}
	assert.Equal(t, 0.0, m.ExitRate(3), "disease death must be absorbing")
	assert.Equal(t, 0.0, m.ExitRate(4), "other-cause death must be absorbing")
	assert.Equal(t, 0.0, m.Rate(1, 0), "no regression observed")
}

func TestRateMatrixFromCounts_RelativeRiskSparesBackgroundMortality(t *testing.T) {
	counts := [][]float64{{80, 15, 5}, {0, 90, 10}}
	base, err := RateMatrixFromCounts(counts, 0.02, 1)
	require.NoError(t, err)
	treated, err := RateMatrixFromCounts(counts, 0.02, 0.5)
	require.NoError(t, err)

	for s := HealthState(0); s < 2; s++ {
		for j := s + 1; j <= 2; j++ {
			assert.InDelta(t, 0.5*base.Rate(s, j), treated.Rate(s, j), 1e-15, "rate %d→%d", s, j)
		}
		assert.Equal(t, base.Rate(s, 3), treated.Rate(s, 3), "mortality from %d must not be scaled", s)
	}
}

func TestRateMatrixFromCounts_RejectsMalformedCounts(t *testing.T) {
	tests := []struct {
		name   string
		counts [][]float64
		rr     float64
	}{
		{"empty", nil, 1},
		{"square instead of n×(n+1)", [][]float64{{1, 1}, {0, 1}}, 1},
		{"negative count", [][]float64{{1, -2}}, 1},
		{"negative relative risk", [][]float64{{1, 2}}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RateMatrixFromCounts(tt.counts, 0.01, tt.rr)
			assert.ErrorIs(t, err, ErrInvalidMatrix)
		})
	}
}
