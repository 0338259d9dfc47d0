package sim

import (
	"fmt"
	"math"
)

// RateMatrix holds instantaneous transition rates (per year) between health states.
// Row i, column j is the rate of moving from state i to state j; the diagonal is
// always zero. Rows of absorbing states are all zero.
//
// A RateMatrix is immutable after construction and shared read-only by all patients.
type RateMatrix struct {
	rates [][]float64
}

// NewRateMatrix validates and copies an explicit square rate matrix.
// Diagonal entries are ignored and stored as zero.
func NewRateMatrix(rows [][]float64) (*RateMatrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty rate matrix", ErrInvalidMatrix)
	}
	rates := make([][]float64, n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidMatrix, i, len(row), n)
		}
		rates[i] = make([]float64, n)
		for j, r := range row {
			if i == j {
				continue
			}
			if r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
				return nil, fmt.Errorf("%w: rate[%d][%d]=%v must be a non-negative finite number", ErrInvalidMatrix, i, j, r)
			}
			rates[i][j] = r
		}
	}
	return &RateMatrix{rates: rates}, nil
}

// Len returns the number of states the matrix covers.
func (m *RateMatrix) Len() int { return len(m.rates) }

// Rate returns the rate from state i to state j.
func (m *RateMatrix) Rate(i, j HealthState) float64 { return m.rates[i][j] }

// Row returns the outgoing rates of state s. Callers must not modify it.
func (m *RateMatrix) Row(s HealthState) []float64 { return m.rates[s] }

// ExitRate returns the total rate of leaving state s.
func (m *RateMatrix) ExitRate(s HealthState) float64 {
	total := 0.0
	for _, r := range m.rates[s] {
		total += r
	}
	return total
}

// Rows returns a deep copy of the matrix.
func (m *RateMatrix) Rows() [][]float64 {
	out := make([][]float64, len(m.rates))
	for i, row := range m.rates {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// ProbabilitiesFromCounts normalises each row of a transition-count matrix into
// transition probabilities. Counts must be non-negative and every row must have
// the same width as the first row.
func ProbabilitiesFromCounts(counts [][]float64) ([][]float64, error) {
	if len(counts) == 0 {
		return nil, fmt.Errorf("%w: empty count matrix", ErrInvalidMatrix)
	}
	width := len(counts[0])
	probs := make([][]float64, len(counts))
	for i, row := range counts {
		if len(row) != width {
			return nil, fmt.Errorf("%w: count row %d has %d columns, want %d", ErrInvalidMatrix, i, len(row), width)
		}
		total := 0.0
		for j, c := range row {
			if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, fmt.Errorf("%w: count[%d][%d]=%v must be a non-negative finite number", ErrInvalidMatrix, i, j, c)
			}
			total += c
		}
		if total == 0 {
			return nil, fmt.Errorf("%w: count row %d is all zero", ErrInvalidMatrix, i)
		}
		probs[i] = make([]float64, width)
		for j, c := range row {
			probs[i][j] = c / total
		}
	}
	return probs, nil
}

// DiscreteToContinuous converts a per-period transition probability matrix into
// transition rates, preserving each row's staying probability over deltaT:
//
//	rate(i→j) = −ln(p_ii)·p_ij / ((1 − p_ii)·deltaT)
//
// Rows that never leave (p_ii = 1) get zero rates. The result has the same
// shape as probs with a zero diagonal.
func DiscreteToContinuous(probs [][]float64, deltaT float64) ([][]float64, error) {
	if deltaT <= 0 {
		return nil, fmt.Errorf("%w: deltaT must be positive, got %v", ErrInvalidMatrix, deltaT)
	}
	rates := make([][]float64, len(probs))
	for i, row := range probs {
		if i >= len(row) {
			return nil, fmt.Errorf("%w: row %d has no diagonal entry", ErrInvalidMatrix, i)
		}
		rates[i] = make([]float64, len(row))
		stay := row[i]
		if stay >= 1 {
			continue
		}
		if stay <= 0 {
			return nil, fmt.Errorf("%w: row %d has zero staying probability", ErrInvalidMatrix, i)
		}
		exit := -math.Log(stay) / deltaT
		for j, p := range row {
			if j == i {
				continue
			}
			rates[i][j] = exit * p / (1 - stay)
		}
	}
	return rates, nil
}

// BackgroundMortalityRate converts an annual probability of other-cause death into a hazard.
func BackgroundMortalityRate(annualProb float64) (float64, error) {
	if annualProb < 0 || annualProb >= 1 || math.IsNaN(annualProb) {
		return 0, fmt.Errorf("%w: background mortality probability %v must be in [0, 1)", ErrInvalidMatrix, annualProb)
	}
	return -math.Log(1 - annualProb), nil
}

// RateMatrixFromCounts derives the full rate matrix of a disease model from observed
// transition counts.
//
// counts is n × (n+1): n transient states, the last column being death from disease.
// The result is (n+2) × (n+2): the transient states, disease death and other-cause
// death. Background mortality is added from every transient state. relativeRisk
// scales only transitions towards higher-indexed disease states (progression and
// disease death); a value of 1 leaves the rates untouched.
func RateMatrixFromCounts(counts [][]float64, backgroundMortality, relativeRisk float64) (*RateMatrix, error) {
	n := len(counts)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty count matrix", ErrInvalidMatrix)
	}
	for i, row := range counts {
		if len(row) != n+1 {
			return nil, fmt.Errorf("%w: count row %d has %d columns, want %d", ErrInvalidMatrix, i, len(row), n+1)
		}
	}
	if relativeRisk < 0 || math.IsNaN(relativeRisk) || math.IsInf(relativeRisk, 0) {
		return nil, fmt.Errorf("%w: relative risk %v must be a non-negative finite number", ErrInvalidMatrix, relativeRisk)
	}
	if backgroundMortality < 0 || math.IsNaN(backgroundMortality) || math.IsInf(backgroundMortality, 0) {
		return nil, fmt.Errorf("%w: background mortality %v must be a non-negative finite number", ErrInvalidMatrix, backgroundMortality)
	}

	probs, err := ProbabilitiesFromCounts(counts)
	if err != nil {
		return nil, err
	}
	disease, err := DiscreteToContinuous(probs, 1)
	if err != nil {
		return nil, err
	}

	size := n + 2
	full := make([][]float64, size)
	for i := range full {
		full[i] = make([]float64, size)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j <= n; j++ {
			full[i][j] = relativeRisk * disease[i][j]
		}
		// Regression to a lower-indexed state is untreated.
		for j := 0; j < i; j++ {
			full[i][j] = disease[i][j]
		}
		full[i][size-1] = backgroundMortality
	}
	return NewRateMatrix(full)
}
