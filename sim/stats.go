package sim

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SummaryStat summarises one per-patient outcome across a cohort.
// CI is the two-sided t-based confidence interval of the mean; PI is the
// percentile interval of the observations at the same significance level.
// An empty collection yields N=0 and NaN everywhere else.
type SummaryStat struct {
	Name  string
	N     int
	Mean  float64
	StDev float64 // sample standard deviation
	StErr float64
	CI    [2]float64
	PI    [2]float64
	Min   float64
	Max   float64
}

// NewSummaryStat computes summary statistics at significance level alpha.
func NewSummaryStat(name string, data []float64, alpha float64) SummaryStat {
	s := SummaryStat{Name: name, N: len(data)}
	if len(data) == 0 {
		nan := math.NaN()
		s.Mean, s.StDev, s.StErr, s.Min, s.Max = nan, nan, nan, nan, nan
		s.CI = [2]float64{nan, nan}
		s.PI = [2]float64{nan, nan}
		return s
	}

	s.Mean = stat.Mean(data, nil)
	s.Min = floats.Min(data)
	s.Max = floats.Max(data)
	if len(data) > 1 {
		s.StDev = stat.StdDev(data, nil)
		s.StErr = s.StDev / math.Sqrt(float64(len(data)))
	}
	half := TQuantile(1-alpha/2, float64(len(data)-1)) * s.StErr
	s.CI = [2]float64{s.Mean - half, s.Mean + half}

	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	s.PI = [2]float64{percentile(sorted, 100*alpha/2), percentile(sorted, 100*(1-alpha/2))}
	return s
}

// TQuantile returns the p-quantile of Student's t with df degrees of freedom.
// df < 1 returns 0 so a single observation gets a degenerate interval.
func TQuantile(p, df float64) float64 {
	if df < 1 {
		return 0
	}
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Quantile(p)
}

// percentile computes the p-th percentile using linear interpolation.
// Input must be sorted and non-empty.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
