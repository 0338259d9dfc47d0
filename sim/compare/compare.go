// Package compare contrasts the outcomes of two simulated cohorts: incremental
// survival, cost and utility, the incremental cost-effectiveness ratio and net
// monetary benefit.
package compare

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/cohort-sim/cohort-sim/sim"
)

// Difference is the estimated difference of means (alternative − base) with a
// two-sided Welch confidence interval.
type Difference struct {
	Name  string
	Mean  float64
	StErr float64
	CI    [2]float64
}

// NewDifference estimates mean(alt) − mean(base) at significance level alpha.
// Either sample being empty yields NaN fields.
func NewDifference(name string, base, alt []float64, alpha float64) Difference {
	d := Difference{Name: name}
	if len(base) == 0 || len(alt) == 0 {
		nan := math.NaN()
		d.Mean, d.StErr, d.CI = nan, nan, [2]float64{nan, nan}
		return d
	}
	d.Mean = stat.Mean(alt, nil) - stat.Mean(base, nil)

	vb, nb := sampleVariance(base), float64(len(base))
	va, na := sampleVariance(alt), float64(len(alt))
	d.StErr = math.Sqrt(vb/nb + va/na)
	if d.StErr == 0 {
		d.CI = [2]float64{d.Mean, d.Mean}
		return d
	}

	// Welch–Satterthwaite degrees of freedom
	num := (vb/nb + va/na) * (vb/nb + va/na)
	den := 0.0
	if nb > 1 {
		den += (vb / nb) * (vb / nb) / (nb - 1)
	}
	if na > 1 {
		den += (va / na) * (va / na) / (na - 1)
	}
	df := num / den
	half := sim.TQuantile(1-alpha/2, df) * d.StErr
	d.CI = [2]float64{d.Mean - half, d.Mean + half}
	return d
}

func sampleVariance(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return stat.Variance(x, nil)
}

// Outcomes holds the comparison of an alternative policy against a base policy.
type Outcomes struct {
	SurvivalTime Difference
	Cost         Difference
	Utility      Difference

	// ICER is Δcost / Δutility; NaN when Δutility is zero.
	ICER float64
}

// New compares two simulated cohorts at significance level alpha.
func New(base, alt *sim.CohortOutcomes, alpha float64) (*Outcomes, error) {
	if base == nil || alt == nil {
		return nil, fmt.Errorf("compare: both cohorts must be simulated first")
	}
	if !(alpha > 0 && alpha < 1) {
		return nil, fmt.Errorf("compare: alpha %v must be in (0, 1)", alpha)
	}
	out := &Outcomes{
		SurvivalTime: NewDifference("Increase in mean survival time", base.SurvivalTimes, alt.SurvivalTimes, alpha),
		Cost:         NewDifference("Increase in mean discounted cost", base.Costs, alt.Costs, alpha),
		Utility:      NewDifference("Increase in mean discounted utility", base.Utilities, alt.Utilities, alpha),
	}
	out.ICER = math.NaN()
	if out.Utility.Mean != 0 && !math.IsNaN(out.Utility.Mean) {
		out.ICER = out.Cost.Mean / out.Utility.Mean
	}
	return out, nil
}

// NetMonetaryBenefit returns wtp·Δutility − Δcost at a willingness-to-pay per
// quality-adjusted life year.
func (o *Outcomes) NetMonetaryBenefit(wtp float64) float64 {
	return wtp*o.Utility.Mean - o.Cost.Mean
}

// Dominance classifies the alternative against the base.
type Dominance string

const (
	Dominant   Dominance = "dominant"   // cheaper and more effective
	Dominated  Dominance = "dominated"  // costlier and less effective
	TradeOff   Dominance = "trade-off"  // pay more for more, or save by losing effect
	Equivalent Dominance = "equivalent" // no difference in cost or effect
)

// Dominance reports whether the alternative dominates, is dominated by, or
// trades off against the base.
func (o *Outcomes) Dominance() Dominance {
	dc, du := o.Cost.Mean, o.Utility.Mean
	switch {
	case dc == 0 && du == 0:
		return Equivalent
	case dc <= 0 && du >= 0:
		return Dominant
	case dc >= 0 && du <= 0:
		return Dominated
	default:
		return TradeOff
	}
}
