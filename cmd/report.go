package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/cohort-sim/cohort-sim/sim"
	"github.com/cohort-sim/cohort-sim/sim/compare"
	"github.com/cohort-sim/cohort-sim/sim/trace"
)

// printOutcomes writes a cohort's summary statistics as text.
func printOutcomes(w io.Writer, name string, o *sim.CohortOutcomes) {
	fmt.Fprintf(w, "=== %s therapy (%d patients) ===\n", name, o.PopSize)
	for _, s := range []sim.SummaryStat{o.StatSurvivalTime, o.StatTimeToProgression, o.StatCost, o.StatUtility} {
		if s.N == 0 {
			fmt.Fprintf(w, "%-22s: no observations\n", s.Name)
			continue
		}
		fmt.Fprintf(w, "%-22s: mean %.4f, CI [%.4f, %.4f], PI [%.4f, %.4f], n=%d\n",
			s.Name, s.Mean, s.CI[0], s.CI[1], s.PI[0], s.PI[1], s.N)
	}
}

// printComparison writes the incremental outcomes of combo versus mono therapy.
func printComparison(w io.Writer, c *compare.Outcomes, wtp float64) {
	fmt.Fprintln(w, "=== Comparison (alternative − base) ===")
	for _, d := range []compare.Difference{c.SurvivalTime, c.Cost, c.Utility} {
		fmt.Fprintf(w, "%-36s: %.4f, CI [%.4f, %.4f]\n", d.Name, d.Mean, d.CI[0], d.CI[1])
	}
	fmt.Fprintf(w, "%-36s: %.2f\n", "ICER (cost per QALY)", c.ICER)
	fmt.Fprintf(w, "%-36s: %.2f\n", fmt.Sprintf("Net monetary benefit at %.0f", wtp), c.NetMonetaryBenefit(wtp))
	fmt.Fprintf(w, "%-36s: %s\n", "Dominance", c.Dominance())
}

// printTraceSummary writes aggregate trajectory statistics.
func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trajectory Summary ===")
	fmt.Fprintf(w, "Patients             : %d\n", s.Patients)
	fmt.Fprintf(w, "Censored at horizon  : %d\n", s.CensoredPatients)
	fmt.Fprintf(w, "Transitions          : %d (%.2f per patient)\n", s.TotalTransitions, s.MeanTransitionsPerPatient)
	keys := make([]string, 0, len(s.TransitionCounts))
	for k := range s.TransitionCounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-30s %d\n", k, s.TransitionCounts[k])
	}
}

// Report is the JSON document written by --output.
// Non-finite statistics (e.g. the mean of an empty collection) are null.
type Report struct {
	RunID      string                  `json:"run_id"`
	CohortID   int64                   `json:"cohort_id"`
	PopSize    int                     `json:"pop_size"`
	Horizon    float64                 `json:"horizon_years"`
	Alpha      float64                 `json:"alpha"`
	WallTimeS  float64                 `json:"wall_time_s"`
	Cohorts    map[string]CohortReport `json:"cohorts"`
	Comparison *ComparisonReport       `json:"comparison,omitempty"`
}

// CohortReport holds one cohort's statistics and survival path.
type CohortReport struct {
	SurvivalTime      StatReport      `json:"survival_time"`
	TimeToProgression StatReport      `json:"time_to_progression"`
	DiscountedCost    StatReport      `json:"discounted_cost"`
	DiscountedUtility StatReport      `json:"discounted_utility"`
	LivingPatients    []sim.PathPoint `json:"living_patients"`
}

// StatReport is the JSON form of a SummaryStat.
type StatReport struct {
	N     int        `json:"n"`
	Mean  *float64   `json:"mean"`
	StDev *float64   `json:"stdev"`
	CI    []*float64 `json:"ci"`
	PI    []*float64 `json:"pi"`
}

// ComparisonReport is the JSON form of compare.Outcomes.
type ComparisonReport struct {
	SurvivalTime       *float64 `json:"incremental_survival_time"`
	Cost               *float64 `json:"incremental_cost"`
	Utility            *float64 `json:"incremental_utility"`
	ICER               *float64 `json:"icer"`
	WillingnessToPay   float64  `json:"wtp"`
	NetMonetaryBenefit *float64 `json:"net_monetary_benefit"`
	Dominance          string   `json:"dominance"`
}

func newReport(s RunSettings, wall time.Duration) *Report {
	return &Report{
		RunID:     uuid.New().String(),
		CohortID:  s.CohortID,
		PopSize:   s.PopSize,
		Horizon:   s.Horizon,
		Alpha:     s.Alpha,
		WallTimeS: wall.Seconds(),
		Cohorts:   make(map[string]CohortReport),
	}
}

// AddCohort records a simulated cohort under name.
func (r *Report) AddCohort(name string, o *sim.CohortOutcomes) {
	r.Cohorts[name] = CohortReport{
		SurvivalTime:      statReport(o.StatSurvivalTime),
		TimeToProgression: statReport(o.StatTimeToProgression),
		DiscountedCost:    statReport(o.StatCost),
		DiscountedUtility: statReport(o.StatUtility),
		LivingPatients:    o.NLiving.Points,
	}
}

// SetComparison records the comparison of two cohorts.
func (r *Report) SetComparison(c *compare.Outcomes, wtp float64) {
	r.Comparison = &ComparisonReport{
		SurvivalTime:       finite(c.SurvivalTime.Mean),
		Cost:               finite(c.Cost.Mean),
		Utility:            finite(c.Utility.Mean),
		ICER:               finite(c.ICER),
		WillingnessToPay:   wtp,
		NetMonetaryBenefit: finite(c.NetMonetaryBenefit(wtp)),
		Dominance:          string(c.Dominance()),
	}
}

// WriteFile writes the report as indented JSON.
func (r *Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

func statReport(s sim.SummaryStat) StatReport {
	return StatReport{
		N:     s.N,
		Mean:  finite(s.Mean),
		StDev: finite(s.StDev),
		CI:    []*float64{finite(s.CI[0]), finite(s.CI[1])},
		PI:    []*float64{finite(s.PI[0]), finite(s.PI[1])},
	}
}

// finite returns nil for NaN and ±Inf so the value encodes as JSON null.
func finite(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}
