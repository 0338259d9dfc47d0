package trace

// TraceSummary aggregates statistics from a CohortTrace.
type TraceSummary struct {
	Patients                  int
	TotalTransitions          int // state changes, excluding horizon records
	CensoredPatients          int
	MeanTransitionsPerPatient float64
	TransitionCounts          map[string]int // "from->to" → count
}

// Summarize computes aggregate statistics from a CohortTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(ct *CohortTrace) *TraceSummary {
	summary := &TraceSummary{
		TransitionCounts: make(map[string]int),
	}
	if ct == nil {
		return summary
	}

	summary.Patients = len(ct.Patients)
	for _, pt := range ct.Patients {
		if pt.Censored() {
			summary.CensoredPatients++
		}
		for _, tr := range pt.Transitions {
			if tr.Censored {
				continue
			}
			summary.TotalTransitions++
			summary.TransitionCounts[tr.From+"->"+tr.To]++
		}
	}

	if summary.Patients > 0 {
		summary.MeanTransitionsPerPatient = float64(summary.TotalTransitions) / float64(summary.Patients)
	}
	return summary
}
