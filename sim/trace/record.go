// Package trace provides per-patient state-change trajectory recording.
// It stores pure data types and has no dependencies on package sim.
package trace

// TransitionRecord captures one accepted monitor update of a patient.
// Censored is true for the final same-state record made at the horizon.
type TransitionRecord struct {
	PatientID int64   `json:"patient_id"`
	Time      float64 `json:"time"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Censored  bool    `json:"censored,omitempty"`
}

// PatientTrace is the ordered state-change history of one patient.
type PatientTrace struct {
	PatientID   int64              `json:"patient_id"`
	Transitions []TransitionRecord `json:"transitions"`
}

// Censored reports whether the trajectory was truncated at the horizon.
func (pt PatientTrace) Censored() bool {
	n := len(pt.Transitions)
	return n > 0 && pt.Transitions[n-1].Censored
}
