package trace

// TraceLevel controls the verbosity of trajectory tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTransitions records every state change of every patient.
	TraceLevelTransitions TraceLevel = "transitions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:        true,
	TraceLevelTransitions: true,
	"":                    true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// CohortTrace collects patient trajectories in patient order.
type CohortTrace struct {
	Config   TraceConfig
	Patients []PatientTrace
}

// NewCohortTrace creates a CohortTrace ready for recording.
func NewCohortTrace(config TraceConfig) *CohortTrace {
	return &CohortTrace{
		Config:   config,
		Patients: make([]PatientTrace, 0),
	}
}

// RecordPatient appends a patient's trajectory.
func (ct *CohortTrace) RecordPatient(pt PatientTrace) {
	ct.Patients = append(ct.Patients, pt)
}
