package sim

import (
	"math/rand"
)

// PatientID uniquely identifies a patient within a run. It seeds the patient's
// random stream: the same PatientID with the same Parameters always produces
// the same trajectory.
type PatientID int64

// NewPatientID derives the id of the index-th patient of a cohort.
// Ids of distinct cohorts with the same population size never collide.
func NewPatientID(cohortID int64, popSize, index int) PatientID {
	return PatientID(cohortID*int64(popSize) + int64(index))
}

// NewPatientStream returns a fresh random stream seeded by the patient id.
//
// Thread-safety: a stream is owned by exactly one patient and must not be
// shared across goroutines.
func NewPatientStream(id PatientID) *rand.Rand {
	return rand.New(rand.NewSource(int64(id)))
}
