// Package sim provides the per-patient continuous-time Markov simulation engine
// and the cohort outcome aggregation used to compare treatment policies.
//
// # Reading Guide
//
//   - ratematrix.go: transition-count → transition-rate derivation
//   - gillespie.go: competing-exponentials sampler (time to next event, next state)
//   - patient.go: the per-patient process (Running → Stopped) and its step rule
//   - monitor.go, discount.go: outcome monitor and discounted cost/utility accrual
//   - cohort.go, outcomes.go, stats.go: cohort driver, aggregation, summary statistics
//
// # Time and Randomness
//
// Time is continuous and measured in years. Each patient owns a random stream
// seeded by its PatientID (see rng.go); patients share only the read-only
// Parameters, so they may run concurrently.
//
// # Censoring
//
// A transition sampled past the simulation horizon is not applied: the patient
// is recorded as remaining in its current state at the horizon and stops.
// Such patients contribute no survival time or time-to-progression.
package sim
