package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cohort-sim/cohort-sim/sim"
	"github.com/cohort-sim/cohort-sim/sim/hiv"
	"github.com/cohort-sim/cohort-sim/sim/trace"
)

// envPrefix namespaces environment overrides, e.g. COHORTSIM_POP_SIZE.
const envPrefix = "COHORTSIM"

// RunSettings are the resolved settings of a simulation command.
// Precedence: explicit flag > COHORTSIM_* environment variable > flag default.
type RunSettings struct {
	CohortID   int64
	PopSize    int
	Horizon    float64
	Alpha      float64
	Workers    int
	ModelPath  string
	OutputPath string
	TraceLevel string
	LogLevel   string
}

// addRunFlags registers the flags shared by run and compare.
func addRunFlags(c *cobra.Command) {
	c.Flags().Int64("cohort-id", 0, "Cohort id; seeds patient random streams")
	c.Flags().Int("pop-size", hiv.PopSize, "Number of simulated patients per cohort")
	c.Flags().Float64("horizon", hiv.SimLength, "Simulation length in years")
	c.Flags().Float64("alpha", hiv.Alpha, "Significance level for confidence and percentile intervals")
	c.Flags().Int("workers", 0, "Concurrent patient simulations (0 = GOMAXPROCS)")
	c.Flags().String("model", "", "Optional YAML model file overriding the built-in HIV inputs")
	c.Flags().String("output", "", "Write a JSON report to this path")
	c.Flags().String("trace", string(trace.TraceLevelNone), "Trajectory trace level (none, transitions)")
	c.Flags().String("log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

// loadRunSettings resolves the command's flags against the environment.
func loadRunSettings(c *cobra.Command) (RunSettings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(c.Flags()); err != nil {
		return RunSettings{}, fmt.Errorf("bind flags: %w", err)
	}

	s := RunSettings{
		CohortID:   v.GetInt64("cohort-id"),
		PopSize:    v.GetInt("pop-size"),
		Horizon:    v.GetFloat64("horizon"),
		Alpha:      v.GetFloat64("alpha"),
		Workers:    v.GetInt("workers"),
		ModelPath:  v.GetString("model"),
		OutputPath: v.GetString("output"),
		TraceLevel: v.GetString("trace"),
		LogLevel:   v.GetString("log"),
	}
	if s.PopSize < 0 {
		return s, fmt.Errorf("pop-size must be non-negative, got %d", s.PopSize)
	}
	if s.Horizon < 0 {
		return s, fmt.Errorf("horizon must be non-negative, got %v", s.Horizon)
	}
	if !trace.IsValidTraceLevel(s.TraceLevel) {
		return s, fmt.Errorf("unknown trace level %q", s.TraceLevel)
	}
	return s, nil
}

// CohortConfig converts the settings into engine run settings.
func (s RunSettings) CohortConfig() sim.CohortConfig {
	level := trace.TraceLevel(s.TraceLevel)
	if level == "" {
		level = trace.TraceLevelNone
	}
	return sim.CohortConfig{Alpha: s.Alpha, Workers: s.Workers, TraceLevel: level}
}
