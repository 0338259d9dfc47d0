package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cohort-sim/cohort-sim/sim/hiv"
	"github.com/cohort-sim/cohort-sim/sim/trace"
)

func newTestCommand() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	addRunFlags(c)
	return c
}

func TestLoadRunSettings_Defaults(t *testing.T) {
	s, err := loadRunSettings(newTestCommand())
	require.NoError(t, err)

	assert.Equal(t, hiv.PopSize, s.PopSize)
	assert.Equal(t, hiv.SimLength, s.Horizon)
	assert.Equal(t, hiv.Alpha, s.Alpha)
	assert.Equal(t, "error", s.LogLevel)
	assert.Equal(t, trace.TraceLevelNone, s.CohortConfig().TraceLevel)
}

func TestLoadRunSettings_EnvironmentOverridesDefault(t *testing.T) {
	// GIVEN COHORTSIM_POP_SIZE in the environment
	t.Setenv("COHORTSIM_POP_SIZE", "123")
	t.Setenv("COHORTSIM_HORIZON", "7.5")

	// WHEN settings are loaded without explicit flags
	s, err := loadRunSettings(newTestCommand())
	require.NoError(t, err)

	// THEN the environment wins over the flag default
	assert.Equal(t, 123, s.PopSize)
	assert.Equal(t, 7.5, s.Horizon)
}

func TestLoadRunSettings_ExplicitFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("COHORTSIM_POP_SIZE", "123")
	c := newTestCommand()
	require.NoError(t, c.Flags().Set("pop-size", "42"))

	s, err := loadRunSettings(c)
	require.NoError(t, err)
	assert.Equal(t, 42, s.PopSize)
}

func TestLoadRunSettings_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		flag, value string
	}{
		{"pop-size", "-1"},
		{"horizon", "-3"},
		{"trace", "everything"},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			c := newTestCommand()
			require.NoError(t, c.Flags().Set(tt.flag, tt.value))
			_, err := loadRunSettings(c)
			assert.Error(t, err)
		})
	}
}

func TestRunSettings_CohortConfig(t *testing.T) {
	s := RunSettings{Alpha: 0.1, Workers: 3, TraceLevel: "transitions"}
	cfg := s.CohortConfig()
	assert.Equal(t, 0.1, cfg.Alpha)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, trace.TraceLevelTransitions, cfg.TraceLevel)
}
