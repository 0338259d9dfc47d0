package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cohort-sim/cohort-sim/sim"
	"github.com/cohort-sim/cohort-sim/sim/hiv"
	"github.com/cohort-sim/cohort-sim/sim/trace"
)

var therapyName string

// runCmd simulates a single therapy cohort
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one therapy cohort and print its outcomes",
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := loadRunSettings(cmd)
		if err != nil {
			logrus.Fatalf("Invalid settings: %v", err)
		}
		setupLogging(settings.LogLevel)

		therapy, err := hiv.ParseTherapy(therapyName)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		inputs, err := loadModelInputs(settings.ModelPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		logrus.Infof("Starting %s cohort %d: pop=%d, horizon=%v years", therapy, settings.CohortID, settings.PopSize, settings.Horizon)
		startTime := time.Now()

		cohort, err := simulateTherapy(inputs, therapy, settings)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		printOutcomes(os.Stdout, therapy.String(), cohort.Outcomes)
		if cohort.Trace != nil {
			printTraceSummary(os.Stdout, trace.Summarize(cohort.Trace))
		}
		if settings.OutputPath != "" {
			report := newReport(settings, time.Since(startTime))
			report.AddCohort(therapy.String(), cohort.Outcomes)
			if err := report.WriteFile(settings.OutputPath); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		logrus.Info("Simulation complete.")
	},
}

// simulateTherapy builds the therapy's parameters and simulates one cohort.
func simulateTherapy(inputs hiv.Inputs, therapy hiv.Therapy, settings RunSettings) (*sim.Cohort, error) {
	params, err := inputs.Parameters(therapy)
	if err != nil {
		return nil, err
	}
	cohort, err := sim.NewCohortWithConfig(settings.CohortID, settings.PopSize, params, settings.CohortConfig())
	if err != nil {
		return nil, err
	}
	if err := cohort.Simulate(settings.Horizon); err != nil {
		return nil, err
	}
	return cohort, nil
}

func init() {
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&therapyName, "therapy", "combo", "Therapy to simulate (mono, combo)")

	rootCmd.AddCommand(runCmd)
}
