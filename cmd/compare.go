package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cohort-sim/cohort-sim/sim/compare"
	"github.com/cohort-sim/cohort-sim/sim/hiv"
)

var willingnessToPay float64

// compareCmd simulates mono and combination therapy and contrasts them
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Simulate mono and combination therapy cohorts and compare outcomes",
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := loadRunSettings(cmd)
		if err != nil {
			logrus.Fatalf("Invalid settings: %v", err)
		}
		setupLogging(settings.LogLevel)

		inputs, err := loadModelInputs(settings.ModelPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		startTime := time.Now()

		// Each therapy gets its own cohort id so their random streams differ.
		monoSettings, comboSettings := settings, settings
		comboSettings.CohortID = settings.CohortID + 1

		mono, err := simulateTherapy(inputs, hiv.Mono, monoSettings)
		if err != nil {
			logrus.Fatalf("Mono therapy simulation failed: %v", err)
		}
		combo, err := simulateTherapy(inputs, hiv.Combo, comboSettings)
		if err != nil {
			logrus.Fatalf("Combo therapy simulation failed: %v", err)
		}

		printOutcomes(os.Stdout, hiv.Mono.String(), mono.Outcomes)
		printOutcomes(os.Stdout, hiv.Combo.String(), combo.Outcomes)

		cmp, err := compare.New(mono.Outcomes, combo.Outcomes, settings.Alpha)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		printComparison(os.Stdout, cmp, willingnessToPay)

		if settings.OutputPath != "" {
			report := newReport(settings, time.Since(startTime))
			report.AddCohort(hiv.Mono.String(), mono.Outcomes)
			report.AddCohort(hiv.Combo.String(), combo.Outcomes)
			report.SetComparison(cmp, willingnessToPay)
			if err := report.WriteFile(settings.OutputPath); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		logrus.Info("Comparison complete.")
	},
}

func init() {
	addRunFlags(compareCmd)
	compareCmd.Flags().Float64Var(&willingnessToPay, "wtp", 50000, "Willingness to pay per QALY for net monetary benefit")

	rootCmd.AddCommand(compareCmd)
}
