package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cohort-sim/cohort-sim/sim/hiv"
)

// ModelFile is the YAML layout of a model input file. Omitted keys keep the
// built-in HIV defaults.
type ModelFile struct {
	TransCounts              [][]float64 `yaml:"trans_counts"`
	AnnualProbBackgroundMort float64     `yaml:"annual_prob_background_mort"`
	AnnualStateCosts         []float64   `yaml:"annual_state_costs"`
	AnnualStateUtilities     []float64   `yaml:"annual_state_utilities"`
	ZidovudineCost           float64     `yaml:"zidovudine_cost"`
	LamivudineCost           float64     `yaml:"lamivudine_cost"`
	TreatmentRR              float64     `yaml:"treatment_rr"`
	DiscountRate             float64     `yaml:"discount_rate"`
}

// loadModelInputs returns the HIV model inputs, overridden by the file at path
// when path is non-empty. Unknown keys are rejected so typos surface as errors.
func loadModelInputs(path string) (hiv.Inputs, error) {
	in := hiv.Defaults()
	if path == "" {
		return in, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("read model file %s: %w", path, err)
	}

	mf := ModelFile(in)
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&mf); err != nil && !errors.Is(err, io.EOF) {
		return in, fmt.Errorf("parse model file %s: %w", path, err)
	}
	return hiv.Inputs(mf), nil
}
