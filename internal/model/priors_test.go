package model

import (
	"math"
	"testing"

	"github.com/wearlab-data/stress.report/internal/dataset"
	"github.com/wearlab-data/stress.report/internal/features"
)

func TestRobustMeanStd(t *testing.T) {
	testCases := []struct {
		name     string
		in       []float64
		wantMean float64
		wantStd  float64
	}{
		{"empty", nil, 0.0, 1.0},
		{"all_nan", []float64{math.NaN(), math.NaN()}, 0.0, 1.0},
		{"single_value", []float64{5.0}, 5.0, 1.0},
		// Near-constant features get their std floored so z-scores stay
		// bounded.
		{"constant", []float64{2.0, 2.0, 2.0, 2.0}, 2.0, 1.0},
		{"simple", []float64{1.0, 2.0, 3.0}, 2.0, 1.0},
		{"ignores_nonfinite", []float64{1.0, math.Inf(1), 3.0, math.NaN()}, 2.0, math.Sqrt2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mean, std := RobustMeanStd(tc.in)
			if math.Abs(mean-tc.wantMean) > 1e-12 {
				t.Errorf("mean = %v, want %v", mean, tc.wantMean)
			}
			if math.Abs(std-tc.wantStd) > 1e-12 {
				t.Errorf("std = %v, want %v", std, tc.wantStd)
			}
		})
	}
}

func testDataset() *dataset.Dataset {
	return &dataset.Dataset{Rows: []dataset.Row{
		{Subject: "S2", Features: features.WindowFeatures{HRMeanBPM: 60, HRVSDNNms: 50, WristTempC: 33.0, AccRMSG: 0.02}, Label: 0},
		{Subject: "S2", Features: features.WindowFeatures{HRMeanBPM: 70, HRVSDNNms: 40, WristTempC: 33.4, AccRMSG: 0.04}, Label: 0},
		{Subject: "S3", Features: features.WindowFeatures{HRMeanBPM: 95, HRVSDNNms: 20, WristTempC: 34.0, AccRMSG: 0.10}, Label: 1},
		{Subject: "S3", Features: features.WindowFeatures{HRMeanBPM: 100, HRVSDNNms: 15, WristTempC: 34.2, AccRMSG: 0.12}, Label: 1},
	}}
}

func TestEstimatePriorsBaselineOnly(t *testing.T) {
	priors := EstimatePriors(testDataset())

	hr := priors[features.NameHRMeanBPM]
	if math.Abs(hr.Mean-65.0) > 1e-12 {
		t.Errorf("hr prior mean = %v, want 65 (stress rows must not contribute)", hr.Mean)
	}
	wantStd := math.Sqrt(50.0) // sample std of {60, 70}
	if math.Abs(hr.Std-wantStd) > 1e-12 {
		t.Errorf("hr prior std = %v, want %v", hr.Std, wantStd)
	}

	if len(priors) != len(features.Names) {
		t.Errorf("got %d priors, want one per feature", len(priors))
	}
}

func TestStandardizeUsesBaselinePriors(t *testing.T) {
	ds := testDataset()
	priors := EstimatePriors(ds)
	Xz := Standardize(ds.X(), priors)

	if len(Xz) != len(ds.Rows) {
		t.Fatalf("standardized %d rows, want %d", len(Xz), len(ds.Rows))
	}

	// Baseline rows are symmetric around their own mean...
	if math.Abs(Xz[0][0]+Xz[1][0]) > 1e-9 {
		t.Errorf("baseline z-scores not centered: %v, %v", Xz[0][0], Xz[1][0])
	}
	// ...while stress rows sit far above it.
	if Xz[2][0] < 2.0 || Xz[3][0] < 2.0 {
		t.Errorf("stress z-scores unexpectedly small: %v, %v", Xz[2][0], Xz[3][0])
	}
}
