package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/wearlab-data/stress.report/internal/dataset"
	"github.com/wearlab-data/stress.report/internal/features"
)

// WeightMode selects the fitting strategy.
type WeightMode string

const (
	// ModeEffectSize weights each feature by the standardized difference
	// between the stress-row mean and the baseline prior, in baseline
	// standard-deviation units. Closed form, bias 0.
	ModeEffectSize WeightMode = "effect_size"

	// ModeLinear fits a logistic model on standardized rows.
	ModeLinear WeightMode = "linear"
)

// FitterConfig configures the model fitter. Solver substitution is an
// explicit configuration decision made at construction, never an ambient
// capability probed at call time.
type FitterConfig struct {
	Mode   WeightMode
	Newton NewtonConfig

	// Solver, when non-nil, replaces the built-in Newton fitter for
	// ModeLinear under the same (X, y) -> (weights, bias) contract.
	Solver Solver

	// FlipSign negates the fitted weights and bias so that a higher score
	// reads as calmer rather than more stressed.
	FlipSign bool

	// TargetProjectionStd, when positive, rescales the weight vector so
	// the standard deviation of the linear projection across the fitted
	// rows equals this value.
	TargetProjectionStd float64
}

// DefaultFitterConfig returns the canonical fitter parameters.
func DefaultFitterConfig() FitterConfig {
	return FitterConfig{Mode: ModeEffectSize, Newton: DefaultNewtonConfig()}
}

// Fitted is the immutable result of a fit: one weight per feature plus an
// intercept.
type Fitted struct {
	Weights map[string]float64
	Bias    float64
}

// Fitter produces the weight vector and bias from the assembled dataset and
// its baseline priors.
type Fitter struct {
	cfg FitterConfig
}

// NewFitter builds a Fitter with the given configuration.
func NewFitter(cfg FitterConfig) *Fitter {
	return &Fitter{cfg: cfg}
}

// Fit runs the configured strategy over the dataset.
func (f *Fitter) Fit(ds *dataset.Dataset, priors map[string]Prior) (Fitted, error) {
	var (
		w   []float64
		b   float64
		err error
	)

	switch f.cfg.Mode {
	case ModeEffectSize:
		w, b = f.effectSize(ds, priors)
	case ModeLinear:
		solver := f.cfg.Solver
		if solver == nil {
			solver = NewNewtonSolver(f.cfg.Newton)
		}
		Xz := Standardize(ds.X(), priors)
		w, b, err = solver.Fit(Xz, ds.Y())
		if err != nil {
			return Fitted{}, fmt.Errorf("linear fit: %w", err)
		}
	default:
		return Fitted{}, fmt.Errorf("unknown weight mode %q", f.cfg.Mode)
	}

	if f.cfg.FlipSign {
		for j := range w {
			w[j] = -w[j]
		}
		b = -b
	}
	if f.cfg.TargetProjectionStd > 0 {
		f.rescale(w, ds, priors)
	}

	weights := make(map[string]float64, len(features.Names))
	for j, name := range features.Names {
		weights[name] = w[j]
	}
	return Fitted{Weights: weights, Bias: b}, nil
}

// effectSize computes the univariate estimator: per feature, the stress-row
// mean minus the baseline prior mean, in prior standard-deviation units.
// With no stress rows all weights are zero.
func (f *Fitter) effectSize(ds *dataset.Dataset, priors map[string]Prior) ([]float64, float64) {
	w := make([]float64, len(features.Names))
	for j, name := range features.Names {
		var stress []float64
		for _, r := range ds.Rows {
			if r.Label == 1 {
				stress = append(stress, r.Features.Row()[j])
			}
		}
		p := priors[name]
		muStress := p.Mean
		if len(stress) > 0 {
			muStress = stat.Mean(stress, nil)
		}
		w[j] = (muStress - p.Mean) / (p.Std + Epsilon)
	}
	return w, 0.0
}

// rescale scales the weight vector in place so the standard deviation of
// the linear projection over the standardized dataset equals the configured
// target. Degenerate projections (zero spread) are left untouched.
func (f *Fitter) rescale(w []float64, ds *dataset.Dataset, priors map[string]Prior) {
	Xz := Standardize(ds.X(), priors)
	proj := make([]float64, len(Xz))
	for i, row := range Xz {
		for j, v := range row {
			proj[i] += v * w[j]
		}
	}
	sd := stat.StdDev(proj, nil)
	if sd < Epsilon || math.IsNaN(sd) {
		return
	}
	scale := f.cfg.TargetProjectionStd / sd
	for j := range w {
		w[j] *= scale
	}
}
