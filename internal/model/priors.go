// Package model fits the stress-scoring model: per-feature baseline priors,
// baseline-relative standardization, and a weight vector from either a
// closed-form effect-size estimator or Newton-Raphson logistic regression.
package model

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/wearlab-data/stress.report/internal/dataset"
	"github.com/wearlab-data/stress.report/internal/features"
)

// Epsilon guards divisions by a near-zero standard deviation.
const Epsilon = 1e-6

// Prior is the baseline mean and standard deviation of one feature.
type Prior struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// RobustMeanStd computes a mean and sample standard deviation that are safe
// to divide by. Non-finite values are dropped first. With no finite values
// the result is (0, 1); with one value, or a near-constant feature whose
// std falls below 1e-6, the std is floored to 1 so z-scores cannot explode.
func RobustMeanStd(xs []float64) (mean, std float64) {
	finite := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return 0.0, 1.0
	}

	mean = stat.Mean(finite, nil)
	if len(finite) > 1 {
		std = stat.StdDev(finite, nil)
	} else {
		std = 1.0
	}
	if std < Epsilon {
		std = 1.0
	}
	return mean, std
}

// EstimatePriors computes per-feature priors from the baseline-labelled rows
// of the dataset only. Stress rows never contribute.
func EstimatePriors(ds *dataset.Dataset) map[string]Prior {
	priors := make(map[string]Prior, len(features.Names))
	for j, name := range features.Names {
		var col []float64
		for _, r := range ds.Rows {
			if r.Label == 0 {
				col = append(col, r.Features.Row()[j])
			}
		}
		mean, std := RobustMeanStd(col)
		priors[name] = Prior{Mean: mean, Std: std}
	}
	return priors
}
