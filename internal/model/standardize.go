package model

import (
	"github.com/wearlab-data/stress.report/internal/features"
)

// Standardize z-scores every row (baseline and stress alike) against the
// baseline-only priors: z = (x - mean) / (std + epsilon). Standardizing
// stress rows with baseline statistics is deliberate; the model scores
// deviation from the subject population's resting state.
func Standardize(X [][]float64, priors map[string]Prior) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		z := make([]float64, len(row))
		for j, name := range features.Names {
			p := priors[name]
			z[j] = (row[j] - p.Mean) / (p.Std + Epsilon)
		}
		out[i] = z
	}
	return out
}
