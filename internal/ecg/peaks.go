package ecg

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DetectPeaks finds local maxima in x that look like heartbeats.
//
// Algorithm:
//  1. Collect candidate indices where a sample strictly exceeds its left
//     neighbour and is >= its right neighbour (right ties tolerated).
//  2. Discard candidates at or below mean + 0.5*stddev of the whole signal.
//  3. Enforce a refractory distance of floor(fs * 60 / maxBPM) samples by
//     scanning candidates left to right and keeping one only when it is at
//     least that far past the last kept peak.
//
// The returned indices are strictly increasing. Signals shorter than 3
// samples, or with no candidate above threshold, yield an empty result.
func DetectPeaks(x []float64, fsHz, maxBPM float64) []int {
	if len(x) < 3 {
		return nil
	}

	var candidates []int
	for i := 1; i < len(x)-1; i++ {
		if x[i] > x[i-1] && x[i] >= x[i+1] {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	thr := stat.Mean(x, nil) + 0.5*math.Sqrt(stat.PopVariance(x, nil))

	minDist := int(fsHz * 60.0 / maxBPM)
	keep := make([]int, 0, len(candidates))
	last := -minDist
	for _, p := range candidates {
		if x[p] <= thr {
			continue
		}
		if p-last >= minDist {
			keep = append(keep, p)
			last = p
		}
	}
	if len(keep) == 0 {
		return nil
	}
	return keep
}
