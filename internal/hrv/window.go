package hrv

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Physiological gates for windowed HR/HRV estimation.
const (
	minPlausibleBPM = 40.0
	maxPlausibleBPM = 200.0

	// Intervals further than 15% from the window median are treated as
	// ectopic or missed-beat artifacts.
	medianGateFraction = 0.15

	// Every gate must leave at least this many intervals.
	minIntervals = 2
)

// Estimate is the HR/HRV result for one window.
type Estimate struct {
	HRMeanBPM float64
	SDNNms    float64
}

// EstimateWindow computes mean heart rate and SDNN from the intervals whose
// timestamps fall in [t0, t1). Three gates apply in order, each requiring at
// least two surviving intervals: window membership, the plausible bpm range
// [40, 200], and distance from the window median. The second return is false
// when any gate fails; a returned Estimate never contains NaN.
func EstimateWindow(s Series, t0, t1 float64) (Estimate, bool) {
	var ibi []float64
	for i, t := range s.Times {
		if t >= t0 && t < t1 {
			ibi = append(ibi, s.Values[i])
		}
	}
	if len(ibi) < minIntervals {
		return Estimate{}, false
	}

	lo := 60.0 / maxPlausibleBPM
	hi := 60.0 / minPlausibleBPM
	ibi = filterInPlace(ibi, func(v float64) bool { return v >= lo && v <= hi })
	if len(ibi) < minIntervals {
		return Estimate{}, false
	}

	med := median(ibi)
	ibi = filterInPlace(ibi, func(v float64) bool {
		return v > (1-medianGateFraction)*med && v < (1+medianGateFraction)*med
	})
	if len(ibi) < minIntervals {
		return Estimate{}, false
	}

	ms := make([]float64, len(ibi))
	for i, v := range ibi {
		ms[i] = v * 1000.0
	}
	return Estimate{
		HRMeanBPM: 60.0 / stat.Mean(ibi, nil),
		SDNNms:    stat.StdDev(ms, nil),
	}, true
}

func filterInPlace(xs []float64, keep func(float64) bool) []float64 {
	out := xs[:0]
	for _, v := range xs {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// median returns the middle value of xs, averaging the two central values
// for even lengths. xs is not modified.
func median(xs []float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
