// Package hrv derives inter-beat intervals from detected heartbeat peaks and
// estimates windowed heart-rate and heart-rate-variability statistics with
// physiological plausibility gating.
package hrv

// Series holds timestamped inter-beat intervals. Times[i] is the time in
// seconds (from session start) of the beat that closes interval i, and
// Values[i] is the interval duration in seconds. Both slices are the same
// length and Times is strictly increasing.
type Series struct {
	Times  []float64
	Values []float64
}

// Len returns the number of intervals.
func (s Series) Len() int { return len(s.Values) }

// FromPeaks converts peak sample indices into an interval series. Each
// consecutive peak pair yields one interval stamped at the later peak's
// time. Fewer than two peaks produce an empty series.
func FromPeaks(peaks []int, fsHz float64) Series {
	if len(peaks) < 2 {
		return Series{}
	}
	times := make([]float64, 0, len(peaks)-1)
	values := make([]float64, 0, len(peaks)-1)
	for i := 1; i < len(peaks); i++ {
		t0 := float64(peaks[i-1]) / fsHz
		t1 := float64(peaks[i]) / fsHz
		times = append(times, t1)
		values = append(values, t1-t0)
	}
	return Series{Times: times, Values: values}
}
