package ecg

// MovingAverage smooths x with a centered boxcar of the given window length,
// returning a slice of the same length. Samples beyond the ends are treated
// as zero, so the output tapers toward the edges. A window of 1 or less
// returns a copy of the input.
func MovingAverage(x []float64, window int) []float64 {
	out := make([]float64, len(x))
	if window <= 1 {
		copy(out, x)
		return out
	}

	// out[i] averages the window centered at i, shifted left for even
	// window lengths.
	offset := (window - 1) / 2
	inv := 1.0 / float64(window)
	for i := range x {
		hi := i + offset
		lo := hi - window + 1
		if lo < 0 {
			lo = 0
		}
		if hi >= len(x) {
			hi = len(x) - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += x[j]
		}
		out[i] = sum * inv
	}
	return out
}
