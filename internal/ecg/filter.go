package ecg

import (
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// BandpassFFT applies a zero-phase bandpass filter by masking frequency bins.
// The signal is mean-centered, transformed with a real FFT, every bin whose
// frequency falls outside [fLoHz, fHiHz] (inclusive) is zeroed, and the
// result is inverse-transformed back to the original length.
//
// This is a whole-buffer, non-causal filter: it needs the complete window up
// front and is not usable sample-by-sample.
func BandpassFFT(x []float64, fsHz, fLoHz, fHiHz float64) []float64 {
	n := len(x)
	if n == 0 {
		return x
	}

	mean := stat.Mean(x, nil)
	centered := make([]float64, n)
	for i, v := range x {
		centered[i] = v - mean
	}

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, centered)
	for i := range coeff {
		f := fft.Freq(i) * fsHz
		if f < fLoHz || f > fHiHz {
			coeff[i] = 0
		}
	}

	// Sequence is unnormalized: Coefficients followed by Sequence scales
	// the input by n.
	out := fft.Sequence(nil, coeff)
	inv := 1.0 / float64(n)
	for i := range out {
		out[i] *= inv
	}
	return out
}
