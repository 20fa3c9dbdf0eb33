package ecg

import "math"

// QRS-energy band and plausibility ceiling for heartbeat detection.
const (
	qrsBandLoHz   = 5.0
	qrsBandHiHz   = 15.0
	qrsMaxBPM     = 200.0
	qrsSmoothSecs = 0.05
	qrsMinSecs    = 5.0
)

// HeartbeatPeaks runs the full QRS-style detection pipeline on a raw chest
// signal: bandpass at 5-15 Hz, full-wave rectify, moving-average smooth over
// ~50 ms, then peak detection capped at 200 bpm.
//
// Recordings shorter than 5 seconds return no peaks.
func HeartbeatPeaks(x []float64, fsHz float64) []int {
	if float64(len(x)) < fsHz*qrsMinSecs {
		return nil
	}

	filt := BandpassFFT(x, fsHz, qrsBandLoHz, qrsBandHiHz)
	for i, v := range filt {
		filt[i] = math.Abs(v)
	}

	window := int(math.Round(qrsSmoothSecs * fsHz))
	if window < 3 {
		window = 3
	}
	smooth := MovingAverage(filt, window)

	return DetectPeaks(smooth, fsHz, qrsMaxBPM)
}
