package features

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/wearlab-data/stress.report/internal/ecg"
	"github.com/wearlab-data/stress.report/internal/hrv"
)

// ExtractorConfig holds the coverage and scaling parameters for window
// feature extraction.
type ExtractorConfig struct {
	// TempMinSamples is the absolute floor on temperature samples a window
	// must cover.
	TempMinSamples int

	// AccMinSamples is the absolute floor on accelerometer samples a window
	// must cover.
	AccMinSamples int

	// CoverageFraction is the fraction of the nominal window sample count
	// that must actually be covered; windows with more missing data than
	// this are rejected.
	CoverageFraction float64

	// AccScaleG converts raw accelerometer units to g. Raw wrist exports
	// use 1/64 g per LSB.
	AccScaleG float64
}

// DefaultExtractorConfig returns the canonical extraction parameters.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		TempMinSamples:   2,
		AccMinSamples:    10,
		CoverageFraction: 0.25,
		AccScaleG:        1.0 / 64.0,
	}
}

// Extractor computes WindowFeatures from a session's raw signals and its
// precomputed inter-beat-interval series.
type Extractor struct {
	cfg ExtractorConfig
}

// NewExtractor builds an Extractor with the given configuration.
func NewExtractor(cfg ExtractorConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract computes the feature vector for the window [t0, t1). The second
// return is false when any sub-extraction fails or any resulting scalar is
// non-finite; in that case the window is discarded as a whole.
func (e *Extractor) Extract(t0, t1 float64, temp, acc ecg.Signal, ibi hrv.Series) (WindowFeatures, bool) {
	tempMean, ok := e.tempMean(t0, t1, temp)
	if !ok {
		return WindowFeatures{}, false
	}

	accRMS, ok := e.accRMS(t0, t1, acc)
	if !ok {
		return WindowFeatures{}, false
	}

	est, ok := hrv.EstimateWindow(ibi, t0, t1)
	if !ok {
		return WindowFeatures{}, false
	}

	f := WindowFeatures{
		HRMeanBPM:  est.HRMeanBPM,
		HRVSDNNms:  est.SDNNms,
		WristTempC: tempMean,
		AccRMSG:    accRMS,
	}
	for _, v := range f.Row() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return WindowFeatures{}, false
		}
	}
	return f, true
}

// sampleRange converts [t0, t1) to a clamped half-open index range and
// checks the coverage gate.
func (e *Extractor) sampleRange(t0, t1 float64, s ecg.Signal, minFloor int) (int, int, bool) {
	i0 := int(math.Floor(t0 * s.RateHz))
	if i0 < 0 {
		i0 = 0
	}
	i1 := int(math.Ceil(t1 * s.RateHz))
	if i1 > s.Len() {
		i1 = s.Len()
	}

	need := int(e.cfg.CoverageFraction * (t1 - t0) * s.RateHz)
	if need < minFloor {
		need = minFloor
	}
	if i1-i0 < need {
		return 0, 0, false
	}
	return i0, i1, true
}

func (e *Extractor) tempMean(t0, t1 float64, temp ecg.Signal) (float64, bool) {
	i0, i1, ok := e.sampleRange(t0, t1, temp, e.cfg.TempMinSamples)
	if !ok {
		return 0, false
	}
	return stat.Mean(temp.Channel(0)[i0:i1], nil), true
}

// accRMS reduces the window's 3-axis accelerometer samples to one scalar:
// the sample standard deviation of the per-sample vector magnitude in g.
// This is the canonical definition; the root-mean-square of the magnitude
// is a different quantity for non-zero-mean motion and is not used.
func (e *Extractor) accRMS(t0, t1 float64, acc ecg.Signal) (float64, bool) {
	i0, i1, ok := e.sampleRange(t0, t1, acc, e.cfg.AccMinSamples)
	if !ok {
		return 0, false
	}

	mag := make([]float64, 0, i1-i0)
	for i := i0; i < i1; i++ {
		var sum float64
		for _, ch := range acc.Channels {
			v := ch[i] * e.cfg.AccScaleG
			sum += v * v
		}
		mag = append(mag, math.Sqrt(sum))
	}
	return stat.StdDev(mag, nil), true
}
