// Package synth generates deterministic WESAD-style sessions: an ECG-like
// chest trace built from gaussian bumps, slow-drifting wrist temperature,
// and low-amplitude accelerometer motion. Used by tests and by the
// gen-session fixture tool; the waveforms are plausible, not clinical.
package synth

import (
	"math"
	"math/rand"

	"github.com/wearlab-data/stress.report/internal/dataset"
	"github.com/wearlab-data/stress.report/internal/ecg"
)

func gauss(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}

// ECG produces durSecs of an ECG-like trace at fsHz with a constant heart
// rate. Each cycle carries P, QRS, and T bumps; noise is drawn from rng so
// output is reproducible for a fixed seed.
func ECG(durSecs, fsHz, bpm, noise float64, rng *rand.Rand) []float64 {
	n := int(durSecs * fsHz)
	out := make([]float64, n)
	cycleHz := bpm / 60.0
	for i := range out {
		t := float64(i) / fsHz
		phase := math.Mod(t*cycleHz, 1.0)

		v := 0.08 * gauss(phase, 0.18, 0.03)  // P
		v -= 0.12 * gauss(phase, 0.30, 0.01)  // Q
		v += 1.00 * gauss(phase, 0.32, 0.008) // R
		v -= 0.25 * gauss(phase, 0.35, 0.012) // S
		v += 0.25 * gauss(phase, 0.60, 0.06)  // T
		if noise > 0 && rng != nil {
			v += noise * (2*rng.Float64() - 1)
		}
		out[i] = v
	}
	return out
}

// Temp produces a wrist temperature trace around baseC with slow drift.
func Temp(durSecs, fsHz, baseC float64, rng *rand.Rand) []float64 {
	n := int(durSecs * fsHz)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / fsHz
		v := baseC + 0.2*math.Sin(2*math.Pi*t/300.0)
		if rng != nil {
			v += 0.02 * (2*rng.Float64() - 1)
		}
		out[i] = v
	}
	return out
}

// Acc produces a 3-axis accelerometer trace in raw 1/64 g units: gravity on
// the z axis plus small periodic wrist motion.
func Acc(durSecs, fsHz, motionG float64, rng *rand.Rand) [][]float64 {
	n := int(durSecs * fsHz)
	chans := make([][]float64, 3)
	for c := range chans {
		chans[c] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		t := float64(i) / fsHz
		jitter := func() float64 {
			if rng == nil {
				return 0
			}
			return 0.005 * (2*rng.Float64() - 1)
		}
		chans[0][i] = 64.0 * (motionG*math.Sin(2*math.Pi*1.1*t) + jitter())
		chans[1][i] = 64.0 * (motionG*math.Cos(2*math.Pi*0.7*t) + jitter())
		chans[2][i] = 64.0 * (1.0 + motionG*math.Sin(2*math.Pi*0.3*t) + jitter())
	}
	return chans
}

// SessionConfig shapes a synthetic subject.
type SessionConfig struct {
	BaselineSecs float64
	StressSecs   float64

	BaselineBPM float64
	StressBPM   float64

	ECGRateHz   float64
	TempRateHz  float64
	AccRateHz   float64
	LabelRateHz float64

	Seed int64
}

// DefaultSessionConfig returns a 90 s baseline + 90 s stress subject at the
// study's canonical sampling rates.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		BaselineSecs: 90,
		StressSecs:   90,
		BaselineBPM:  65,
		StressBPM:    95,
		ECGRateHz:    700,
		TempRateHz:   4,
		AccRateHz:    32,
		LabelRateHz:  700,
		Seed:         1,
	}
}

// Session builds a complete synthetic SubjectSession: a baseline segment
// followed by a stress segment with a faster heart rate, warmer skin, and
// more motion.
func Session(id string, cfg SessionConfig) dataset.SubjectSession {
	rng := rand.New(rand.NewSource(cfg.Seed))
	total := cfg.BaselineSecs + cfg.StressSecs

	heart := append(
		ECG(cfg.BaselineSecs, cfg.ECGRateHz, cfg.BaselineBPM, 0.02, rng),
		ECG(cfg.StressSecs, cfg.ECGRateHz, cfg.StressBPM, 0.02, rng)...,
	)
	temp := append(
		Temp(cfg.BaselineSecs, cfg.TempRateHz, 33.0, rng),
		Temp(cfg.StressSecs, cfg.TempRateHz, 33.8, rng)...,
	)

	accBase := Acc(cfg.BaselineSecs, cfg.AccRateHz, 0.02, rng)
	accStress := Acc(cfg.StressSecs, cfg.AccRateHz, 0.08, rng)
	acc := make([][]float64, 3)
	for c := range acc {
		acc[c] = append(accBase[c], accStress[c]...)
	}

	labels := make([]int, int(total*cfg.LabelRateHz))
	split := int(cfg.BaselineSecs * cfg.LabelRateHz)
	for i := range labels {
		if i < split {
			labels[i] = dataset.LabelBaseline
		} else {
			labels[i] = dataset.LabelStress
		}
	}

	return dataset.SubjectSession{
		ID:          id,
		Temp:        ecg.Signal{Channels: [][]float64{temp}, RateHz: cfg.TempRateHz},
		Acc:         ecg.Signal{Channels: acc, RateHz: cfg.AccRateHz},
		Heart:       ecg.Signal{Channels: [][]float64{heart}, RateHz: cfg.ECGRateHz},
		Labels:      labels,
		LabelRateHz: cfg.LabelRateHz,
	}
}
