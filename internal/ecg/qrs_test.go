package ecg_test

import (
	"testing"

	"github.com/wearlab-data/stress.report/internal/ecg"
	"github.com/wearlab-data/stress.report/internal/synth"
)

func TestHeartbeatPeaksSyntheticECG(t *testing.T) {
	fs := 250.0
	trace := synth.ECG(60.0, fs, 60.0, 0, nil)

	peaks := ecg.HeartbeatPeaks(trace, fs)

	// One beat per second for a minute; the first and last cycles may clip.
	if len(peaks) < 55 || len(peaks) > 65 {
		t.Fatalf("detected %d peaks, want ~60", len(peaks))
	}

	// Spacing should cluster around 1 s.
	for i := 1; i < len(peaks); i++ {
		gap := float64(peaks[i]-peaks[i-1]) / fs
		if gap < 0.8 || gap > 1.2 {
			t.Errorf("gap %d-%d = %.3f s, want ~1.0 s", i-1, i, gap)
		}
	}
}

func TestHeartbeatPeaksTooShort(t *testing.T) {
	fs := 250.0
	trace := synth.ECG(4.0, fs, 60.0, 0, nil) // under the 5 s minimum

	if peaks := ecg.HeartbeatPeaks(trace, fs); len(peaks) != 0 {
		t.Errorf("got %d peaks from a 4 s recording, want none", len(peaks))
	}
}
