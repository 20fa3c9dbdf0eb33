package ecg

import (
	"testing"
)

// pulseTrain builds a zero baseline with unit impulses every period samples,
// starting at the first period.
func pulseTrain(n, period int) []float64 {
	out := make([]float64, n)
	for i := period; i < n; i += period {
		out[i] = 1.0
	}
	return out
}

func TestDetectPeaksPulseTrain(t *testing.T) {
	fs := 100.0
	period := 100 // 1 s apart, 60 bpm
	x := pulseTrain(1000, period)

	peaks := DetectPeaks(x, fs, 200.0)

	want := []int{100, 200, 300, 400, 500, 600, 700, 800, 900}
	if len(peaks) != len(want) {
		t.Fatalf("got %d peaks %v, want %d", len(peaks), peaks, len(want))
	}
	for i, p := range peaks {
		if p != want[i] {
			t.Errorf("peak %d at %d, want %d", i, p, want[i])
		}
	}

	minDist := int(fs * 60.0 / 200.0)
	for i := 1; i < len(peaks); i++ {
		if peaks[i]-peaks[i-1] < minDist {
			t.Errorf("peaks %d and %d closer than %d samples", peaks[i-1], peaks[i], minDist)
		}
	}
}

func TestDetectPeaksRefractory(t *testing.T) {
	// Two candidates 10 samples apart with minDist 30: the earlier wins.
	fs := 100.0
	x := make([]float64, 200)
	x[50] = 1.0
	x[60] = 1.0
	x[150] = 1.0

	peaks := DetectPeaks(x, fs, 200.0)

	want := []int{50, 150}
	if len(peaks) != len(want) {
		t.Fatalf("got %v, want %v", peaks, want)
	}
	for i := range want {
		if peaks[i] != want[i] {
			t.Errorf("got %v, want %v", peaks, want)
		}
	}
}

func TestDetectPeaksEdges(t *testing.T) {
	testCases := []struct {
		name string
		in   []float64
	}{
		{"empty", nil},
		{"too_short", []float64{1, 2}},
		{"flat", []float64{1, 1, 1, 1, 1}},
		{"monotonic", []float64{1, 2, 3, 4, 5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if peaks := DetectPeaks(tc.in, 100.0, 200.0); len(peaks) != 0 {
				t.Errorf("got peaks %v, want none", peaks)
			}
		})
	}
}

func TestDetectPeaksThreshold(t *testing.T) {
	// A small bump well below mean + 0.5*std of a signal dominated by
	// large pulses must be rejected.
	x := make([]float64, 300)
	x[50] = 10.0
	x[150] = 10.0
	x[250] = 0.1

	peaks := DetectPeaks(x, 100.0, 200.0)
	for _, p := range peaks {
		if p == 250 {
			t.Error("sub-threshold bump at 250 was kept")
		}
	}
	if len(peaks) != 2 {
		t.Errorf("got %v, want the two large pulses", peaks)
	}
}

func TestDetectPeaksRightTie(t *testing.T) {
	// A plateau sample equal to its right neighbour still counts as a
	// local maximum; the right neighbour does not (no strict rise).
	x := make([]float64, 64)
	x[30] = 1.0
	x[31] = 1.0

	peaks := DetectPeaks(x, 100.0, 200.0)
	if len(peaks) != 1 || peaks[0] != 30 {
		t.Errorf("got %v, want [30]", peaks)
	}
}
