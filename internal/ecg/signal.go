// Package ecg implements the chest-signal processing stack used to derive
// heartbeat timings from raw recordings: a zero-phase FFT bandpass filter,
// a moving-average smoother, an amplitude-thresholded peak detector, and
// the QRS-style pipeline that combines them.
package ecg

import (
	"fmt"
	"time"
)

// Signal is a uniformly sampled recording of one or more channels.
// Channels are stored channel-major: Channels[c][i] is sample i of channel c,
// and all channels have the same length.
type Signal struct {
	Channels [][]float64
	RateHz   float64

	// Start is the session start time if the source format carries one.
	// Zero value means unknown.
	Start time.Time
}

// NewSignal builds a single-channel Signal.
func NewSignal(samples []float64, rateHz float64) Signal {
	return Signal{Channels: [][]float64{samples}, RateHz: rateHz}
}

// Len returns the per-channel sample count.
func (s Signal) Len() int {
	if len(s.Channels) == 0 {
		return 0
	}
	return len(s.Channels[0])
}

// DurationSecs returns the recording length in seconds.
func (s Signal) DurationSecs() float64 {
	if s.RateHz <= 0 {
		return 0
	}
	return float64(s.Len()) / s.RateHz
}

// Channel returns channel c, or nil if out of range.
func (s Signal) Channel(c int) []float64 {
	if c < 0 || c >= len(s.Channels) {
		return nil
	}
	return s.Channels[c]
}

// Validate checks the Signal invariants: a positive sampling rate and
// equal-length channels.
func (s Signal) Validate() error {
	if s.RateHz <= 0 {
		return fmt.Errorf("invalid sampling rate %.3f Hz", s.RateHz)
	}
	for c := 1; c < len(s.Channels); c++ {
		if len(s.Channels[c]) != len(s.Channels[0]) {
			return fmt.Errorf("channel %d has %d samples, channel 0 has %d",
				c, len(s.Channels[c]), len(s.Channels[0]))
		}
	}
	return nil
}
