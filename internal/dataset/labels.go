package dataset

// Activity label codes from the source dataset's protocol. Baseline and
// stress are the only trainable classes; every other code (transitional,
// meditation, undefined) means the window is skipped.
const (
	LabelBaseline = 1
	LabelStress   = 2
)

// MajorityLabel returns the most frequent label in the slice. Ties resolve
// toward the lowest label code; this tie-break is load-bearing for windows
// straddling two activities and must not change. Returns -1 for an empty
// slice or if any label is negative.
func MajorityLabel(labels []int) int {
	if len(labels) == 0 {
		return -1
	}
	maxCode := 0
	for _, l := range labels {
		if l < 0 {
			return -1
		}
		if l > maxCode {
			maxCode = l
		}
	}

	counts := make([]int, maxCode+1)
	for _, l := range labels {
		counts[l]++
	}

	best := 0
	for code, n := range counts {
		// Strict > keeps the lowest code on ties.
		if n > counts[best] {
			best = code
		}
	}
	return best
}
