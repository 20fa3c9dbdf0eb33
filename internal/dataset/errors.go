package dataset

import "errors"

// Sentinel errors for the skip/abort split during assembly. Per-subject
// failures (missing input, too few heartbeats) skip that subject and the run
// continues; only an insufficient final dataset aborts the run.
var (
	ErrMissingInput        = errors.New("missing required signal or labels")
	ErrInsufficientPeaks   = errors.New("insufficient heartbeat peaks")
	ErrInsufficientDataset = errors.New("insufficient dataset rows")
)
