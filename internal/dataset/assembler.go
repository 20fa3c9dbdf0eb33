// Package dataset slides a labelled window across each subject's session,
// extracts per-window feature vectors, and accumulates the accepted
// (features, label) pairs into the training dataset.
package dataset

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wearlab-data/stress.report/internal/ecg"
	"github.com/wearlab-data/stress.report/internal/features"
	"github.com/wearlab-data/stress.report/internal/hrv"
	"github.com/wearlab-data/stress.report/internal/monitoring"
)

// SubjectSession is one subject's complete recording as supplied by the
// session loader: synchronized raw signals plus the high-rate ground-truth
// activity label track.
type SubjectSession struct {
	ID string

	Temp  ecg.Signal // wrist temperature, 1 channel
	Acc   ecg.Signal // wrist accelerometer, 3 channels, raw 1/64 g units
	Heart ecg.Signal // chest heart signal, 1+ channels

	Labels      []int
	LabelRateHz float64
}

// Row is one accepted window: its features, binary label (1 = stress), and
// enough provenance to inspect it later.
type Row struct {
	Subject  string
	T0, T1   float64
	Features features.WindowFeatures
	Label    int
}

// Dataset is the ordered collection of accepted rows across all subjects.
// It grows only during assembly and is read-only once fitting begins.
type Dataset struct {
	Rows []Row
}

// X returns the feature matrix, one row per accepted window.
func (d *Dataset) X() [][]float64 {
	out := make([][]float64, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r.Features.Row()
	}
	return out
}

// Y returns the binary labels parallel to X.
func (d *Dataset) Y() []int {
	out := make([]int, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r.Label
	}
	return out
}

// AssemblerConfig configures windowing and acceptance thresholds.
type AssemblerConfig struct {
	WindowSecs float64
	StrideSecs float64

	// MinRows is the dataset-level acceptance floor. Fewer accepted rows
	// than this aborts the whole run: priors fitted from too few samples
	// are not trustworthy.
	MinRows int

	// Workers bounds concurrent per-subject processing. Subjects are
	// independent, so this only changes wall time; rows are concatenated
	// in sorted subject order either way to keep output deterministic.
	Workers int

	Extractor features.ExtractorConfig
}

// DefaultAssemblerConfig returns the canonical assembly parameters.
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{
		WindowSecs: 60.0,
		StrideSecs: 60.0,
		MinRows:    50,
		Workers:    4,
		Extractor:  features.DefaultExtractorConfig(),
	}
}

// Assembler builds the training dataset from subject sessions.
type Assembler struct {
	cfg       AssemblerConfig
	extractor *features.Extractor
}

// NewAssembler builds an Assembler with the given configuration.
func NewAssembler(cfg AssemblerConfig) *Assembler {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Assembler{cfg: cfg, extractor: features.NewExtractor(cfg.Extractor)}
}

// Assemble processes every session and returns the accumulated dataset.
// Subjects with missing inputs or too few detected heartbeats are skipped
// with a log line; the run only fails when the final dataset is smaller
// than MinRows.
func (a *Assembler) Assemble(sessions []SubjectSession) (*Dataset, error) {
	sorted := make([]SubjectSession, len(sessions))
	copy(sorted, sessions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	perSubject := make([][]Row, len(sorted))
	var mu sync.Mutex
	collected := 0

	var g errgroup.Group
	g.SetLimit(a.cfg.Workers)
	for i := range sorted {
		g.Go(func() error {
			rows, err := a.assembleSubject(sorted[i])
			if err != nil {
				monitoring.Logf("[skip] %s: %v", sorted[i].ID, err)
				return nil
			}
			mu.Lock()
			perSubject[i] = rows
			collected += len(rows)
			mu.Unlock()
			monitoring.Logf("[ok] %s: %d windows accepted", sorted[i].ID, len(rows))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds := &Dataset{}
	for _, rows := range perSubject {
		ds.Rows = append(ds.Rows, rows...)
	}

	if len(ds.Rows) < a.cfg.MinRows {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrInsufficientDataset, len(ds.Rows), a.cfg.MinRows)
	}
	return ds, nil
}

// assembleSubject runs the window loop over one session.
func (a *Assembler) assembleSubject(s SubjectSession) ([]Row, error) {
	if len(s.Labels) == 0 || s.LabelRateHz <= 0 {
		return nil, fmt.Errorf("%w: labels", ErrMissingInput)
	}
	if s.Temp.Len() == 0 || s.Acc.Len() == 0 || s.Heart.Len() == 0 {
		return nil, fmt.Errorf("%w: temp/acc/heart signals", ErrMissingInput)
	}

	peaks := ecg.HeartbeatPeaks(s.Heart.Channel(0), s.Heart.RateHz)
	ibi := hrv.FromPeaks(peaks, s.Heart.RateHz)
	if ibi.Len() < 2 {
		return nil, fmt.Errorf("%w: %d intervals from %d peaks", ErrInsufficientPeaks, ibi.Len(), len(peaks))
	}

	duration := minFloat(
		float64(len(s.Labels))/s.LabelRateHz,
		s.Temp.DurationSecs(),
		s.Acc.DurationSecs(),
		s.Heart.DurationSecs(),
	)

	var rows []Row
	for t := 0.0; t+a.cfg.WindowSecs <= duration; t += a.cfg.StrideSecs {
		t0, t1 := t, t+a.cfg.WindowSecs

		i0 := int(t0 * s.LabelRateHz)
		i1 := int(t1 * s.LabelRateHz)
		if i1 > len(s.Labels) {
			i1 = len(s.Labels)
		}
		if i0 >= i1 {
			break
		}

		maj := MajorityLabel(s.Labels[i0:i1])
		if maj != LabelBaseline && maj != LabelStress {
			continue
		}

		f, ok := a.extractor.Extract(t0, t1, s.Temp, s.Acc, ibi)
		if !ok {
			continue
		}

		label := 0
		if maj == LabelStress {
			label = 1
		}
		rows = append(rows, Row{Subject: s.ID, T0: t0, T1: t1, Features: f, Label: label})
	}
	return rows, nil
}

func minFloat(first float64, rest ...float64) float64 {
	m := first
	for _, v := range rest {
		if v < m {
			m = v
		}
	}
	return m
}
