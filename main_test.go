package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wearlab-data/stress.report/internal/dataset"
	"github.com/wearlab-data/stress.report/internal/features"
	"github.com/wearlab-data/stress.report/internal/model"
	"github.com/wearlab-data/stress.report/internal/monitoring"
	"github.com/wearlab-data/stress.report/internal/store"
	"github.com/wearlab-data/stress.report/internal/synth"
)

func writeSignalFixture(t *testing.T, path string, rate float64, chans [][]float64) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	cols := len(chans)
	header := func(v float64) []string {
		row := make([]string, cols)
		for c := range row {
			row[c] = strconv.FormatFloat(v, 'f', 2, 64)
		}
		return row
	}
	require.NoError(t, w.Write(header(1700000000)))
	require.NoError(t, w.Write(header(rate)))

	row := make([]string, cols)
	for i := range chans[0] {
		for c := 0; c < cols; c++ {
			row[c] = strconv.FormatFloat(chans[c][i], 'f', 6, 64)
		}
		require.NoError(t, w.Write(row))
	}
}

func writeLabelsFixture(t *testing.T, path string, rate float64, labels []int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	require.NoError(t, w.Write([]string{"1700000000"}))
	require.NoError(t, w.Write([]string{strconv.FormatFloat(rate, 'f', 2, 64)}))
	for _, l := range labels {
		require.NoError(t, w.Write([]string{strconv.Itoa(l)}))
	}
}

// writeSubjectFixture materializes a synthetic session in the CSV layout the
// trainer reads. Lower sampling rates than the study's keep the test fast
// without changing the pipeline's behavior.
func writeSubjectFixture(t *testing.T, root, id string) {
	t.Helper()
	cfg := synth.DefaultSessionConfig()
	cfg.ECGRateHz = 250
	cfg.LabelRateHz = 250
	session := synth.Session(id, cfg)

	dir := filepath.Join(root, id)
	require.NoError(t, os.MkdirAll(dir, 0755))
	writeSignalFixture(t, filepath.Join(dir, "TEMP.csv"), session.Temp.RateHz, session.Temp.Channels)
	writeSignalFixture(t, filepath.Join(dir, "ACC.csv"), session.Acc.RateHz, session.Acc.Channels)
	writeSignalFixture(t, filepath.Join(dir, "ECG.csv"), session.Heart.RateHz, session.Heart.Channels)
	writeLabelsFixture(t, filepath.Join(dir, "labels.csv"), session.LabelRateHz, session.Labels)
}

func TestTrainEndToEnd(t *testing.T) {
	monitoring.SetLogger(nil)
	defer monitoring.SetLogger(nil)

	root := t.TempDir()
	out := t.TempDir()
	writeSubjectFixture(t, root, "S2")

	asm := dataset.DefaultAssemblerConfig()
	asm.MinRows = 1
	cfg := runConfig{
		root:       root,
		out:        filepath.Join(out, "priors.json"),
		dbPath:     filepath.Join(out, "runs.db"),
		reportPath: filepath.Join(out, "report.html"),
		assembler:  asm,
		fitter:     model.DefaultFitterConfig(),
	}
	require.NoError(t, run(cfg))

	artifact, err := model.ReadArtifact(cfg.out)
	require.NoError(t, err)

	// A 90 s baseline + 90 s stress session at window/stride 60 yields three
	// windows; the middle one straddles the transition and its exact label
	// tie resolves to baseline.
	assert.Equal(t, "WESAD", artifact.Meta.Source)
	assert.Equal(t, 60.0, artifact.Meta.WindowSecs)
	assert.Equal(t, map[string]int{"baseline": 1, "stress": 2}, artifact.Meta.Labels)
	for _, name := range features.Names {
		assert.Contains(t, artifact.Priors, name)
		assert.Contains(t, artifact.Weights, name)
	}
	assert.Zero(t, artifact.Bias)
	assert.Greater(t, artifact.Weights[features.NameHRMeanBPM], 0.0,
		"stress windows run faster than the baseline prior")
	// The clean baseline window sits near 65 bpm; the straddling window's
	// median gate keeps the faster stress-side intervals, so the baseline
	// prior averages the two.
	assert.InDelta(t, 80.0, artifact.Priors[features.NameHRMeanBPM].Mean, 5.0)

	st, err := store.Open(cfg.dbPath)
	require.NoError(t, err)
	defer st.Close()
	storedRun, err := st.GetRun(artifact.Meta.RunID)
	require.NoError(t, err)
	assert.Equal(t, 3, storedRun.RowCount)
	assert.Equal(t, 2, storedRun.BaselineRows)
	assert.Equal(t, 1, storedRun.StressRows)
	assert.NotEmpty(t, storedRun.ArtifactJSON)
	n, err := st.CountRows(artifact.Meta.RunID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	info, err := os.Stat(cfg.reportPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRunFailsOnThinDataset(t *testing.T) {
	monitoring.SetLogger(nil)
	defer monitoring.SetLogger(nil)

	root := t.TempDir()
	writeSubjectFixture(t, root, "S2")

	cfg := runConfig{
		root:      root,
		out:       filepath.Join(t.TempDir(), "priors.json"),
		assembler: dataset.DefaultAssemblerConfig(), // MinRows 50 vs 3 windows
		fitter:    model.DefaultFitterConfig(),
	}
	err := run(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrInsufficientDataset)
}

func TestRunNoSubjects(t *testing.T) {
	cfg := runConfig{
		root:      t.TempDir(),
		out:       filepath.Join(t.TempDir(), "priors.json"),
		assembler: dataset.DefaultAssemblerConfig(),
		fitter:    model.DefaultFitterConfig(),
	}
	assert.Error(t, run(cfg))
}
