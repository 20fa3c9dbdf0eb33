package dataset_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wearlab-data/stress.report/internal/dataset"
	"github.com/wearlab-data/stress.report/internal/synth"
)

func testAssemblerConfig() dataset.AssemblerConfig {
	cfg := dataset.DefaultAssemblerConfig()
	cfg.MinRows = 1
	return cfg
}

func TestAssembleSplitSession(t *testing.T) {
	// 90 s baseline followed by 90 s stress with 60 s windows and stride:
	// three windows. The middle one straddles the transition with an exact
	// label tie, which resolves to baseline.
	session := synth.Session("S2", synth.DefaultSessionConfig())

	ds, err := dataset.NewAssembler(testAssemblerConfig()).Assemble([]dataset.SubjectSession{session})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if len(ds.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(ds.Rows))
	}
	wantLabels := []int{0, 0, 1}
	if diff := cmp.Diff(wantLabels, ds.Y()); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}

	for i, r := range ds.Rows {
		if r.Subject != "S2" {
			t.Errorf("row %d subject = %q, want S2", i, r.Subject)
		}
		wantT0 := float64(i) * 60.0
		if r.T0 != wantT0 || r.T1 != wantT0+60.0 {
			t.Errorf("row %d window = [%v, %v), want [%v, %v)", i, r.T0, r.T1, wantT0, wantT0+60.0)
		}
	}

	// The stress segment runs hotter and faster than baseline.
	stress := ds.Rows[2].Features
	baseline := ds.Rows[0].Features
	if stress.HRMeanBPM <= baseline.HRMeanBPM {
		t.Errorf("stress HR %v not above baseline HR %v", stress.HRMeanBPM, baseline.HRMeanBPM)
	}
	if stress.WristTempC <= baseline.WristTempC {
		t.Errorf("stress temp %v not above baseline temp %v", stress.WristTempC, baseline.WristTempC)
	}
}

func TestAssembleDeterministicOrder(t *testing.T) {
	cfgA := synth.DefaultSessionConfig()
	cfgB := synth.DefaultSessionConfig()
	cfgB.Seed = 7

	sessions := []dataset.SubjectSession{
		synth.Session("S3", cfgB),
		synth.Session("S2", cfgA),
	}

	asm := dataset.NewAssembler(testAssemblerConfig())
	first, err := asm.Assemble(sessions)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	second, err := asm.Assemble([]dataset.SubjectSession{sessions[1], sessions[0]})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if diff := cmp.Diff(first.Rows, second.Rows); diff != "" {
		t.Errorf("row order depends on input order (-first +second):\n%s", diff)
	}
	if first.Rows[0].Subject != "S2" {
		t.Errorf("first row subject = %q, want the sorted-first subject S2", first.Rows[0].Subject)
	}
}

func TestAssembleSkipsBrokenSubjects(t *testing.T) {
	good := synth.Session("S2", synth.DefaultSessionConfig())

	noLabels := synth.Session("S3", synth.DefaultSessionConfig())
	noLabels.Labels = nil

	flatHeart := synth.Session("S4", synth.DefaultSessionConfig())
	for i := range flatHeart.Heart.Channels[0] {
		flatHeart.Heart.Channels[0][i] = 0
	}

	ds, err := dataset.NewAssembler(testAssemblerConfig()).Assemble(
		[]dataset.SubjectSession{good, noLabels, flatHeart},
	)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	for i, r := range ds.Rows {
		if r.Subject != "S2" {
			t.Errorf("row %d from skipped subject %q", i, r.Subject)
		}
	}
	if len(ds.Rows) != 3 {
		t.Errorf("got %d rows from the good subject, want 3", len(ds.Rows))
	}
}

func TestAssembleInsufficientDataset(t *testing.T) {
	session := synth.Session("S2", synth.DefaultSessionConfig())

	cfg := testAssemblerConfig()
	cfg.MinRows = 50 // one subject yields only 3 windows

	_, err := dataset.NewAssembler(cfg).Assemble([]dataset.SubjectSession{session})
	if !errors.Is(err, dataset.ErrInsufficientDataset) {
		t.Fatalf("err = %v, want ErrInsufficientDataset", err)
	}
}

func TestAssembleSkipsNonTrainableWindows(t *testing.T) {
	session := synth.Session("S2", synth.DefaultSessionConfig())
	// Overwrite the middle third with a transitional code: its windows
	// are skipped, not errors.
	for i := len(session.Labels) / 3; i < 2*len(session.Labels)/3; i++ {
		session.Labels[i] = 4
	}

	ds, err := dataset.NewAssembler(testAssemblerConfig()).Assemble([]dataset.SubjectSession{session})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("got %d rows, want 2 (transitional window skipped)", len(ds.Rows))
	}
	if ds.Rows[0].Label != 0 || ds.Rows[1].Label != 1 {
		t.Errorf("labels = %d, %d, want 0, 1", ds.Rows[0].Label, ds.Rows[1].Label)
	}
}
