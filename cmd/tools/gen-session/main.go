// Command gen-session writes a synthetic subject in the per-device CSV
// export layout the trainer reads: TEMP.csv, ACC.csv, ECG.csv, and
// labels.csv under <root>/<subject>/. Intended for fixtures and smoke runs
// when no real dataset is at hand.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/wearlab-data/stress.report/internal/security"
	"github.com/wearlab-data/stress.report/internal/synth"
)

var (
	rootDir     = flag.String("root", "testdata", "Output root; the subject folder is created under it")
	subject     = flag.String("subject", "S2", "Subject ID")
	baselineS   = flag.Float64("baseline-s", 90, "Baseline segment length in seconds")
	stressS     = flag.Float64("stress-s", 90, "Stress segment length in seconds")
	baselineBPM = flag.Float64("baseline-bpm", 65, "Baseline heart rate")
	stressBPM   = flag.Float64("stress-bpm", 95, "Stress heart rate")
	seed        = flag.Int64("seed", 1, "Noise seed; fixed seed gives identical output")
)

func main() {
	flag.Parse()

	cfg := synth.DefaultSessionConfig()
	cfg.BaselineSecs = *baselineS
	cfg.StressSecs = *stressS
	cfg.BaselineBPM = *baselineBPM
	cfg.StressBPM = *stressBPM
	cfg.Seed = *seed

	id := security.SanitizeFilename(*subject)
	session := synth.Session(id, cfg)
	dir := filepath.Join(*rootDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Failed to create %s: %v", dir, err)
	}

	start := float64(time.Now().Unix())

	write := func(name string, rate float64, chans [][]float64) {
		if err := writeSignalCSV(filepath.Join(dir, name), start, rate, chans); err != nil {
			log.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	write("TEMP.csv", session.Temp.RateHz, session.Temp.Channels)
	write("ACC.csv", session.Acc.RateHz, session.Acc.Channels)
	write("ECG.csv", session.Heart.RateHz, session.Heart.Channels)

	if err := writeLabelsCSV(filepath.Join(dir, "labels.csv"), start, session.LabelRateHz, session.Labels); err != nil {
		log.Fatalf("Failed to write labels.csv: %v", err)
	}

	log.Printf("Wrote synthetic subject %s under %s (%.0f s baseline + %.0f s stress)",
		id, dir, *baselineS, *stressS)
}

// writeSignalCSV emits the E4-export convention: a start-time row and a
// rate row (one value per column), then the samples.
func writeSignalCSV(path string, start, rate float64, chans [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
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
	if err := w.Write(header(start)); err != nil {
		return err
	}
	if err := w.Write(header(rate)); err != nil {
		return err
	}

	n := len(chans[0])
	row := make([]string, cols)
	for i := 0; i < n; i++ {
		for c := 0; c < cols; c++ {
			row[c] = strconv.FormatFloat(chans[c][i], 'f', 6, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeLabelsCSV(path string, start, rate float64, labels []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{strconv.FormatFloat(start, 'f', 2, 64)}); err != nil {
		return err
	}
	if err := w.Write([]string{strconv.FormatFloat(rate, 'f', 2, 64)}); err != nil {
		return err
	}
	for _, l := range labels {
		if err := w.Write([]string{strconv.Itoa(l)}); err != nil {
			return err
		}
	}
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
