// Package wesad loads multi-subject stress-study recordings from per-device
// CSV exports into raw sample arrays with exact sampling rates.
//
// Each subject lives in a directory named S<number> under the dataset root
// and contains one CSV per channel: TEMP.csv (wrist temperature, 1 column),
// ACC.csv (wrist accelerometer, 3 columns of raw 1/64 g units), ECG.csv
// (chest heart signal, 1 column), and labels.csv (integer activity codes at
// the study reference rate). Every file starts with two header rows in the
// E4-export convention: the session start as a unix timestamp, then the
// sampling rate in Hz, one value per column.
package wesad

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/wearlab-data/stress.report/internal/dataset"
	"github.com/wearlab-data/stress.report/internal/security"
)

// Canonical sampling rates, used when a file carries no rate header.
const (
	LabelRateHz = 700.0
	TempRateHz  = 4.0
	AccRateHz   = 32.0
	ECGRateHz   = 700.0
)

var subjectDirPattern = regexp.MustCompile(`^S\d+$`)

// DiscoverSubjects lists subject directories under root, sorted by name.
func DiscoverSubjects(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read dataset root: %w", err)
	}
	var subjects []string
	for _, e := range entries {
		if e.IsDir() && subjectDirPattern.MatchString(e.Name()) {
			subjects = append(subjects, e.Name())
		}
	}
	sort.Strings(subjects)
	return subjects, nil
}

// LoadSubject reads one subject's session. A missing or unreadable channel
// file yields an error wrapping dataset.ErrMissingInput so callers can skip
// the subject and continue the run.
func LoadSubject(root, id string) (dataset.SubjectSession, error) {
	dir := filepath.Join(root, id)
	if err := security.ValidatePathWithinDirectory(dir, root); err != nil {
		return dataset.SubjectSession{}, fmt.Errorf("%w: %s: %v", dataset.ErrMissingInput, id, err)
	}

	temp, err := ReadSignalCSV(filepath.Join(dir, "TEMP.csv"), 1, TempRateHz)
	if err != nil {
		return dataset.SubjectSession{}, fmt.Errorf("%w: %s TEMP: %v", dataset.ErrMissingInput, id, err)
	}
	acc, err := ReadSignalCSV(filepath.Join(dir, "ACC.csv"), 3, AccRateHz)
	if err != nil {
		return dataset.SubjectSession{}, fmt.Errorf("%w: %s ACC: %v", dataset.ErrMissingInput, id, err)
	}
	heart, err := ReadSignalCSV(filepath.Join(dir, "ECG.csv"), 1, ECGRateHz)
	if err != nil {
		return dataset.SubjectSession{}, fmt.Errorf("%w: %s ECG: %v", dataset.ErrMissingInput, id, err)
	}
	labels, labelRate, err := ReadLabelsCSV(filepath.Join(dir, "labels.csv"), LabelRateHz)
	if err != nil {
		return dataset.SubjectSession{}, fmt.Errorf("%w: %s labels: %v", dataset.ErrMissingInput, id, err)
	}

	return dataset.SubjectSession{
		ID:          id,
		Temp:        temp,
		Acc:         acc,
		Heart:       heart,
		Labels:      labels,
		LabelRateHz: labelRate,
	}, nil
}

// LoadSubjects loads the selected subjects, skipping any whose inputs are
// missing. The returned sessions keep the input order.
func LoadSubjects(root string, ids []string, onSkip func(id string, err error)) []dataset.SubjectSession {
	var sessions []dataset.SubjectSession
	for _, id := range ids {
		s, err := LoadSubject(root, id)
		if err != nil {
			if onSkip != nil {
				onSkip(id, err)
			}
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions
}
