package wesad

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wearlab-data/stress.report/internal/ecg"
)

// ReadSignalCSV parses an E4-style channel export: a unix start-time row, a
// sampling-rate row, then one sample row per tick with the expected number
// of columns. fallbackRateHz is used when the rate header is absent or
// non-positive.
func ReadSignalCSV(path string, channels int, fallbackRateHz float64) (ecg.Signal, error) {
	records, err := readCSV(path)
	if err != nil {
		return ecg.Signal{}, err
	}
	if len(records) < 2 {
		return ecg.Signal{}, fmt.Errorf("%s: need start and rate header rows", path)
	}

	start, err := parseFloatCell(records[0][0])
	if err != nil {
		return ecg.Signal{}, fmt.Errorf("%s: start header: %w", path, err)
	}
	rate, err := parseFloatCell(records[1][0])
	if err != nil || rate <= 0 {
		rate = fallbackRateHz
	}

	data := make([][]float64, channels)
	for c := range data {
		data[c] = make([]float64, 0, len(records)-2)
	}
	for i, rec := range records[2:] {
		if len(rec) < channels {
			return ecg.Signal{}, fmt.Errorf("%s: row %d has %d columns, want %d", path, i+3, len(rec), channels)
		}
		for c := 0; c < channels; c++ {
			v, err := parseFloatCell(rec[c])
			if err != nil {
				return ecg.Signal{}, fmt.Errorf("%s: row %d col %d: %w", path, i+3, c+1, err)
			}
			data[c] = append(data[c], v)
		}
	}

	sig := ecg.Signal{Channels: data, RateHz: rate}
	if start > 0 {
		sec, frac := math.Modf(start)
		sig.Start = time.Unix(int64(sec), int64(frac*1e9)).UTC()
	}
	if err := sig.Validate(); err != nil {
		return ecg.Signal{}, fmt.Errorf("%s: %w", path, err)
	}
	return sig, nil
}

// ReadLabelsCSV parses the activity label track: the same two header rows as
// a signal export, then one integer code per row.
func ReadLabelsCSV(path string, fallbackRateHz float64) ([]int, float64, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, 0, err
	}
	if len(records) < 2 {
		return nil, 0, fmt.Errorf("%s: need start and rate header rows", path)
	}

	rate, err := parseFloatCell(records[1][0])
	if err != nil || rate <= 0 {
		rate = fallbackRateHz
	}

	labels := make([]int, 0, len(records)-2)
	for i, rec := range records[2:] {
		v, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, 0, fmt.Errorf("%s: row %d: invalid label %q", path, i+3, rec[0])
		}
		labels = append(labels, v)
	}
	return labels, rate, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

func parseFloatCell(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
