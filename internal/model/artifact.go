package model

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/wearlab-data/stress.report/internal/dataset"
)

// Meta describes how an artifact was produced.
type Meta struct {
	Source     string         `json:"source"`
	Labels     map[string]int `json:"labels"`
	WindowSecs float64        `json:"window_s"`
	StrideSecs float64        `json:"stride_s"`
	Notes      string         `json:"notes"`
	RunID      string         `json:"run_id,omitempty"`
	CreatedAt  string         `json:"created_at,omitempty"`
}

// Artifact is the serialized training output consumed by the downstream
// scoring app: baseline priors, fitted weights, and the intercept. It is
// never mutated after creation.
type Artifact struct {
	Meta    Meta               `json:"meta"`
	Priors  map[string]Prior   `json:"priors"`
	Weights map[string]float64 `json:"weights"`
	Bias    float64            `json:"bias"`
}

// NewArtifact assembles the output artifact with a fresh run ID.
func NewArtifact(source, notes string, windowSecs, strideSecs float64, priors map[string]Prior, fit Fitted) *Artifact {
	return &Artifact{
		Meta: Meta{
			Source: source,
			Labels: map[string]int{
				"baseline": dataset.LabelBaseline,
				"stress":   dataset.LabelStress,
			},
			WindowSecs: windowSecs,
			StrideSecs: strideSecs,
			Notes:      notes,
			RunID:      uuid.New().String(),
			CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		},
		Priors:  priors,
		Weights: fit.Weights,
		Bias:    fit.Bias,
	}
}

// WriteFile serializes the artifact as indented JSON.
func (a *Artifact) WriteFile(path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

// ReadArtifact loads an artifact back from disk.
func ReadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	return &a, nil
}
