// Package config loads trainer configuration from JSON files. Fields are
// pointers so partial configs are safe: anything omitted falls back to the
// canonical default through the Get* accessors.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TrainingConfig is the optional JSON config surface of the trainer. CLI
// flags take precedence over values loaded from a file.
type TrainingConfig struct {
	WindowSecs          *float64 `json:"window_s,omitempty"`
	StrideSecs          *float64 `json:"stride_s,omitempty"`
	WeightMode          *string  `json:"weight_mode,omitempty"`
	L2Penalty           *float64 `json:"l2_penalty,omitempty"`
	MinRows             *int     `json:"min_rows,omitempty"`
	Workers             *int     `json:"workers,omitempty"`
	FlipSign            *bool    `json:"flip_sign,omitempty"`
	TargetProjectionStd *float64 `json:"target_projection_std,omitempty"`
}

// Load reads a TrainingConfig from a JSON file. Omitted fields keep their
// defaults, so partial configs are safe.
func Load(path string) (*TrainingConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &TrainingConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *TrainingConfig) Validate() error {
	if c.WindowSecs != nil && *c.WindowSecs <= 0 {
		return fmt.Errorf("window_s must be positive, got %f", *c.WindowSecs)
	}
	if c.StrideSecs != nil && *c.StrideSecs <= 0 {
		return fmt.Errorf("stride_s must be positive, got %f", *c.StrideSecs)
	}
	if c.WeightMode != nil && *c.WeightMode != "effect_size" && *c.WeightMode != "linear" {
		return fmt.Errorf("weight_mode must be effect_size or linear, got %q", *c.WeightMode)
	}
	if c.L2Penalty != nil && *c.L2Penalty < 0 {
		return fmt.Errorf("l2_penalty must be non-negative, got %f", *c.L2Penalty)
	}
	if c.MinRows != nil && *c.MinRows < 1 {
		return fmt.Errorf("min_rows must be at least 1, got %d", *c.MinRows)
	}
	if c.Workers != nil && *c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", *c.Workers)
	}
	if c.TargetProjectionStd != nil && *c.TargetProjectionStd < 0 {
		return fmt.Errorf("target_projection_std must be non-negative, got %f", *c.TargetProjectionStd)
	}
	return nil
}

// GetWindowSecs returns the window length or the default.
func (c *TrainingConfig) GetWindowSecs() float64 {
	if c.WindowSecs == nil {
		return 60.0
	}
	return *c.WindowSecs
}

// GetStrideSecs returns the stride length or the default.
func (c *TrainingConfig) GetStrideSecs() float64 {
	if c.StrideSecs == nil {
		return 60.0
	}
	return *c.StrideSecs
}

// GetWeightMode returns the weighting strategy or the default.
func (c *TrainingConfig) GetWeightMode() string {
	if c.WeightMode == nil {
		return "effect_size"
	}
	return *c.WeightMode
}

// GetL2Penalty returns the ridge penalty or the default.
func (c *TrainingConfig) GetL2Penalty() float64 {
	if c.L2Penalty == nil {
		return 1.0
	}
	return *c.L2Penalty
}

// GetMinRows returns the dataset acceptance floor or the default.
func (c *TrainingConfig) GetMinRows() int {
	if c.MinRows == nil {
		return 50
	}
	return *c.MinRows
}

// GetWorkers returns the per-subject worker bound or the default.
func (c *TrainingConfig) GetWorkers() int {
	if c.Workers == nil {
		return 4
	}
	return *c.Workers
}

// GetFlipSign reports whether fitted weights should be negated toward a
// calmer-is-higher score.
func (c *TrainingConfig) GetFlipSign() bool {
	if c.FlipSign == nil {
		return false
	}
	return *c.FlipSign
}

// GetTargetProjectionStd returns the projection rescale target, 0 meaning
// no rescaling.
func (c *TrainingConfig) GetTargetProjectionStd() float64 {
	if c.TargetProjectionStd == nil {
		return 0
	}
	return *c.TargetProjectionStd
}
