// Package config loads processing configuration for magnetic survey
// sessions. Fields are pointers so a partial JSON file overrides only
// what it names; the Get* accessors supply defaults for the rest.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/magnetic.report/internal/units"
)

// DefaultConfigPath is the path to the canonical processing defaults
// file, relative to the working directory.
const DefaultConfigPath = "config/processing.defaults.json"

// ProcessingConfig is the root configuration for a processing run.
type ProcessingConfig struct {
	// Smoothing params
	PolyOrder  *int `json:"poly_order,omitempty"`
	MinWindow  *int `json:"min_window,omitempty"`
	MinSamples *int `json:"min_samples,omitempty"`

	// Plot params (inches per panel)
	PlotWidthIn  *float64 `json:"plot_width_in,omitempty"`
	PlotHeightIn *float64 `json:"plot_height_in,omitempty"`

	// Reported field units label
	FieldUnits *string `json:"field_units,omitempty"`
}

// EmptyProcessingConfig returns a ProcessingConfig with all fields nil,
// so every accessor falls back to its default.
func EmptyProcessingConfig() *ProcessingConfig {
	return &ProcessingConfig{}
}

// LoadProcessingConfig loads a ProcessingConfig from a JSON file.
// Fields omitted from the file retain their defaults, so partial
// configs are safe.
func LoadProcessingConfig(path string) (*ProcessingConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyProcessingConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadDefaultProcessingConfig loads DefaultConfigPath when it exists.
// A missing defaults file is not an error; the built-in defaults apply.
func LoadDefaultProcessingConfig() (*ProcessingConfig, error) {
	if _, err := os.Stat(DefaultConfigPath); errors.Is(err, os.ErrNotExist) {
		return EmptyProcessingConfig(), nil
	}
	return LoadProcessingConfig(DefaultConfigPath)
}

// Validate checks that the configuration values are usable.
func (c *ProcessingConfig) Validate() error {
	if c.PolyOrder != nil && *c.PolyOrder < 1 {
		return fmt.Errorf("poly_order must be at least 1, got %d", *c.PolyOrder)
	}
	if c.MinWindow != nil {
		if *c.MinWindow < 3 {
			return fmt.Errorf("min_window must be at least 3, got %d", *c.MinWindow)
		}
		if *c.MinWindow%2 == 0 {
			return fmt.Errorf("min_window must be odd, got %d", *c.MinWindow)
		}
	}
	if c.MinSamples != nil && *c.MinSamples < 1 {
		return fmt.Errorf("min_samples must be positive, got %d", *c.MinSamples)
	}
	if c.PolyOrder != nil && c.MinWindow != nil && *c.PolyOrder >= *c.MinWindow {
		return fmt.Errorf("poly_order %d must be smaller than min_window %d", *c.PolyOrder, *c.MinWindow)
	}
	if c.PlotWidthIn != nil && *c.PlotWidthIn <= 0 {
		return fmt.Errorf("plot_width_in must be positive, got %f", *c.PlotWidthIn)
	}
	if c.PlotHeightIn != nil && *c.PlotHeightIn <= 0 {
		return fmt.Errorf("plot_height_in must be positive, got %f", *c.PlotHeightIn)
	}
	if c.FieldUnits != nil && !units.IsValid(*c.FieldUnits) {
		return fmt.Errorf("field_units must be one of %s, got %q", units.GetValidUnitsString(), *c.FieldUnits)
	}
	return nil
}

// GetPolyOrder returns the poly_order value or the default.
func (c *ProcessingConfig) GetPolyOrder() int {
	if c.PolyOrder == nil {
		return 2
	}
	return *c.PolyOrder
}

// GetMinWindow returns the min_window value or the default.
func (c *ProcessingConfig) GetMinWindow() int {
	if c.MinWindow == nil {
		return 5
	}
	return *c.MinWindow
}

// GetMinSamples returns the min_samples value or the default.
func (c *ProcessingConfig) GetMinSamples() int {
	if c.MinSamples == nil {
		return 10
	}
	return *c.MinSamples
}

// GetPlotWidthIn returns the plot panel width or the default.
func (c *ProcessingConfig) GetPlotWidthIn() float64 {
	if c.PlotWidthIn == nil {
		return 12.0
	}
	return *c.PlotWidthIn
}

// GetPlotHeightIn returns the plot panel height or the default.
func (c *ProcessingConfig) GetPlotHeightIn() float64 {
	if c.PlotHeightIn == nil {
		return 5.0
	}
	return *c.PlotHeightIn
}

// GetFieldUnits returns the field units label or the default.
func (c *ProcessingConfig) GetFieldUnits() string {
	if c.FieldUnits == nil {
		return units.UT
	}
	return *c.FieldUnits
}
