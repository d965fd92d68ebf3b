package app

import (
	"errors"
	"fmt"
	"math"

	"github.com/vk/trccalc/internal/bode"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Device string
	Range  string

	// Capacitance (F) and Bandwidth (Hz) are zero when not provided.
	Capacitance float64
	Bandwidth   float64

	// PlotPath, when set, receives a Bode plot of the compensation network.
	PlotPath string

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	var errs []error

	if !validQuantity(cfg.Capacitance) {
		errs = append(errs, fmt.Errorf("capacitance must be a finite number greater than zero, got %v", cfg.Capacitance))
	}
	if !validQuantity(cfg.Bandwidth) {
		errs = append(errs, fmt.Errorf("bandwidth must be a finite number greater than zero, got %v", cfg.Bandwidth))
	}
	if cfg.PlotPath != "" {
		if _, err := bode.FormatFromPath(cfg.PlotPath); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validQuantity accepts zero, meaning "not provided", or a positive finite value.
func validQuantity(v float64) bool {
	return v == 0 || (v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v))
}
