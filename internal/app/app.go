package app

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/vk/trccalc/internal/device"
)

// ErrUsage marks errors after which the user has already been shown what
// arguments are missing or which values are possible.
var ErrUsage = errors.New("invalid invocation")

// DeviceCatalog is the source of device specifications.
type DeviceCatalog interface {
	List() ([]string, error)
	Load(ctx context.Context, name string) (*device.Specification, error)
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	catalog DeviceCatalog
}

// NewApp is the constructor for the main application. Results and guidance
// are written to outW, logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config, devices DeviceCatalog) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:    outW,
		logger:  logger,
		catalog: devices,
	}
}
