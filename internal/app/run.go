package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/vk/trccalc/internal/bode"
	"github.com/vk/trccalc/internal/catalog"
	"github.com/vk/trccalc/internal/ctxlog"
	"github.com/vk/trccalc/internal/device"
	"github.com/vk/trccalc/internal/siunit"
	"github.com/vk/trccalc/internal/trc"
)

// Run executes the calculation described by cfg. Missing or unknown
// arguments print the available options and return an error wrapping
// ErrUsage. A corrupt bundled device is a programmer error and panics.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "device", cfg.Device, "range", cfg.Range)

	if cfg.Device == "" {
		a.println("You must specify a device using the -d flag! Possible options are:")
		if err := a.printDevices(); err != nil {
			return err
		}
		return fmt.Errorf("%w: missing device", ErrUsage)
	}

	spec, err := a.catalog.Load(ctx, cfg.Device)
	if err != nil {
		var corrupt *catalog.CorruptSpecError
		switch {
		case errors.Is(err, catalog.ErrUnknownDevice):
			a.println(fmt.Sprintf("Could not load device %s. Possible devices:", cfg.Device))
			if err := a.printDevices(); err != nil {
				return err
			}
			return fmt.Errorf("%w: %w", ErrUsage, err)
		case errors.As(err, &corrupt):
			// Bundled data is part of the build, so this is a programmer error.
			panic(err)
		default:
			return fmt.Errorf("failed to load device %q: %w", cfg.Device, err)
		}
	}

	if cfg.Range == "" {
		a.println("You must specify a range using the -i flag! Possible options are:")
		a.printRanges(spec)
		return fmt.Errorf("%w: missing range", ErrUsage)
	}
	if cfg.Capacitance == 0 {
		a.println("You must specify a capacitance using the -c flag! For example: -c 10p")
		return fmt.Errorf("%w: missing capacitance", ErrUsage)
	}
	if cfg.Bandwidth == 0 {
		a.println("You must specify a gain-bandwidth using the -b flag! For example: -b 1M")
		return fmt.Errorf("%w: missing bandwidth", ErrUsage)
	}

	a.logger.Debug("Calculating compensation.",
		"capacitance", cfg.Capacitance,
		"bandwidth", cfg.Bandwidth,
		"loop_delay", spec.LoopDelay,
		"max_pole_zero_ratio", spec.MaxPoleZeroRatio,
	)
	result, err := trc.Calculate(spec, cfg.Range, cfg.Capacitance, cfg.Bandwidth)
	if err != nil {
		var rangeErr *device.UnknownRangeError
		if errors.As(err, &rangeErr) {
			a.println(fmt.Sprintf("Could not find range %s for device %s. Possible options are:", rangeErr.Range, cfg.Device))
			a.printRanges(spec)
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return fmt.Errorf("calculation failed: %w", err)
	}
	a.logger.Info("Compensation calculated.",
		"pole", siunit.Format(result.Pole(), 3, siunit.Hertz),
		"zero", siunit.Format(result.Zero(), 3, siunit.Hertz),
	)

	a.println("Gain-bandwidth: " + formatFloat(result.GainBandwidth))
	a.println("Compensation frequency: " + formatFloat(result.CompensationFreq))
	a.println("Pole-zero ratio: " + formatFloat(result.PoleZeroRatio))

	if cfg.PlotPath != "" {
		if err := a.writePlot(ctx, cfg.PlotPath, result); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// writePlot renders the Bode plot of result into path.
func (a *App) writePlot(ctx context.Context, path string, result trc.CustomTrc) (err error) {
	logger := ctxlog.FromContext(ctx).With("path", path)

	format, err := bode.FormatFromPath(path)
	if err != nil {
		return err
	}
	sweep, err := bode.Sweep(result, bode.DefaultDecades, bode.DefaultPoints)
	if err != nil {
		return fmt.Errorf("failed to sample response: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create plot file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close plot file: %w", cerr)
		}
	}()

	if err := bode.Render(f, result, sweep, format); err != nil {
		return err
	}
	logger.Info("Bode plot written.", "format", format, "points", len(sweep))
	return nil
}

func (a *App) printDevices() error {
	names, err := a.catalog.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		a.println("-d " + name)
	}
	return nil
}

func (a *App) printRanges(spec *device.Specification) {
	for _, name := range spec.RangeNames() {
		a.println("-i " + name)
	}
}

func (a *App) println(line string) {
	fmt.Fprintln(a.outW, line)
}

// formatFloat renders v in its shortest round-trip form.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
