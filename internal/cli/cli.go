package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/trccalc/internal/app"
	"github.com/vk/trccalc/internal/siunit"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("trccalc", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
trccalc - Custom transimpedance-response compensation calculator.

Usage:
  trccalc -d DEVICE -i RANGE -c CAPACITANCE -b BANDWIDTH [options]

Omit -d to list the bundled devices, or -i to list the ranges of a device.
Capacitance and bandwidth accept SI prefixes, e.g. -c 10p -b 1M or -c "2.2 nF".

Options:
`)
		flagSet.PrintDefaults()
	}

	deviceFlag := flagSet.String("device", "", "Name of a bundled device.")
	dFlag := flagSet.String("d", "", "Name of a bundled device (shorthand).")
	rangeFlag := flagSet.String("range", "", "Feedback range of the device.")
	iFlag := flagSet.String("i", "", "Feedback range of the device (shorthand).")
	capacitanceFlag := flagSet.String("capacitance", "", "Feedback capacitance in farads.")
	cFlag := flagSet.String("c", "", "Feedback capacitance in farads (shorthand).")
	bandwidthFlag := flagSet.String("bandwidth", "", "Target gain-bandwidth in hertz.")
	bFlag := flagSet.String("b", "", "Target gain-bandwidth in hertz (shorthand).")
	plotFlag := flagSet.String("plot", "", "Write a Bode plot of the compensation to this file (.png, .svg, .pdf, ...).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	capacitance, err := parseQuantity("capacitance", firstNonEmpty(*capacitanceFlag, *cFlag), siunit.Farad)
	if err != nil {
		return nil, false, err
	}
	bandwidth, err := parseQuantity("gain bandwidth", firstNonEmpty(*bandwidthFlag, *bFlag), siunit.Hertz)
	if err != nil {
		return nil, false, err
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Device:      firstNonEmpty(*deviceFlag, *dFlag),
		Range:       firstNonEmpty(*rangeFlag, *iFlag),
		Capacitance: capacitance,
		Bandwidth:   bandwidth,
		PlotPath:    *plotFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// parseQuantity parses an optional positive quantity. An empty value yields
// zero so the app can ask for it.
func parseQuantity(name, value, unit string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	v, err := siunit.ParsePositive(value, unit)
	if err != nil {
		return 0, &ExitError{Code: 2, Message: fmt.Sprintf("could not parse %s argument %q: %v", name, value, err)}
	}
	return v, nil
}

// firstNonEmpty prefers the long flag over its shorthand.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
