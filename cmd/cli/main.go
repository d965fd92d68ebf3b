package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/trccalc/internal/app"
	"github.com/vk/trccalc/internal/catalog"
	"github.com/vk/trccalc/internal/cli"
)

// main is the entrypoint for the trccalc application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:], catalog.Bundled()); err != nil {
		os.Exit(exitCode(err, os.Stderr))
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, logW io.Writer, args []string, devices app.DeviceCatalog) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on corrupt bundled devices, so we recover here to provide
	// a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	trcApp := app.NewApp(outW, logW, appConfig, devices)
	return trcApp.Run(context.Background(), appConfig)
}

// exitCode reports err on w where needed and returns the process exit code.
func exitCode(err error, w io.Writer) int {
	var exitErr *cli.ExitError
	switch {
	case errors.As(err, &exitErr):
		if exitErr.Message != "" {
			fmt.Fprintln(w, exitErr.Message)
		}
		return exitErr.Code
	case errors.Is(err, app.ErrUsage):
		// The available options have already been printed.
		return 2
	default:
		fmt.Fprintln(w, err)
		return 1
	}
}
