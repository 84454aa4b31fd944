package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hupe1980/interop"
)

// Exit codes mirror the instrument tooling conventions so batch scripts
// can distinguish "nothing to do" from real failures.
const (
	exitOK               = 0
	exitInvalidArguments = 1
	exitNoMetricsFound   = 2
	exitBadFormat        = 3
	exitUnexpected       = 4
)

func main() {
	app := rootCmd()
	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "cyclesim:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		return exitInvalidArguments
	case errors.Is(err, interop.ErrNoMetricsFound):
		return exitNoMetricsFound
	case errors.Is(err, interop.ErrBadFormat):
		return exitBadFormat
	default:
		return exitUnexpected
	}
}
