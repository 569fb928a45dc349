// SPDX-License-Identifier: EPL-2.0

// Command wavrec records, converts and inspects PCM WAV files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, rest, err := parseGlobal(args, stderr)
	if err != nil {
		return exitCode(err, stderr)
	}
	if len(rest) == 0 {
		printUsage(stderr)
		return 2
	}

	logger := cfg.logger(stderr)

	switch rest[0] {
	case "record":
		err = runRecord(ctx, rest[1:], stdout, stderr, logger)
	case "convert":
		err = runConvert(ctx, rest[1:], stdout, stderr, logger)
	case "inspect":
		err = runInspect(rest[1:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, rest[0])
	}

	if err != nil {
		return exitCode(err, stderr)
	}
	return 0
}

func exitCode(err error, stderr io.Writer) int {
	switch {
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, "Error:", err)
		printUsage(stderr)
		return 2
	default:
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
}
