// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/wavrec/internal/env"
	"github.com/ik5/wavrec/utils"
)

var errUsage = errors.New("usage")

// globalConfig holds the flags accepted before the subcommand name.
type globalConfig struct {
	verbose   bool
	logFormat string
}

func parseGlobal(args []string, stderr io.Writer) (globalConfig, []string, error) {
	var cfg globalConfig

	fs := flag.NewFlagSet("wavrec", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }
	fs.BoolVar(&cfg.verbose, "v", env.Bool("WAVREC_VERBOSE", false), "enable debug logging")
	fs.StringVar(&cfg.logFormat, "log-format", env.Str("WAVREC_LOG_FORMAT", "text"), "log format: text or json")

	if err := fs.Parse(args); err != nil {
		return cfg, nil, err
	}

	switch cfg.logFormat {
	case "text", "json":
	default:
		return cfg, nil, fmt.Errorf("%w: unknown log format %q", errUsage, cfg.logFormat)
	}

	return cfg, fs.Args(), nil
}

func (c globalConfig) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.logFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// outputConfig holds the flags shared by record and convert.
type outputConfig struct {
	out  string
	rate int
	bits int
	mono bool
}

func (o *outputConfig) register(fs *flag.FlagSet, defaultRate int) {
	fs.StringVar(&o.out, "o", "", "output WAV file (must not exist)")
	fs.IntVar(&o.rate, "rate", env.Int("WAVREC_RATE", defaultRate), "output sample rate in Hz")
	fs.IntVar(&o.bits, "bits", env.Int("WAVREC_BITS", 16), "output bits per sample (8, 16, 24 or 32)")
	fs.BoolVar(&o.mono, "mono", env.Bool("WAVREC_MONO", false), "downmix to a single channel")
}

func (o outputConfig) validate() error {
	if o.out == "" {
		return fmt.Errorf("%w: -o is required", errUsage)
	}
	if o.rate < 0 {
		return fmt.Errorf("%w: -rate must not be negative", errUsage)
	}
	if !utils.SupportedBitDepth(o.bits) {
		return fmt.Errorf("%w: -bits must be 8, 16, 24 or 32, got %d", errUsage, o.bits)
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `usage: wavrec [-v] [-log-format text|json] <command> [flags]

commands:
  record   record a sine tone to a new WAV file
  convert  convert a wav, mp3, ogg or aiff file to a new WAV file
  inspect  print the header of one or more WAV files

environment:
  WAVREC_VERBOSE, WAVREC_LOG_FORMAT, WAVREC_RATE, WAVREC_BITS, WAVREC_MONO,
  WAVREC_CHANNELS, WAVREC_FREQ, WAVREC_AMPLITUDE, WAVREC_DURATION
`)
}
