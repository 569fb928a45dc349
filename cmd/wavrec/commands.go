// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ik5/wavrec"
	"github.com/ik5/wavrec/audio"
	"github.com/ik5/wavrec/formats/wav"
	"github.com/ik5/wavrec/internal/env"
	"github.com/ik5/wavrec/recorder"
)

func runRecord(ctx context.Context, args []string, stdout, stderr io.Writer, logger *slog.Logger) error {
	var (
		out       outputConfig
		channels  int
		freq      float64
		amplitude float64
		duration  time.Duration
	)

	fs := flag.NewFlagSet("record", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out.register(fs, wav.SampleRate44100)
	fs.IntVar(&channels, "channels", env.Int("WAVREC_CHANNELS", wav.ChannelMono), "number of channels")
	fs.Float64Var(&freq, "freq", env.Float("WAVREC_FREQ", 440), "tone frequency in Hz")
	fs.Float64Var(&amplitude, "amplitude", env.Float("WAVREC_AMPLITUDE", 0.5), "tone amplitude in (0, 1]")
	fs.DurationVar(&duration, "duration", env.Duration("WAVREC_DURATION", time.Second), "recording length")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := out.validate(); err != nil {
		return err
	}
	if out.rate == 0 {
		return fmt.Errorf("%w: -rate must be positive", errUsage)
	}
	if duration < 0 {
		return fmt.Errorf("%w: -duration must not be negative", errUsage)
	}

	frames := int(duration.Seconds() * float64(out.rate))
	src, err := audio.NewToneSource(out.rate, channels, freq, float32(amplitude), frames)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	w := wav.NewWriter(wav.OSFS{}, logger)
	stats, err := recorder.Record(ctx, src, w, out.out, recorder.Options{
		BitsPerSample: out.bits,
		Mono:          out.mono,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	printStats(stdout, out.out, stats)
	return nil
}

func runConvert(ctx context.Context, args []string, stdout, stderr io.Writer, logger *slog.Logger) error {
	var out outputConfig

	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out.register(fs, 0)

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := out.validate(); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: convert takes exactly one input file", errUsage)
	}

	stats, err := wavrec.ConvertFile(ctx, fs.Arg(0), out.out, recorder.Options{
		BitsPerSample: out.bits,
		SampleRate:    out.rate,
		Mono:          out.mono,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	printStats(stdout, out.out, stats)
	return nil
}

func runInspect(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w", err)
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: inspect needs at least one file", errUsage)
	}

	for _, path := range fs.Args() {
		if err := inspectFile(stdout, path); err != nil {
			return err
		}
	}
	return nil
}

func inspectFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer f.Close()

	h, err := wav.ReadHeader(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	format := h.Format()
	fmt.Fprintf(w, "%s:\n", path)
	fmt.Fprintf(w, "  format:      %s\n", format)
	fmt.Fprintf(w, "  byte rate:   %d\n", h.ByteRate)
	fmt.Fprintf(w, "  block align: %d\n", h.BlockAlign)
	fmt.Fprintf(w, "  riff size:   %d\n", h.RIFFSize)
	fmt.Fprintf(w, "  data size:   %d\n", h.DataSize)
	fmt.Fprintf(w, "  duration:    %s\n", format.Duration(h.DataSize))

	if h.FileSize() != info.Size() {
		fmt.Fprintf(w, "  warning:     header declares %d bytes, file has %d\n", h.FileSize(), info.Size())
	}
	return nil
}

func printStats(w io.Writer, path string, s recorder.Stats) {
	fmt.Fprintf(w, "%s: %s, %d frames, %d bytes, %s\n", path, s.Format, s.Frames, s.FileSize, s.Duration)
}
