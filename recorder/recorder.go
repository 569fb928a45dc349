// SPDX-License-Identifier: EPL-2.0

// Package recorder streams an audio.Source into a WAV file through
// wav.Writer.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/ik5/wavrec/audio"
	"github.com/ik5/wavrec/formats/wav"
	"github.com/ik5/wavrec/utils"
)

const (
	DefaultChunkFrames = 4096

	// maxEmptyReads bounds consecutive reads that return neither samples
	// nor an error.
	maxEmptyReads = 64
)

// Options controls how samples are converted before they are written.
type Options struct {
	// BitsPerSample of the file: 8, 16, 24 or 32. Zero means 16.
	BitsPerSample int
	// SampleRate of the file. Zero keeps the source rate; any other rate
	// resamples the source.
	SampleRate int
	// Mono averages all source channels into one.
	Mono bool
	// ChunkFrames is the number of frames read and written at a time.
	ChunkFrames int

	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.BitsPerSample == 0 {
		o.BitsPerSample = wav.BitsPerSample16
	}
	if o.ChunkFrames <= 0 {
		o.ChunkFrames = DefaultChunkFrames
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}

	return o
}

// Stats describes a finished recording.
type Stats struct {
	Format   wav.Format
	Frames   int64
	DataSize uint32
	FileSize int64
	Duration time.Duration
}

// Record writes src to a new file at path using w. src is read until
// io.EOF and is not closed.
//
// The file is only kept when the recording completes. On any failure,
// including cancellation of ctx, the session is aborted and the partial
// file is removed. A path that already exists is never touched.
func Record(ctx context.Context, src audio.Source, w *wav.Writer, path string, opts Options) (Stats, error) {
	opts = opts.withDefaults()

	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	pipeline, err := buildPipeline(src, opts)
	if err != nil {
		return Stats{}, err
	}

	format, err := formatOf(pipeline, opts.BitsPerSample)
	if err != nil {
		return Stats{}, err
	}

	if err := w.Open(path, format); err != nil {
		if errors.Is(err, wav.ErrHeaderWriteFailed) {
			return Stats{}, discard(w, err)
		}
		return Stats{}, fmt.Errorf("%w", err)
	}
	opts.Logger.Debug("recording started", "path", path, "format", format.String())

	frames, err := stream(ctx, pipeline, w, opts)
	if err != nil {
		opts.Logger.Warn("recording failed", "path", path, "frames", frames, "error", err)
		return Stats{}, discard(w, err)
	}

	if err := w.FinalizeAndClose(); err != nil {
		return Stats{}, discard(w, err)
	}

	stats := Stats{
		Format:   format,
		Frames:   frames,
		DataSize: w.DataSize(),
		FileSize: w.FileSize(),
		Duration: w.Duration(),
	}
	opts.Logger.Info("recording finished",
		"path", path,
		"frames", stats.Frames,
		"data_size", stats.DataSize,
		"duration", stats.Duration)

	return stats, nil
}

func buildPipeline(src audio.Source, opts Options) (audio.Source, error) {
	if !utils.SupportedBitDepth(opts.BitsPerSample) {
		return nil, fmt.Errorf("%w: %d bits per sample", ErrInvalidOptions, opts.BitsPerSample)
	}
	if opts.SampleRate < 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidOptions, opts.SampleRate)
	}

	out := src
	if opts.SampleRate != 0 && opts.SampleRate != src.SampleRate() {
		r, err := audio.NewResampler(src, opts.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		out = r
	}
	if opts.Mono && out.Channels() > 1 {
		out = audio.NewMonoMixer(out)
	}

	return out, nil
}

func formatOf(src audio.Source, bits int) (wav.Format, error) {
	channels, rate := src.Channels(), src.SampleRate()
	if channels <= 0 || channels > math.MaxUint16 || rate <= 0 || uint64(rate) > math.MaxUint32 {
		return wav.Format{}, fmt.Errorf("%w: %d channels at %d Hz", wav.ErrInvalidFormat, channels, rate)
	}

	f, err := wav.NewFormat(uint16(channels), uint32(rate), uint16(bits))
	if err != nil {
		return wav.Format{}, fmt.Errorf("%w", err)
	}

	return f, nil
}

// stream copies src into w chunk by chunk and returns the number of frames
// written.
func stream(ctx context.Context, src audio.Source, w *wav.Writer, opts Options) (int64, error) {
	channels := src.Channels()
	width := opts.BitsPerSample / 8

	samples := make([]float32, opts.ChunkFrames*channels)
	payload := make([]byte, len(samples)*width)

	var frames int64
	empty, pending := 0, 0
	for {
		if err := ctx.Err(); err != nil {
			return frames, err
		}

		n, readErr := src.ReadSamples(samples[pending:])
		avail := pending + n
		whole := avail - avail%channels

		if whole > 0 {
			size, err := utils.PutPCM(payload, samples[:whole], opts.BitsPerSample)
			if err != nil {
				return frames, fmt.Errorf("%w", err)
			}
			if err := w.Write(payload[:size], whole); err != nil {
				return frames, fmt.Errorf("%w", err)
			}
			frames += int64(whole / channels)
		}
		pending = copy(samples, samples[whole:avail])
		if n > 0 {
			empty = 0
		}

		switch {
		case errors.Is(readErr, io.EOF):
			if pending > 0 {
				return frames, fmt.Errorf("%w: %d of %d samples", audio.ErrPartialFrame, pending, channels)
			}
			return frames, nil
		case readErr != nil:
			return frames, fmt.Errorf("reading samples: %w", readErr)
		case n == 0:
			empty++
			if empty >= maxEmptyReads {
				return frames, ErrStalled
			}
		}
	}
}

// discard removes the partial file and joins any cleanup failure to err.
func discard(w *wav.Writer, err error) error {
	if derr := w.Discard(); derr != nil {
		return errors.Join(err, derr)
	}

	return err
}
