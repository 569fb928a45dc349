// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// resampleBatch is the number of source frames fetched per read.
const resampleBatch = 1024

// Resampler converts a Source to another sample rate with Catmull-Rom
// cubic interpolation. The channel count is preserved. When downsampling a
// one-pole low-pass filter is applied to the input first.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// hist holds the frames at base-1, base, base+1 and base+2. The first
	// and last frames of the stream are repeated at the edges.
	hist   [4][]float32
	base   int
	pos    float64
	primed bool

	in    []float32
	inPos int
	inLen int
	read  int // samples read from the source
	total int // frames in the source, -1 until EOF
	eof   bool

	lowpass bool
	seeded  bool
	alpha   float32
	state   []float32
}

// NewResampler returns a Source reading src at dstRate Hz.
func NewResampler(src Source, dstRate int) (*Resampler, error) {
	if dstRate <= 0 || src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d Hz to %d Hz", ErrInvalidRate, src.SampleRate(), dstRate)
	}
	channels := src.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidDstSize, channels)
	}

	ratio := float64(src.SampleRate()) / float64(dstRate)
	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		ratio:    ratio,
		channels: channels,
		in:       make([]float32, resampleBatch*channels),
		total:    -1,
		lowpass:  ratio > 1,
		alpha:    0.5,
		state:    make([]float32, channels),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r, nil
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadSamples fills dst with whole frames at the destination rate.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0
	for written < frames {
		for r.pos >= 1 {
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
			r.pos--
		}
		if r.done() {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = cubic(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}

// done reports whether the output position is past the last source frame.
func (r *Resampler) done() bool {
	return r.total >= 0 && float64(r.base)+r.pos > float64(r.total-1)
}

func (r *Resampler) prime() error {
	ok, err := r.pull(r.hist[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	copy(r.hist[0], r.hist[1])

	for i := 2; i < len(r.hist); i++ {
		ok, err := r.pull(r.hist[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.hist[i], r.hist[i-1])
		}
	}
	r.primed = true

	return nil
}

// advance moves the window one source frame forward.
func (r *Resampler) advance() error {
	first := r.hist[0]
	copy(r.hist[:], r.hist[1:])
	r.hist[3] = first

	ok, err := r.pull(r.hist[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.hist[3], r.hist[2])
	}
	r.base++

	return nil
}

// pull copies the next source frame into dst. It returns false once the
// source is exhausted. Reads that end inside a frame are completed by the
// following reads.
func (r *Resampler) pull(dst []float32) (bool, error) {
	for r.inLen-r.inPos < r.channels {
		if r.eof {
			return false, nil
		}
		rem := copy(r.in, r.in[r.inPos:r.inLen])
		r.inPos, r.inLen = 0, rem

		n, err := r.src.ReadSamples(r.in[rem:])
		r.inLen += n
		r.read += n

		switch {
		case errors.Is(err, io.EOF):
			if extra := r.read % r.channels; extra != 0 {
				return false, fmt.Errorf("%w: %d of %d samples", ErrPartialFrame, extra, r.channels)
			}
			r.eof = true
			r.total = r.read / r.channels
		case err != nil:
			return false, fmt.Errorf("reading source: %w", err)
		case n == 0:
			return false, io.ErrNoProgress
		}
	}

	frame := r.in[r.inPos : r.inPos+r.channels]
	r.inPos += r.channels

	if r.lowpass {
		if !r.seeded {
			copy(r.state, frame)
			r.seeded = true
		}
		for c, v := range frame {
			r.state[c] = r.alpha*v + (1-r.alpha)*r.state[c]
		}
		copy(dst, r.state)
	} else {
		copy(dst, frame)
	}

	return true, nil
}

// cubic interpolates between y1 and y2 at x in [0, 1] using y0 and y3 as
// neighbours.
func cubic(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}
