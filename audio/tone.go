// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"
)

// ToneSource generates a sine wave of fixed length on every channel.
type ToneSource struct {
	sampleRate int
	channels   int
	frequency  float64
	amplitude  float32
	frames     int
	pos        int
}

// NewToneSource returns a source of frames frames of a sine at frequency
// Hz, scaled by amplitude in (0, 1].
func NewToneSource(sampleRate, channels int, frequency float64, amplitude float32, frames int) (*ToneSource, error) {
	switch {
	case sampleRate <= 0:
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidTone, sampleRate)
	case channels <= 0:
		return nil, fmt.Errorf("%w: channels %d", ErrInvalidTone, channels)
	case frequency <= 0 || frequency > float64(sampleRate)/2:
		return nil, fmt.Errorf("%w: frequency %g Hz outside (0, %d]", ErrInvalidTone, frequency, sampleRate/2)
	case amplitude <= 0 || amplitude > 1:
		return nil, fmt.Errorf("%w: amplitude %g", ErrInvalidTone, amplitude)
	case frames < 0:
		return nil, fmt.Errorf("%w: frames %d", ErrInvalidTone, frames)
	}

	return &ToneSource{
		sampleRate: sampleRate,
		channels:   channels,
		frequency:  frequency,
		amplitude:  amplitude,
		frames:     frames,
	}, nil
}

func (t *ToneSource) SampleRate() int { return t.sampleRate }
func (t *ToneSource) Channels() int   { return t.channels }
func (t *ToneSource) Close() error    { return nil }

func (t *ToneSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%t.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if t.pos >= t.frames {
		return 0, io.EOF
	}

	frames := min(len(dst)/t.channels, t.frames-t.pos)
	step := 2 * math.Pi * t.frequency / float64(t.sampleRate)

	for f := range frames {
		v := t.amplitude * float32(math.Sin(step*float64(t.pos+f)))
		for c := range t.channels {
			dst[f*t.channels+c] = v
		}
	}
	t.pos += frames

	if t.pos >= t.frames {
		return frames * t.channels, io.EOF
	}

	return frames * t.channels, nil
}
