// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// MonoMixer averages the channels of a source into a single channel.
type MonoMixer struct {
	src   Source
	tmp   []float32
	carry int // samples of an incomplete frame at the front of tmp
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{src: src}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadSamples fills dst with up to len(dst) mono samples.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels == 1 {
		return m.src.ReadSamples(dst)
	}

	need := len(dst) * channels
	if cap(m.tmp) < need {
		tmp := make([]float32, need)
		copy(tmp, m.tmp[:m.carry])
		m.tmp = tmp
	}
	in := m.tmp[:need]

	n, err := m.src.ReadSamples(in[m.carry:])
	avail := m.carry + n
	frames := avail / channels
	defer func() { m.carry = copy(in, in[frames*channels:avail]) }()

	if errors.Is(err, io.EOF) && avail%channels != 0 {
		err = fmt.Errorf("%w: %d of %d samples", ErrPartialFrame, avail%channels, channels)
	}
	if frames == 0 {
		return 0, err
	}

	if channels == 2 {
		for f := range frames {
			dst[f] = (in[2*f] + in[2*f+1]) * 0.5
		}
		return frames, err
	}

	inv := 1 / float32(channels)
	for f := range frames {
		var sum float32
		for _, v := range in[f*channels : (f+1)*channels] {
			sum += v
		}
		dst[f] = sum * inv
	}

	return frames, err
}
