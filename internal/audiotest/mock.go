// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides scripted audio sources for tests. The sources
// satisfy audio.Source without importing it.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of channel ch at frame.
type Waveform func(frame, ch int) float32

// MockSource produces a fixed number of frames from a Waveform.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	waveform   Waveform

	// Err, when set, is returned once FailAt frames have been produced.
	Err    error
	FailAt int

	// Stall makes every read return (0, nil).
	Stall bool

	// Closed counts calls to Close.
	Closed int
}

// NewMockSource returns a source of frames frames per channel.
func NewMockSource(sampleRate, channels, frames int, waveform Waveform) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

// NewSilentSource generates silence.
func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

// NewConstantSource generates value on every channel.
func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

// NewChannelSource puts values[ch] on channel ch.
func NewChannelSource(sampleRate, frames int, values ...float32) *MockSource {
	return NewMockSource(sampleRate, len(values), frames, func(_, ch int) float32 {
		return values[ch]
	})
}

// NewRampSource counts frames, scaled by step, on every channel.
func NewRampSource(sampleRate, channels, frames int, step float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(frame) * step
	})
}

// NewSineSource generates a full scale sine at frequency Hz.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }

func (m *MockSource) Close() error {
	m.Closed++
	return nil
}

// Reset rewinds to the first frame.
func (m *MockSource) Reset() {
	m.pos = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.Stall {
		return 0, nil
	}

	limit := m.frames
	if m.Err != nil {
		limit = min(limit, m.FailAt)
	}
	if m.pos >= limit {
		if m.Err != nil {
			return 0, m.Err
		}
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, limit-m.pos)
	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.pos+f, ch)
		}
	}
	m.pos += frames

	n := frames * m.channels
	if m.pos >= m.frames && m.Err == nil {
		return n, io.EOF
	}

	return n, nil
}

// SliceSource returns Data as interleaved samples, at most PerRead per
// call, with no regard for frame boundaries.
type SliceSource struct {
	Rate    int
	Chans   int
	Data    []float32
	PerRead int

	pos int
}

func (s *SliceSource) SampleRate() int { return s.Rate }
func (s *SliceSource) Channels() int   { return s.Chans }
func (s *SliceSource) Close() error    { return nil }

func (s *SliceSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.Data) {
		return 0, io.EOF
	}

	n := copy(dst[:min(len(dst), s.PerRead)], s.Data[s.pos:])
	s.pos += n
	if s.pos >= len(s.Data) {
		return n, io.EOF
	}

	return n, nil
}

// Interleave repeats frame count times.
func Interleave(count int, frame ...float32) []float32 {
	out := make([]float32, 0, count*len(frame))
	for range count {
		out = append(out, frame...)
	}

	return out
}
