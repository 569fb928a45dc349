// SPDX-License-Identifier: EPL-2.0

// Package pcmsource adapts go-audio integer PCM decoders to audio.Source.
package pcmsource

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// Reader is the part of the go-audio wav and aiff decoders that is used.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts integer samples from a Reader to float32 in [-1, 1].
type Source struct {
	dec      Reader
	format   *goaudio.Format
	bitDepth int
	offset   int
	scale    float32
	intBuf   *goaudio.IntBuffer
}

// SupportedBitDepth reports whether bits can be normalised by Source.
func SupportedBitDepth(bits int) bool {
	switch bits {
	case 8, 16, 24, 32:
		return true
	}
	return false
}

// New wraps dec. When unsigned8 is set, 8-bit samples are taken as
// unsigned with a bias of 128, as WAV stores them.
func New(dec Reader, sampleRate, channels, bitDepth int, unsigned8 bool) *Source {
	s := &Source{
		dec: dec,
		format: &goaudio.Format{
			SampleRate:  sampleRate,
			NumChannels: channels,
		},
		bitDepth: bitDepth,
		scale:    float32(int64(1) << (bitDepth - 1)),
	}
	if bitDepth == 8 && unsigned8 {
		s.offset = 128
	}

	return s
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.format,
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	for i, v := range s.intBuf.Data[:n] {
		dst[i] = float32(v-s.offset) / s.scale
	}

	switch {
	case errors.Is(err, io.EOF), err == nil && n < len(dst):
		return n, io.EOF
	case err != nil:
		return n, fmt.Errorf("%w", err)
	}

	return n, nil
}
