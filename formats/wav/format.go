// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"math"
	"time"
)

// Common values for the default parameter policy.
const (
	ChannelMono   = 1
	ChannelStereo = 2

	SampleRate8000  = 8000
	SampleRate11025 = 11025
	SampleRate22050 = 22050
	SampleRate44100 = 44100

	BitsPerSample8  = 8
	BitsPerSample16 = 16
)

// Format describes an uncompressed PCM stream. Block align and byte rate
// are always derived from these three fields and never stored.
type Format struct {
	Channels      uint16
	SampleRate    uint32
	BitsPerSample uint16
}

// NewFormat returns a validated Format.
func NewFormat(channels uint16, sampleRate uint32, bitsPerSample uint16) (Format, error) {
	f := Format{
		Channels:      channels,
		SampleRate:    sampleRate,
		BitsPerSample: bitsPerSample,
	}
	if err := f.Validate(); err != nil {
		return Format{}, err
	}

	return f, nil
}

// DefaultFormat is mono, 44.1 kHz, 16-bit.
func DefaultFormat() Format {
	return Format{
		Channels:      ChannelMono,
		SampleRate:    SampleRate44100,
		BitsPerSample: BitsPerSample16,
	}
}

// Validate reports whether f can be written into a canonical PCM header.
// The returned error wraps ErrInvalidFormat.
func (f Format) Validate() error {
	switch {
	case f.Channels == 0:
		return fmt.Errorf("%w: channel count must be at least 1", ErrInvalidFormat)
	case f.SampleRate == 0:
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidFormat)
	case f.BitsPerSample == 0 || f.BitsPerSample%8 != 0:
		return fmt.Errorf("%w: bits per sample %d is not a positive multiple of 8",
			ErrInvalidFormat, f.BitsPerSample)
	}

	// Both derived fields have fixed widths in the header.
	blockAlign := uint64(f.Channels) * uint64(f.BitsPerSample/8)
	if blockAlign > math.MaxUint16 {
		return fmt.Errorf("%w: block align %d overflows 16 bits", ErrInvalidFormat, blockAlign)
	}
	if byteRate := uint64(f.SampleRate) * blockAlign; byteRate > math.MaxUint32 {
		return fmt.Errorf("%w: byte rate %d overflows 32 bits", ErrInvalidFormat, byteRate)
	}

	return nil
}

// BytesPerSample is the width of a single channel sample.
func (f Format) BytesPerSample() int { return int(f.BitsPerSample / 8) }

// BlockAlign is the number of bytes in one frame across all channels.
func (f Format) BlockAlign() uint16 { return f.Channels * (f.BitsPerSample / 8) }

// ByteRate is the number of data bytes per second of playback.
func (f Format) ByteRate() uint32 { return f.SampleRate * uint32(f.BlockAlign()) }

// Duration returns the playback time of dataBytes bytes of sample data.
func (f Format) Duration(dataBytes uint32) time.Duration {
	rate := f.ByteRate()
	if rate == 0 {
		return 0
	}

	return time.Duration(uint64(dataBytes) * uint64(time.Second) / uint64(rate))
}

func (f Format) String() string {
	return fmt.Sprintf("%dch %dHz %dbit", f.Channels, f.SampleRate, f.BitsPerSample)
}
