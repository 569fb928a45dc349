// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Encode writes a complete WAV file holding data to w in one pass. Unlike
// Writer it needs no seeking, since the data size is known up front.
func Encode(w io.Writer, f Format, data []byte) error {
	if err := f.Validate(); err != nil {
		return err
	}

	h := BuildHeader(f)
	if !h.fits(uint64(len(data))) {
		return fmt.Errorf("%w: %d bytes", ErrDataTooLarge, len(data))
	}
	h.grow(uint32(len(data)))

	hdr := h.Bytes()
	if _, err := writeFull(w, hdr[:]); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for len(data) > 0 {
		n, err := writeFull(w, data[:min(len(data), writeChunkSize)])
		if err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
		data = data[n:]
	}

	return nil
}

// WriteWAV16 writes samples as a mono 16-bit PCM WAV at sampleRate.
// Samples are converted in fixed-size chunks so no full copy of the
// payload is made.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	if sampleRate <= 0 || uint64(sampleRate) > math.MaxUint32 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidFormat, sampleRate)
	}

	f := Format{
		Channels:      ChannelMono,
		SampleRate:    uint32(sampleRate),
		BitsPerSample: BitsPerSample16,
	}
	if err := f.Validate(); err != nil {
		return err
	}

	h := BuildHeader(f)
	dataSize := uint64(len(samples)) * 2
	if !h.fits(dataSize) {
		return fmt.Errorf("%w: %d samples", ErrDataTooLarge, len(samples))
	}
	h.grow(uint32(dataSize))

	hdr := h.Bytes()
	if _, err := writeFull(w, hdr[:]); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	const chunkSamples = writeChunkSize / 2
	buf := make([]byte, min(len(samples), chunkSamples)*2)

	for i := 0; i < len(samples); i += chunkSamples {
		chunk := samples[i:min(i+chunkSamples, len(samples))]
		out := buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}

		if _, err := writeFull(w, out); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
	}

	return nil
}
