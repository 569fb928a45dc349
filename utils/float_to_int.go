// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var ErrUnsupportedBitDepth = errors.New("bit depth must be 8, 16, 24 or 32")

// SupportedBitDepth reports whether PutPCM can produce bits-bit samples.
func SupportedBitDepth(bits int) bool {
	switch bits {
	case 8, 16, 24, 32:
		return true
	}
	return false
}

// Quantize clamps x to [-1, 1] and scales it to a signed bits-bit integer.
// The positive peak is 2^(bits-1)-1 so that 1.0 does not overflow.
func Quantize(x float32, bits int) int32 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	peak := float64(int64(1)<<(bits-1) - 1)
	return int32(float64(x) * peak)
}

// PutPCM encodes src as little-endian PCM samples of bits bits into dst
// and returns the number of bytes written. 8-bit samples are unsigned with
// a bias of 128, as WAV stores them. dst must hold len(src)*bits/8 bytes.
func PutPCM(dst []byte, src []float32, bits int) (int, error) {
	if !SupportedBitDepth(bits) {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}

	width := bits / 8
	if len(dst) < len(src)*width {
		return 0, fmt.Errorf("dst holds %d bytes, need %d", len(dst), len(src)*width)
	}

	for i, x := range src {
		v := Quantize(x, bits)
		out := dst[i*width : (i+1)*width]

		switch width {
		case 1:
			out[0] = byte(v + 128)
		case 2:
			binary.LittleEndian.PutUint16(out, uint16(int16(v)))
		case 3:
			out[0] = byte(v)
			out[1] = byte(v >> 8)
			out[2] = byte(v >> 16)
		case 4:
			binary.LittleEndian.PutUint32(out, uint32(v))
		}
	}

	return len(src) * width, nil
}
