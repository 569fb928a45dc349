// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files, so
// recordings made on macOS can be fed to a WAV writer.
//
// # Supported Formats
//
//   - PCM 8, 16, 24 and 32-bit, signed big-endian
//   - Any channel count
//   - Any sample rate
//
// # Decoding AIFF Files
//
//	file, _ := os.Open("audio.aif")
//	source, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // ErrNotAiffFile, ErrUnsupportedBitDepth or ErrUnsupportedAiffLayout
//	}
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// Samples are normalised to [-1.0, 1.0] according to the file's bit
// depth. go-audio needs to seek, so readers that are not an io.ReadSeeker
// are read into memory first.
package aiff
