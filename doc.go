// SPDX-License-Identifier: EPL-2.0

// Package wavrec records PCM audio into canonical WAV files.
//
// The core lives in formats/wav: Format describes a PCM stream, BuildHeader
// produces the 44-byte RIFF/WAVE header and Writer streams samples into a
// file, patching the RIFF and data sizes when the file is finalized.
//
// This package ties the pieces together for whole-file conversion:
//
//	stats, err := wavrec.ConvertFile(ctx, "in.mp3", "out.wav", recorder.Options{
//		SampleRate:    8000,
//		Mono:          true,
//		BitsPerSample: 16,
//	})
//
// # Supported Inputs
//
//   - WAV (PCM 8, 16, 24 or 32-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 8, 16, 24 or 32-bit) via formats/aiff
//
// NewRegistry returns a registry with all of them, keyed by file extension.
//
// # Writing Directly
//
// Producers that already hold PCM bytes use wav.Writer without any of the
// decoding machinery:
//
//	w := wav.NewWriter(wav.OSFS{}, logger)
//	if err := w.Open("take1.wav", wav.DefaultFormat()); err != nil {
//		return err
//	}
//	for frame := range frames {
//		if err := w.Write(frame, len(frame)/2); err != nil {
//			w.Discard()
//			return err
//		}
//	}
//	return w.FinalizeAndClose()
//
// A Writer never overwrites an existing file, and a file whose session
// failed must be treated as invalid.
package wavrec
