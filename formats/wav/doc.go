// SPDX-License-Identifier: EPL-2.0

// Package wav writes and reads canonical PCM WAV (RIFF/WAVE) files.
//
// # Streaming Writes
//
// Writer records a stream whose length is not known in advance. Open
// writes a 44-byte header with zero sizes, Write appends raw sample bytes
// and FinalizeAndClose seeks back to patch the two size fields:
//
//	w := wav.NewWriter(wav.OSFS{}, nil)
//	f, err := wav.NewFormat(2, 8000, 8)
//	if err != nil {
//	    // ErrInvalidFormat
//	}
//	if err := w.Open("take1.wav", f); err != nil {
//	    // ErrAlreadyOpen, ErrAlreadyExists, ErrCreateFailed, ErrHeaderWriteFailed
//	}
//	for frame := range frames {
//	    // two 8-bit samples per stereo frame
//	    if err := w.Write(frame, 2); err != nil {
//	        w.Discard()
//	        return err
//	    }
//	}
//	err = w.FinalizeAndClose()
//
// A Writer never overwrites an existing file and holds at most one open
// file. Any error from Write or FinalizeAndClose means the file on disk is
// not valid and should be discarded; Discard does that.
//
// # File Layout
//
// All numbers are little-endian and the chunk tags are stored as their
// literal ASCII bytes:
//
//	offset  size  field
//	0       4     "RIFF"
//	4       4     RIFF size (36 + data size)
//	8       4     "WAVE"
//	12      4     "fmt "
//	16      4     16
//	20      2     1 (PCM)
//	22      2     channels
//	24      4     sample rate
//	28      4     byte rate (sample rate * block align)
//	32      2     block align (channels * bits per sample / 8)
//	34      2     bits per sample
//	36      4     "data"
//	40      4     data size
//	44      ...   samples
//
// BuildHeader derives this image from a Format and ParseHeader reads it
// back.
//
// # One-Shot Writes
//
// When all samples are at hand, Encode and WriteWAV16 write a complete
// file to any io.Writer:
//
//	samples := []int16{100, -100, 200, -200}
//	err := wav.WriteWAV16(file, 8000, samples)
//
// # Decoding WAV Files
//
// Decoder returns an audio.Source with samples as float32 in [-1, 1]. It
// is built on github.com/go-audio/wav and accepts 8, 16, 24 and 32-bit
// PCM:
//
//	source, err := wav.Decoder{}.Decode(file)
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// # Error Handling
//
// Errors are sentinel values. Errors caused by I/O wrap both the sentinel
// and the underlying error:
//
//	if errors.Is(err, wav.ErrWriteFailed) && errors.Is(err, fs.ErrPermission) {
//	    // ...
//	}
package wav
