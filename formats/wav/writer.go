// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"time"

	goaudio "github.com/go-audio/audio"
)

// State is the lifecycle state of a Writer.
type State uint8

const (
	StateClosed State = iota
	StateOpened
	// StateFaulted follows an I/O failure. The handle has already been
	// released and the file on disk must be treated as invalid.
	StateFaulted
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpened:
		return "opened"
	case StateFaulted:
		return "faulted"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// writeChunkSize bounds a single write to the underlying file.
const writeChunkSize = 8192

// Writer streams PCM samples into a single WAV file at a time.
//
// The header is written with zero sizes when the file is opened, samples
// are appended as they arrive and FinalizeAndClose patches the RIFF and
// data sizes in place. A Writer is not safe for concurrent use; separate
// Writers are independent of each other.
//
// The zero value writes to the operating system file system and does not
// log.
type Writer struct {
	FS     FS
	Logger *slog.Logger

	state  State
	file   File
	path   string
	format Format
	header Header
	opened bool
}

// NewWriter returns a Writer creating files on fsys.
func NewWriter(fsys FS, logger *slog.Logger) *Writer {
	return &Writer{FS: fsys, Logger: logger}
}

func (w *Writer) fs() FS {
	if w.FS == nil {
		return OSFS{}
	}
	return w.FS
}

func (w *Writer) log() *slog.Logger {
	if w.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return w.Logger
}

// State returns the current lifecycle state.
func (w *Writer) State() State { return w.state }

// Path returns the path of the current or most recent session.
func (w *Writer) Path() string { return w.path }

// Format returns the format of the current or most recent session.
func (w *Writer) Format() Format { return w.format }

// Header returns the in-memory header, including the running sizes.
func (w *Writer) Header() Header { return w.header }

// DataSize is the number of sample bytes accepted so far.
func (w *Writer) DataSize() uint32 { return w.header.DataSize }

// Duration is the playback time of the samples accepted so far.
func (w *Writer) Duration() time.Duration { return w.format.Duration(w.header.DataSize) }

// FileSize returns the RIFF size plus the 8 bytes of the RIFF tag and size
// field. After FinalizeAndClose it equals the length of the file. It is 0
// until a session has been opened.
func (w *Writer) FileSize() int64 {
	if !w.opened {
		return 0
	}
	return w.header.FileSize()
}

// Open creates path and writes a provisional header for format f.
//
// Open fails with ErrAlreadyOpen while a session is open, with
// ErrInvalidFormat for a bad format and with ErrAlreadyExists when path
// exists; no I/O is performed in those cases. A file that cannot be
// created yields ErrCreateFailed. A failed header write yields
// ErrHeaderWriteFailed and leaves the Writer faulted.
func (w *Writer) Open(path string, f Format) error {
	if w.state == StateOpened {
		return ErrAlreadyOpen
	}
	if err := f.Validate(); err != nil {
		return err
	}

	file, err := w.fs().Create(path)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return wrapIO(ErrAlreadyExists, err)
		}
		return wrapIO(ErrCreateFailed, err)
	}

	w.file = file
	w.path = path
	w.format = f
	w.header = BuildHeader(f)
	w.opened = true

	hdr := w.header.Bytes()
	if _, err := writeFull(file, hdr[:]); err != nil {
		w.fault("header", err)
		return wrapIO(ErrHeaderWriteFailed, err)
	}

	w.state = StateOpened
	w.log().Debug("wav file opened", "path", path, "format", f.String())

	return nil
}

// Write appends sampleCount samples taken from the front of samples. A
// sample is a single channel value, so an interleaved stereo frame counts
// as two. The bytes are written as they are, without conversion.
//
// Any number of samples may be passed; large payloads are written in
// bounded chunks. On an I/O error Write returns ErrWriteFailed and the
// Writer is faulted. Bytes already written are not rolled back.
func (w *Writer) Write(samples []byte, sampleCount int) error {
	if w.state != StateOpened {
		return ErrNotOpen
	}
	if sampleCount < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleCount, sampleCount)
	}

	byteCount := uint64(w.format.BytesPerSample()) * uint64(sampleCount)
	if uint64(len(samples)) < byteCount {
		return fmt.Errorf("%w: %d samples need %d bytes, got %d",
			ErrShortBuffer, sampleCount, byteCount, len(samples))
	}
	if !w.header.fits(byteCount) {
		return fmt.Errorf("%w: %d bytes written, %d more requested",
			ErrDataTooLarge, w.header.DataSize, byteCount)
	}

	data := samples[:byteCount]
	for len(data) > 0 {
		chunk := data[:min(len(data), writeChunkSize)]

		n, err := writeFull(w.file, chunk)
		w.header.grow(uint32(n))
		if err != nil {
			w.fault("samples", err)
			return wrapIO(ErrWriteFailed, err)
		}

		data = data[n:]
	}

	return nil
}

// WriteIntBuffer appends buf.Data as samples at the session's bit depth.
// Values are stored little-endian in two's complement, except for 8-bit
// files where WAV stores unsigned bytes and values are expected in
// [0, 255]. A value that does not fit the bit depth fails with
// ErrSampleRange before anything is written.
func (w *Writer) WriteIntBuffer(buf *goaudio.IntBuffer) error {
	if w.state != StateOpened {
		return ErrNotOpen
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil
	}
	if buf.Format != nil && buf.Format.NumChannels != 0 &&
		buf.Format.NumChannels != int(w.format.Channels) {
		return fmt.Errorf("%w: buffer has %d, file has %d",
			ErrChannelMismatch, buf.Format.NumChannels, w.format.Channels)
	}

	lo, hi := sampleRange(w.format.BitsPerSample)
	width := w.format.BytesPerSample()
	payload := make([]byte, len(buf.Data)*width)
	for i, v := range buf.Data {
		if int64(v) < lo || int64(v) > hi {
			return fmt.Errorf("%w: sample %d is %d, want [%d, %d]", ErrSampleRange, i, v, lo, hi)
		}
		putSample(payload[i*width:(i+1)*width], v)
	}

	return w.Write(payload, len(buf.Data))
}

// sampleRange returns the values WriteIntBuffer accepts at bits per sample.
func sampleRange(bits uint16) (lo, hi int64) {
	switch {
	case bits == 8:
		return 0, math.MaxUint8
	case bits >= 64:
		return math.MinInt64, math.MaxInt64
	default:
		return -1 << (bits - 1), 1<<(bits-1) - 1
	}
}

// putSample stores v little-endian across all of dst, sign extending past
// 64 bits.
func putSample(dst []byte, v int) {
	u := uint64(int64(v))
	for i := range dst {
		switch {
		case i < 8:
			dst[i] = byte(u >> (8 * i))
		case v < 0:
			dst[i] = 0xff
		default:
			dst[i] = 0
		}
	}
}

// FinalizeAndClose writes the final RIFF size at offset 4 and data size at
// offset 40, then closes the file. The file is closed and the Writer
// returns to StateClosed whatever the outcome. A failed seek or write
// yields ErrPatchFailed, in which case the header may be partly patched.
func (w *Writer) FinalizeAndClose() (err error) {
	if w.state != StateOpened {
		return ErrNotOpen
	}

	file := w.file
	defer func() {
		w.file = nil
		w.state = StateClosed

		if cerr := file.Close(); cerr != nil && err == nil {
			err = wrapIO(ErrCloseFailed, cerr)
		}
		if err != nil {
			w.log().Warn("wav file finalize failed", "path", w.path, "error", err)
		}
	}()

	if perr := putSize(file, OffsetRIFFSize, w.header.RIFFSize); perr != nil {
		return wrapIO(ErrPatchFailed, perr)
	}
	if perr := putSize(file, OffsetDataSize, w.header.DataSize); perr != nil {
		return wrapIO(ErrPatchFailed, perr)
	}

	w.log().Debug("wav file finalized",
		"path", w.path,
		"data_size", w.header.DataSize,
		"file_size", w.header.FileSize(),
		"duration", w.Duration())

	return nil
}

// Abort ends the session without patching the header and releases the
// handle. A faulted Writer is returned to StateClosed. Abort on a closed
// Writer does nothing.
func (w *Writer) Abort() error {
	switch w.state {
	case StateClosed:
		return nil
	case StateFaulted:
		w.state = StateClosed
		return nil
	}

	file := w.file
	w.file = nil
	w.state = StateClosed
	w.log().Debug("wav file aborted", "path", w.path)

	if err := file.Close(); err != nil {
		return wrapIO(ErrCloseFailed, err)
	}

	return nil
}

// Discard aborts any open session and removes the file of the current or
// most recent session.
func (w *Writer) Discard() error {
	if !w.opened {
		return ErrNotOpen
	}

	abortErr := w.Abort()
	if err := w.fs().Remove(w.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Join(abortErr, fmt.Errorf("removing %s: %w", w.path, err))
	}
	w.log().Debug("wav file discarded", "path", w.path)

	return abortErr
}

// fault releases the handle after an I/O error during a session.
func (w *Writer) fault(stage string, cause error) {
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			w.log().Warn("closing faulted wav file", "path", w.path, "error", err)
		}
	}
	w.file = nil
	w.state = StateFaulted

	w.log().Warn("wav writer faulted",
		"path", w.path,
		"stage", stage,
		"data_size", w.header.DataSize,
		"error", cause)
}
