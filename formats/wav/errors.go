// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
)

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrOnlyPCMSupported     = errors.New("only PCM WAV is supported")
	ErrUnsupportedBitDepth  = errors.New("unsupported PCM bit depth")

	// ErrInvalidFormat is returned for a Format that cannot describe a PCM
	// stream. It is always detected before any I/O.
	ErrInvalidFormat = errors.New("invalid WAV format")

	ErrAlreadyOpen   = errors.New("WAV writer already has an open file")
	ErrNotOpen       = errors.New("WAV writer has no open file")
	ErrAlreadyExists = errors.New("WAV file already exists")

	// The following wrap the underlying I/O error.
	ErrCreateFailed      = errors.New("creating WAV file failed")
	ErrHeaderWriteFailed = errors.New("writing WAV header failed")
	ErrWriteFailed       = errors.New("writing WAV samples failed")
	ErrPatchFailed       = errors.New("patching WAV header failed")
	ErrCloseFailed       = errors.New("closing WAV file failed")

	ErrShortBuffer        = errors.New("sample buffer shorter than sample count")
	ErrInvalidSampleCount = errors.New("sample count must not be negative")
	ErrDataTooLarge       = errors.New("WAV data exceeds the 32-bit RIFF size limit")
	ErrChannelMismatch    = errors.New("buffer channel count does not match the open file")
	ErrSampleRange        = errors.New("sample value out of range for the bit depth")
)

// wrapIO keeps both the sentinel and the underlying cause visible to
// errors.Is.
func wrapIO(sentinel, cause error) error {
	return fmt.Errorf("%w: %w", sentinel, cause)
}
