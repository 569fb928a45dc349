// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrInvalidRate    = errors.New("sample rates must be positive")
	ErrUnknownFormat  = errors.New("no decoder registered for format")
	ErrInvalidTone    = errors.New("invalid tone parameters")
	ErrPartialFrame   = errors.New("source ended inside a frame")
)
