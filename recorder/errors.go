// SPDX-License-Identifier: EPL-2.0

package recorder

import "errors"

var (
	ErrInvalidOptions = errors.New("invalid recording options")
	ErrStalled        = errors.New("audio source stopped producing samples")
)
