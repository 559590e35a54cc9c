// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrUnknownFormat  = errors.New("unrecognized audio format")
)
