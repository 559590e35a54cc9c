// SPDX-License-Identifier: EPL-2.0

package main

import "errors"

var (
	ErrNegativeVolume = errors.New("volume must not be negative")
	ErrUnknownSource  = errors.New("unknown source")
	ErrMissingFile    = errors.New("--file is required for the file source")
	ErrBadDuration    = errors.New("--seconds must be positive")
)
