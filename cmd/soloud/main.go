// SPDX-License-Identifier: EPL-2.0

// Command soloud inspects audio files and renders engine sources offline to
// WAV.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ik5/soloud"
)

// Exit statuses per error class.
const (
	exitFailure  = 1
	exitIO       = 3
	exitEncoding = 4
	exitInternal = 5
	exitUnknown  = 6
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var e *soloud.Error
	if !errors.As(err, &e) {
		return exitFailure
	}
	switch e.Class {
	case soloud.ClassIO:
		return exitIO
	case soloud.ClassEncoding:
		return exitEncoding
	case soloud.ClassInternal:
		return exitInternal
	default:
		return exitUnknown
	}
}
