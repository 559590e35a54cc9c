// SPDX-License-Identifier: EPL-2.0

package soloud

import (
	"errors"
	"fmt"
)

// ErrorKind is a failure code reported by the engine. The numbering is the
// engine's wire contract: append only.
type ErrorKind int32

const (
	InvalidParameter ErrorKind = iota + 1
	FileNotFound
	FileLoadFailed
	DLLNotFound
	OutOfMemory
	NotImplemented
	UnknownError
)

var kindNames = [...]string{
	InvalidParameter: "InvalidParameter",
	FileNotFound:     "FileNotFound",
	FileLoadFailed:   "FileLoadFailed",
	DLLNotFound:      "DLLNotFound",
	OutOfMemory:      "OutOfMemory",
	NotImplemented:   "NotImplemented",
	UnknownError:     "UnknownError",
}

func (k ErrorKind) String() string {
	if k >= InvalidParameter && k <= UnknownError {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int32(k))
}

// Error lets a kind be matched with errors.Is.
func (k ErrorKind) Error() string { return k.String() }

// FromCode converts a non-zero engine status. Codes outside the table map to
// UnknownError. Zero means success and must be handled by the caller.
func FromCode(code int32) ErrorKind {
	if code == 0 {
		panic("soloud: FromCode called with success status 0")
	}
	k := ErrorKind(code)
	if k < InvalidParameter || k > UnknownError {
		return UnknownError
	}
	return k
}

// Class tells which part of the system produced an Error.
type Class int

const (
	// ClassIO is a local I/O failure before the engine was reached.
	ClassIO Class = iota
	// ClassEncoding is an argument the boundary cannot represent.
	ClassEncoding
	// ClassInternal is a failure status returned by the engine.
	ClassInternal
	// ClassUnknown is anything else.
	ClassUnknown
)

func (c Class) String() string {
	switch c {
	case ClassIO:
		return "io"
	case ClassEncoding:
		return "encoding"
	case ClassInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// ErrEmbeddedNul is the cause of ClassEncoding errors.
var ErrEmbeddedNul = errors.New("nul byte found in provided data")

// Error is returned by every fallible operation. Exactly one of Err, Kind or
// Msg is meaningful, selected by Class.
type Error struct {
	Class Class
	// Kind is set for ClassInternal.
	Kind ErrorKind
	// Err is the cause for ClassIO and ClassEncoding.
	Err error
	// Msg describes a ClassUnknown failure.
	Msg string
}

func (e *Error) Error() string {
	switch e.Class {
	case ClassIO, ClassEncoding:
		return e.Err.Error()
	case ClassInternal:
		return "An internal error occurred: " + e.Kind.String()
	default:
		return "An unknown error occurred: " + e.Msg
	}
}

func (e *Error) Unwrap() error {
	if e.Class == ClassInternal {
		return e.Kind
	}
	return e.Err
}

func ioError(err error) *Error {
	return &Error{Class: ClassIO, Err: err}
}

func encodingError(pos int) *Error {
	return &Error{Class: ClassEncoding, Err: fmt.Errorf("%w at position: %d", ErrEmbeddedNul, pos)}
}

func internalError(kind ErrorKind) *Error {
	return &Error{Class: ClassInternal, Kind: kind}
}

func unknownError(msg string) *Error {
	return &Error{Class: ClassUnknown, Msg: msg}
}

// check turns an engine status into an error.
func check(op string, code int32) error {
	if code == 0 {
		return nil
	}
	kind := FromCode(code)
	logger().Debug("engine call failed", "op", op, "code", code, "kind", kind.String())
	return internalError(kind)
}
