package updater

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// ErrSessionInFlight is returned when Apply is called while another session
// is running in this process.
var ErrSessionInFlight = errors.New("an update session is already in flight")

// ErrUnsupported is returned when the engine does not implement a command.
var ErrUnsupported = errors.New("operation not supported by engine")

// SourceOpenError indicates that the image could not be opened.
// The engine was not contacted.
type SourceOpenError struct {
	Path string
	Err  error
}

func (e *SourceOpenError) Error() string {
	return fmt.Sprintf("cannot open image %s: %v", e.Path, e.Err)
}

func (e *SourceOpenError) Unwrap() error {
	return e.Err
}

// StartError indicates that the engine refused to start a session.
type StartError struct {
	// Code is the negative value returned by the engine
	Code int
}

func (e *StartError) Error() string {
	return fmt.Sprintf("update engine failed to start with return code %d%s", e.Code, errnoSuffix(e.Code))
}

// Errno returns the code as an errno, or 0 when it is not one.
func (e *StartError) Errno() unix.Errno {
	if e.Code < -1 {
		return unix.Errno(-e.Code)
	}
	return 0
}

// CommandError indicates that the engine rejected a command.
type CommandError struct {
	Operation string
	Code      int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s failed with return code %d%s", e.Operation, e.Code, errnoSuffix(e.Code))
}

// VersionRangeError indicates an invalid version range.
type VersionRangeError struct {
	Minimum string
	Maximum string
	Reason  string
}

func (e *VersionRangeError) Error() string {
	return fmt.Sprintf("invalid version range [%s, %s]: %s", e.Minimum, e.Maximum, e.Reason)
}

// AESKeyError indicates a malformed key or IVT. The value itself is never
// included in the message.
type AESKeyError struct {
	Field  string
	Length int
	Reason string
}

func (e *AESKeyError) Error() string {
	return fmt.Sprintf("invalid AES %s (%d characters): %s", e.Field, e.Length, e.Reason)
}

// errnoSuffix names negated errno codes; -1 is the engine's generic failure.
func errnoSuffix(code int) string {
	if code < -1 {
		return fmt.Sprintf(" (%v)", unix.Errno(-code))
	}
	return ""
}
