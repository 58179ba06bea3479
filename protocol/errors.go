package protocol

import (
	"errors"
	"fmt"
)

// FieldTooLongError is returned when a string does not fit a fixed-size
// buffer together with its NUL terminator.
type FieldTooLongError struct {
	// Field is the name of the destination buffer
	Field string

	// Length is the length of the rejected string in bytes
	Length int

	// Max is the longest string the buffer can hold
	Max int
}

func (e *FieldTooLongError) Error() string {
	return fmt.Sprintf("%s too long: %d bytes, buffer holds at most %d", e.Field, e.Length, e.Max)
}

// UnknownPayloadError is returned when a message carries a type whose
// union case this package does not decode.
type UnknownPayloadError struct {
	Type MsgType
}

func (e *UnknownPayloadError) Error() string {
	return fmt.Sprintf("no payload layout for message type %s", e.Type)
}

// IsUnknownPayload returns true if the error is an UnknownPayloadError.
func IsUnknownPayload(err error) bool {
	var target *UnknownPayloadError
	return errors.As(err, &target)
}

// getStatusName returns a human-readable name for a recovery status.
func getStatusName(s RecoveryStatus) string {
	switch s {
	case StatusIdle:
		return "IDLE"
	case StatusStart:
		return "START"
	case StatusRun:
		return "RUN"
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailure:
		return "FAILURE"
	case StatusDownload:
		return "DOWNLOAD"
	case StatusDone:
		return "DONE"
	case StatusSubprocess:
		return "SUBPROCESS"
	case StatusProgress:
		return "PROGRESS"
	default:
		return fmt.Sprintf("STATUS(%d)", int32(s))
	}
}
