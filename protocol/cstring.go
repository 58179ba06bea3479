package protocol

import (
	"bytes"
	"strings"
)

// CString decodes a fixed-size, NUL-padded C string.
//
// The string ends at the first zero byte, or at the end of the buffer when
// the engine filled it completely. Invalid UTF-8 from the native side is
// replaced rather than trusted.
func CString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.ToValidUTF8(string(b), "�")
}

// PutCString copies s into dst and zero-fills the remainder.
// The string must leave room for its terminator; field names the buffer in
// the returned *FieldTooLongError.
func PutCString(dst []byte, s string, field string) error {
	if len(s) >= len(dst) {
		return &FieldTooLongError{Field: field, Length: len(s), Max: len(dst) - 1}
	}
	n := copy(dst, s)
	clear(dst[n:])
	return nil
}
