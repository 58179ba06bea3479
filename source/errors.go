package source

import (
	"errors"
	"fmt"
)

// ErrNotRegular is returned by Open when the path is not a regular file.
var ErrNotRegular = errors.New("not a regular file")

// OpenError is returned when an image path cannot be opened for reading.
type OpenError struct {
	// Path is the path passed to Open
	Path string

	// Err is the underlying errno or ErrNotRegular
	Err error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// ReadError records a failed read(2) on an open image.
type ReadError struct {
	Path   string
	Offset int64
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s at offset %d: %v", e.Path, e.Offset, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// CloseError is returned when releasing the descriptor fails.
type CloseError struct {
	Path string
	Err  error
}

func (e *CloseError) Error() string {
	return fmt.Sprintf("close %s: %v", e.Path, e.Err)
}

func (e *CloseError) Unwrap() error {
	return e.Err
}
