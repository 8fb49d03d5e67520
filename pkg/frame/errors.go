package frame

import (
	"errors"
	"fmt"
)

// Error kinds for loading and saving frames.
// Check with errors.Is(err, frame.ErrFileNotFound).
var (
	ErrFileNotFound = errors.New("file not found")
	ErrEmptyData    = errors.New("no data")
	ErrParse        = errors.New("parse error")
	ErrIO           = errors.New("i/o error")
)

// PathError records a failed load or save of a CSV file.
// It matches both its Kind and, when set, the underlying cause.
type PathError struct {
	Op   string // "load", "read" or "save"
	Path string
	Kind error
	Err  error
}

func (e *PathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap returns the error kind and the underlying cause.
func (e *PathError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
