package cleaner

import (
	"errors"
	"fmt"
)

var (
	// ErrProcessing is returned when a cleaning, encoding or scaling step fails.
	ErrProcessing = errors.New("processing error")

	// ErrInvalidConfig is returned when the cleaning parameters are invalid.
	ErrInvalidConfig = errors.New("invalid config")
)

// StageError records which pipeline stage failed.
// It matches both ErrProcessing and the underlying error with errors.Is.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Stage, ErrProcessing, e.Err)
}

func (e *StageError) Unwrap() []error {
	return []error{ErrProcessing, e.Err}
}
