package fuzz

import "fmt"

// LaunchError is returned when ffuf could not be started at all,
// for example because the binary is not on PATH.
type LaunchError struct {
	// Path is the binary that was looked up.
	Path string

	// Err is the underlying error, often exec.ErrNotFound.
	Err error
}

// Error implements the error interface.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LaunchError) Unwrap() error {
	return e.Err
}
