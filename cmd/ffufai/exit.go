package main

import (
	"errors"
	"fmt"
)

// Exit codes. The sysexits.h values are used for ffufai's own failures;
// any other non-zero code is ffuf's and is passed through unchanged.
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 64  // EX_USAGE
	exitUnavailable = 69  // EX_UNAVAILABLE
	exitConfig      = 78  // EX_CONFIG
	exitNotFound    = 127 // command not found
	exitInterrupted = 130 // 128 + SIGINT
)

// exitError carries the process exit code of a failed run.
// A nil err means the code is ffuf's own and nothing is printed.
type exitError struct {
	code int
	err  error
}

// Error implements the error interface.
func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

// Unwrap returns the underlying error.
func (e *exitError) Unwrap() error {
	return e.err
}

func usageError(err error) error {
	return &exitError{code: exitUsage, err: err}
}

func configError(err error) error {
	return &exitError{code: exitConfig, err: err}
}

// exitCodeOf returns the exit code for the error returned by the root command.
func exitCodeOf(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitFailure
}

// isSilent reports whether err only carries an exit code.
func isSilent(err error) bool {
	var ee *exitError
	return errors.As(err, &ee) && ee.err == nil
}
