//go:build !windows

package fuzz

import (
	"os"
	"syscall"
)

// exitCode returns the shell convention 128+N for a child killed by signal N.
func exitCode(state *os.ProcessState) int {
	if status, ok := state.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	return state.ExitCode()
}
