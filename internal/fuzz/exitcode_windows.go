//go:build windows

package fuzz

import "os"

func exitCode(state *os.ProcessState) int {
	return state.ExitCode()
}
