package fuzz

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

// writeStub writes a shell script that records its arguments to argsFile
// and exits with code.
func writeStub(t *testing.T, code int) (binPath, argsFile string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell script stubs are not supported on windows")
	}

	dir := t.TempDir()
	argsFile = filepath.Join(dir, "args.txt")
	binPath = filepath.Join(dir, "ffuf")
	script := fmt.Sprintf("#!/bin/sh\nfor a in \"$@\"; do printf '%%s\\n' \"$a\" >> %q; done\necho stub-out\necho stub-err >&2\nexit %d\n", argsFile, code)
	if err := os.WriteFile(binPath, []byte(script), 0o755); err != nil { //nolint:gosec // the stub must be executable
		t.Fatalf("failed to write stub: %v", err)
	}
	return binPath, argsFile
}

func readArgs(t *testing.T, argsFile string) []string {
	t.Helper()

	data, err := os.ReadFile(argsFile) //nolint:gosec // test file
	if err != nil {
		t.Fatalf("failed to read recorded args: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestInvokerRun tests running a stub binary.
func TestInvokerRun(t *testing.T) {
	// Not parallel: writing an executable while another test forks can
	// fail with "text file busy".
	for _, code := range []int{0, 2} {
		t.Run(fmt.Sprintf("forwards exit code %d", code), func(t *testing.T) {
			bin, argsFile := writeStub(t, code)
			var stdout, stderr bytes.Buffer
			inv := New(bin, WithStdio(strings.NewReader(""), &stdout, &stderr), WithLogger(discardLogger()))

			args := []string{"-u", "https://example.com/FUZZ", "-w", "words.txt", "-e", ".php,.html"}
			got, err := inv.Run(context.Background(), args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != code {
				t.Errorf("expected exit code %d, got %d", code, got)
			}
			if recorded := readArgs(t, argsFile); !reflect.DeepEqual(recorded, args) {
				t.Errorf("stub received %q, want %q", recorded, args)
			}
			if strings.TrimSpace(stdout.String()) != "stub-out" {
				t.Errorf("unexpected stdout %q", stdout.String())
			}
			if strings.TrimSpace(stderr.String()) != "stub-err" {
				t.Errorf("unexpected stderr %q", stderr.String())
			}
		})
	}

	t.Run("missing binary is a launch error", func(t *testing.T) {
		inv := New(filepath.Join(t.TempDir(), "no-such-ffuf"), WithLogger(discardLogger()))
		_, err := inv.Run(context.Background(), nil)

		var launchErr *LaunchError
		if !errors.As(err, &launchErr) {
			t.Fatalf("expected *LaunchError, got %T: %v", err, err)
		}
	})

	t.Run("binary not on PATH", func(t *testing.T) {
		inv := New("ffufai-test-binary-that-does-not-exist", WithLogger(discardLogger()))
		_, err := inv.Run(context.Background(), nil)
		if !errors.Is(err, exec.ErrNotFound) {
			t.Errorf("expected exec.ErrNotFound, got %v", err)
		}
	})

	t.Run("cancelled context does not start", func(t *testing.T) {
		bin, argsFile := writeStub(t, 0)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := New(bin, WithLogger(discardLogger())).Run(ctx, nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if _, statErr := os.Stat(argsFile); !os.IsNotExist(statErr) {
			t.Error("expected stub not to run")
		}
	})
}

// TestInvokerCommand tests the displayed command line.
func TestInvokerCommand(t *testing.T) {
	t.Parallel()

	got := New("ffuf").Command([]string{"-u", "x"})
	if !reflect.DeepEqual(got, []string{"ffuf", "-u", "x"}) {
		t.Errorf("unexpected command %q", got)
	}
}

// TestLaunchError tests the error text and unwrapping.
func TestLaunchError(t *testing.T) {
	t.Parallel()

	err := &LaunchError{Path: "ffuf", Err: exec.ErrNotFound}
	if !strings.Contains(err.Error(), "failed to launch ffuf") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Error("expected wrapped exec.ErrNotFound")
	}
}
