package fuzz

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
)

// Invoker runs the ffuf binary.
type Invoker struct {
	path   string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithStdio replaces the streams handed to ffuf. Nil values keep the
// process defaults.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(i *Invoker) {
		if stdin != nil {
			i.stdin = stdin
		}
		if stdout != nil {
			i.stdout = stdout
		}
		if stderr != nil {
			i.stderr = stderr
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Invoker) {
		i.logger = logger
	}
}

// New creates an Invoker for the binary at path. A bare name such as
// "ffuf" is resolved through PATH when Run is called.
func New(path string, opts ...Option) *Invoker {
	i := &Invoker{
		path:   path,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.logger == nil {
		i.logger = slog.Default()
	}
	return i
}

// Command returns the full command line, binary first.
func (i *Invoker) Command(args []string) []string {
	return append([]string{i.path}, args...)
}

// Run executes ffuf with args and waits for it to exit.
//
// The returned exit code is ffuf's own. A non-zero exit is not an error;
// an error is returned only when ffuf could not be started (*LaunchError)
// or ctx was already done before the start.
//
// ffuf shares the terminal's process group, so Ctrl-C reaches it directly
// and Run keeps waiting until it has finished. SIGTERM sent to ffufai
// alone is forwarded to ffuf.
func (i *Invoker) Run(ctx context.Context, args []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	path, err := exec.LookPath(i.path)
	if err != nil {
		return 0, &LaunchError{Path: i.path, Err: err}
	}

	cmd := exec.Command(path, args...) //nolint:gosec // running ffuf with user arguments is the purpose of this tool
	cmd.Stdin = i.stdin
	cmd.Stdout = i.stdout
	cmd.Stderr = i.stderr

	i.logger.Debug("starting ffuf", "path", path, "args", args)

	if err := cmd.Start(); err != nil {
		return 0, &LaunchError{Path: i.path, Err: err}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case sig := <-sigCh:
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	err = cmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitCode(exitErr.ProcessState)
		i.logger.Debug("ffuf exited", "code", code)
		return code, nil
	}
	return 0, &LaunchError{Path: i.path, Err: err}
}
