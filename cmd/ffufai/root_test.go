package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/nao1215/ffufai/internal/config"
	"github.com/nao1215/ffufai/internal/llm"
	"github.com/nao1215/ffufai/internal/model"
	"github.com/nao1215/ffufai/internal/probe"
)

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if !strings.HasPrefix(cmd.Use, "ffufai") {
			t.Errorf("expected use to start with 'ffufai', got %q", cmd.Use)
		}
	})

	t.Run("passes flags through", func(t *testing.T) {
		t.Parallel()
		if !cmd.DisableFlagParsing {
			t.Error("expected flag parsing to be disabled")
		}
	})

	t.Run("documents tool flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{flagFfufPath, flagMaxExtensions, flagConfig, flagVerbose, flagNoCache, flagDryRun} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected flag --%s", name)
			}
		}
		if f := cmd.Flags().Lookup(flagMaxExtensions); f != nil && f.DefValue != "4" {
			t.Errorf("expected default 4, got %q", f.DefValue)
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		found := map[string]bool{}
		for _, sub := range cmd.Commands() {
			found[sub.Name()] = true
		}
		for _, name := range []string{"init", "version", "history"} {
			if !found[name] {
				t.Errorf("expected %s subcommand", name)
			}
		}
	})
}

// stubCompleter answers every prompt with a fixed reply.
type stubCompleter struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (s *stubCompleter) Complete(_ context.Context, _, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func (s *stubCompleter) Name() string  { return "stub" }
func (s *stubCompleter) Model() string { return "stub-model" }

func (s *stubCompleter) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

// harness runs the root command against stubs.
type harness struct {
	env       *environment
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	completer *stubCompleter
	provider  config.Provider
	vars      map[string]string
	cfgPath   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "ffufai.yaml")
	if err := os.WriteFile(cfgPath, []byte("# empty\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	h := &harness{
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
		completer: &stubCompleter{reply: ".php, .html"},
		vars:      map[string]string{config.EnvOpenAIAPIKey: "sk-test"},
		cfgPath:   cfgPath,
	}
	h.env = &environment{
		stdin:   strings.NewReader(""),
		stdout:  h.stdout,
		stderr:  h.stderr,
		getenv:  func(key string) string { return h.vars[key] },
		dataDir: filepath.Join(dir, "data"),
		newCompleter: func(p config.Provider, _ *config.Config) (llm.Completer, error) {
			h.provider = p
			return h.completer, nil
		},
		newProber: func(*model.Invocation, *config.Config, *slog.Logger) probe.Prober {
			return probe.Noop{}
		},
	}
	return h
}

// run executes ffufai with args and returns the exit code.
func (h *harness) run(args ...string) int {
	cmd := newRootCmd(h.env)
	cmd.SetArgs(append([]string{"--" + flagConfig, h.cfgPath}, args...))
	return exitCodeOf(cmd.Execute())
}

// writeStubFfuf writes a fake ffuf that records its arguments and exits with code.
func writeStubFfuf(t *testing.T, code int) (binPath, argsFile string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell script stubs are not supported on windows")
	}

	dir := t.TempDir()
	argsFile = filepath.Join(dir, "args.txt")
	binPath = filepath.Join(dir, "ffuf")
	script := fmt.Sprintf("#!/bin/sh\nfor a in \"$@\"; do printf '%%s\\n' \"$a\" >> %q; done\nexit %d\n", argsFile, code)
	if err := os.WriteFile(binPath, []byte(script), 0o755); err != nil { //nolint:gosec // the stub must be executable
		t.Fatalf("failed to write stub: %v", err)
	}
	return binPath, argsFile
}

func recordedArgs(t *testing.T, argsFile string) []string {
	t.Helper()

	data, err := os.ReadFile(argsFile) //nolint:gosec // test file
	if err != nil {
		t.Fatalf("stub ffuf was not run: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// The tests below write and execute stub binaries, so they do not run in
// parallel: forking while another test writes an executable can fail with
// "text file busy".

// TestRunEndToEnd tests a full run against a stub ffuf.
func TestRunEndToEnd(t *testing.T) {
	for _, code := range []int{0, 2} {
		t.Run(fmt.Sprintf("ffuf exits %d", code), func(t *testing.T) {
			h := newHarness(t)
			bin, argsFile := writeStubFfuf(t, code)

			got := h.run("--ffuf-path", bin, "-u", "https://example.com/FUZZ", "-w", "words.txt")
			if got != code {
				t.Errorf("expected exit code %d, got %d (stderr: %s)", code, got, h.stderr.String())
			}

			want := []string{"-u", "https://example.com/FUZZ", "-w", "words.txt", "-e", ".php,.html"}
			if args := recordedArgs(t, argsFile); !reflect.DeepEqual(args, want) {
				t.Errorf("ffuf received %q, want %q", args, want)
			}
			if !strings.Contains(h.stderr.String(), "Suggested extensions: .php,.html") {
				t.Errorf("expected suggestion status line, got %q", h.stderr.String())
			}
		})
	}
}

// TestRunPlaceholderWarning tests the non-fatal FUZZ position warning.
func TestRunPlaceholderWarning(t *testing.T) {
	h := newHarness(t)
	bin, argsFile := writeStubFfuf(t, 0)

	got := h.run("--ffuf-path", bin, "-u", "https://example.com/FUZZ/admin", "-w", "words.txt")
	if got != 0 {
		t.Fatalf("expected exit code 0, got %d", got)
	}
	if !strings.Contains(h.stderr.String(), "FUZZ keyword is not at the end of the URL path") {
		t.Errorf("expected warning, got %q", h.stderr.String())
	}
	want := []string{"-u", "https://example.com/FUZZ/admin", "-w", "words.txt", "-e", ".php,.html"}
	if args := recordedArgs(t, argsFile); !reflect.DeepEqual(args, want) {
		t.Errorf("ffuf received %q, want %q", args, want)
	}
}

// TestRunFailures tests the exit codes of failed runs.
func TestRunFailures(t *testing.T) {
	t.Run("missing URL is a usage error", func(t *testing.T) {
		h := newHarness(t)
		if got := h.run("-w", "words.txt"); got != exitUsage {
			t.Errorf("expected %d, got %d", exitUsage, got)
		}
		if h.completer.calls() != 0 {
			t.Error("expected no model call")
		}
	})

	t.Run("bad tool flag is a usage error", func(t *testing.T) {
		h := newHarness(t)
		if got := h.run("--max-extensions", "lots", "-u", "https://example.com/FUZZ"); got != exitUsage {
			t.Errorf("expected %d, got %d", exitUsage, got)
		}
	})

	t.Run("no provider is a configuration error", func(t *testing.T) {
		h := newHarness(t)
		h.vars = map[string]string{}
		bin, argsFile := writeStubFfuf(t, 0)

		if got := h.run("--ffuf-path", bin, "-u", "https://example.com/FUZZ", "-w", "words.txt"); got != exitConfig {
			t.Errorf("expected %d, got %d", exitConfig, got)
		}
		if _, err := os.Stat(argsFile); !os.IsNotExist(err) {
			t.Error("expected ffuf not to run")
		}
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		h := newHarness(t)
		h.cfgPath = filepath.Join(t.TempDir(), "missing.yaml")
		if got := h.run("-u", "https://example.com/FUZZ"); got != exitConfig {
			t.Errorf("expected %d, got %d", exitConfig, got)
		}
	})

	t.Run("model failure stops the run", func(t *testing.T) {
		h := newHarness(t)
		h.completer.err = errors.New("connection refused")
		bin, argsFile := writeStubFfuf(t, 0)

		if got := h.run("--ffuf-path", bin, "-u", "https://example.com/FUZZ", "-w", "words.txt"); got != exitUnavailable {
			t.Errorf("expected %d, got %d", exitUnavailable, got)
		}
		if _, err := os.Stat(argsFile); !os.IsNotExist(err) {
			t.Error("expected ffuf not to run")
		}
	})

	t.Run("missing ffuf binary", func(t *testing.T) {
		h := newHarness(t)
		missing := filepath.Join(t.TempDir(), "ffuf")
		if got := h.run("--ffuf-path", missing, "-u", "https://example.com/FUZZ", "-w", "words.txt"); got != exitNotFound {
			t.Errorf("expected %d, got %d", exitNotFound, got)
		}
	})
}

// TestRunProviderPrecedence tests that the local model wins.
func TestRunProviderPrecedence(t *testing.T) {
	h := newHarness(t)
	h.vars = map[string]string{
		config.EnvOllamaModel:  "llama3",
		config.EnvOpenAIAPIKey: "sk-test",
	}

	if got := h.run("--ffufai-dry-run", "-u", "https://example.com/FUZZ", "-w", "words.txt"); got != 0 {
		t.Fatalf("expected exit code 0, got %d", got)
	}
	if h.provider.Kind != config.ProviderOllama || h.provider.Model != "llama3" {
		t.Errorf("expected ollama provider, got %+v", h.provider)
	}
}

// TestRunDryRun tests printing the command instead of running it.
func TestRunDryRun(t *testing.T) {
	h := newHarness(t)

	if got := h.run("--ffufai-dry-run", "-u", "https://example.com/FUZZ", "-w", "words.txt", "-e", ".bak"); got != 0 {
		t.Fatalf("expected exit code 0, got %d", got)
	}
	want := "ffuf -u https://example.com/FUZZ -w words.txt -e .bak,.php,.html\n"
	if h.stdout.String() != want {
		t.Errorf("expected %q, got %q", want, h.stdout.String())
	}
}

// TestRunZeroExtensions tests that ffuf runs without -e when nothing is suggested.
func TestRunZeroExtensions(t *testing.T) {
	h := newHarness(t)

	if got := h.run("--ffufai-dry-run", "--max-extensions", "0", "-u", "https://example.com/FUZZ", "-w", "words.txt"); got != 0 {
		t.Fatalf("expected exit code 0, got %d", got)
	}
	if h.completer.calls() != 0 {
		t.Error("expected no model call")
	}
	if h.stdout.String() != "ffuf -u https://example.com/FUZZ -w words.txt\n" {
		t.Errorf("unexpected command %q", h.stdout.String())
	}
}

// TestRunCache tests reusing a stored suggestion.
func TestRunCache(t *testing.T) {
	h := newHarness(t)
	args := []string{"--ffufai-dry-run", "-u", "https://example.com/FUZZ", "-w", "words.txt"}

	for i := range 2 {
		if got := h.run(args...); got != 0 {
			t.Fatalf("run %d: expected exit code 0, got %d", i, got)
		}
	}
	if h.completer.calls() != 1 {
		t.Errorf("expected one model call, got %d", h.completer.calls())
	}
	if !strings.Contains(h.stderr.String(), "(stub, cached)") {
		t.Errorf("expected cached status line, got %q", h.stderr.String())
	}

	if got := h.run(append([]string{"--ffufai-no-cache"}, args...)...); got != 0 {
		t.Fatalf("expected exit code 0, got %d", got)
	}
	if h.completer.calls() != 2 {
		t.Errorf("expected a fresh model call, got %d", h.completer.calls())
	}
}

// TestRunHeaderFetch tests that the fetched response headers reach the model prompt.
func TestRunHeaderFetch(t *testing.T) {
	gotHeader := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case gotHeader <- r.Header.Get("X-Scan-Token"):
		default:
		}
		w.Header().Set("Server", "header-test-server")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	h := newHarness(t)
	h.env.newProber = newProber

	got := h.run("--ffufai-dry-run", "-u", server.URL+"/FUZZ", "-w", "words.txt", "-H", "X-Scan-Token: abc")
	if got != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", got, h.stderr.String())
	}
	select {
	case token := <-gotHeader:
		if token != "abc" {
			t.Errorf("expected -H value on probe, got %q", token)
		}
	default:
		t.Error("expected the target to be probed")
	}
	if h.completer.calls() != 1 || !strings.Contains(h.completer.prompts[0], "Server: header-test-server") {
		t.Errorf("expected probe headers in prompt, got %q", h.completer.prompts)
	}
}

// TestRunHelp tests that -h prints usage without probing or asking the model.
func TestRunHelp(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "without URL", args: []string{"-h"}},
		{name: "with URL", args: []string{"-u", "https://example.com/FUZZ", "-w", "words.txt", "-h"}},
		{name: "long form with URL", args: []string{"--help", "-u", "https://example.com/FUZZ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			probed := false
			h.env.newProber = func(*model.Invocation, *config.Config, *slog.Logger) probe.Prober {
				probed = true
				return probe.Noop{}
			}
			bin, argsFile := writeStubFfuf(t, 0)

			if got := h.run(append([]string{"--ffuf-path", bin}, tt.args...)...); got != 0 {
				t.Fatalf("expected exit code 0, got %d", got)
			}
			if !strings.Contains(h.stdout.String(), "--max-extensions") {
				t.Errorf("expected usage text, got %q", h.stdout.String())
			}
			if h.completer.calls() != 0 || probed {
				t.Error("expected no probe and no model call")
			}
			if _, err := os.Stat(argsFile); !os.IsNotExist(err) {
				t.Error("expected ffuf not to run")
			}
		})
	}
}
