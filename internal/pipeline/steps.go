package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/ffufai/internal/advisor"
	"github.com/nao1215/ffufai/internal/fuzz"
	"github.com/nao1215/ffufai/internal/model"
	"github.com/nao1215/ffufai/internal/probe"
)

// ProbeStep fetches the target's headers. It never fails.
type ProbeStep struct {
	prober probe.Prober
}

// NewProbeStep creates a ProbeStep.
func NewProbeStep(prober probe.Prober) *ProbeStep {
	return &ProbeStep{prober: prober}
}

// Name implements Step.
func (s *ProbeStep) Name() string {
	return "probe"
}

// Do probes the URL with the placeholder removed.
func (s *ProbeStep) Do(ctx context.Context, run *model.Run) error {
	probeURL := model.ProbeURL(run.Invocation.URL)
	fp := s.prober.Fetch(ctx, probeURL)
	if fp == nil {
		fp = model.NewEmptyFingerprint(probeURL)
	}
	run.Fingerprint = fp
	return nil
}

// Suggester returns extensions for a URL. *advisor.Advisor implements it.
type Suggester interface {
	Suggest(ctx context.Context, url string, fp *model.Fingerprint) (*advisor.Result, error)
}

// AdviseStep asks the model for extensions.
// It fails when the model provider cannot be reached or rejects the call.
type AdviseStep struct {
	suggester Suggester
	logger    *slog.Logger
}

// NewAdviseStep creates an AdviseStep.
func NewAdviseStep(suggester Suggester, logger *slog.Logger) *AdviseStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdviseStep{suggester: suggester, logger: logger}
}

// Name implements Step.
func (s *AdviseStep) Name() string {
	return "advise"
}

// Do stores the suggested extensions in run.
func (s *AdviseStep) Do(ctx context.Context, run *model.Run) error {
	fp := run.Fingerprint
	if fp == nil {
		fp = model.NewEmptyFingerprint(model.ProbeURL(run.Invocation.URL))
	}

	result, err := s.suggester.Suggest(ctx, run.Invocation.URL, fp)
	if err != nil {
		return err
	}

	run.Extensions = result.Extensions
	run.Cached = result.Cached
	run.Provider = result.Provider
	run.Model = result.Model

	s.logger.Debug("extensions suggested",
		"extensions", result.Extensions.Join(),
		"cached", result.Cached,
		"provider", result.Provider,
		"model", result.Model,
	)
	return nil
}

// Runner runs ffuf. *fuzz.Invoker implements it.
type Runner interface {
	Command(args []string) []string
	Run(ctx context.Context, args []string) (int, error)
}

// InvokeStep builds the ffuf command and runs it.
// A non-zero ffuf exit is recorded in run, not returned; only a failure
// to launch ffuf is an error.
type InvokeStep struct {
	runner Runner
	dryRun bool
}

// NewInvokeStep creates an InvokeStep. With dryRun the command is built
// but not executed.
func NewInvokeStep(runner Runner, dryRun bool) *InvokeStep {
	return &InvokeStep{runner: runner, dryRun: dryRun}
}

// Name implements Step.
func (s *InvokeStep) Name() string {
	return "invoke"
}

// Do runs ffuf and records its exit code.
func (s *InvokeStep) Do(ctx context.Context, run *model.Run) error {
	args := fuzz.BuildArgs(run.Invocation.Args, run.Invocation.UserExtensions, run.Extensions)
	run.Command = s.runner.Command(args)

	if s.dryRun {
		return nil
	}

	code, err := s.runner.Run(ctx, args)
	if err != nil {
		return err
	}
	run.ExitCode = code
	return nil
}
