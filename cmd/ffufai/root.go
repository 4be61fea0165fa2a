package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/ffufai/internal/advisor"
	"github.com/nao1215/ffufai/internal/config"
	"github.com/nao1215/ffufai/internal/database"
	"github.com/nao1215/ffufai/internal/fuzz"
	"github.com/nao1215/ffufai/internal/llm"
	"github.com/nao1215/ffufai/internal/log"
	"github.com/nao1215/ffufai/internal/model"
	"github.com/nao1215/ffufai/internal/pipeline"
	"github.com/nao1215/ffufai/internal/probe"
)

// environment is everything a run takes from the outside world.
// Tests replace parts of it.
type environment struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// getenv reads provider settings, usually os.Getenv.
	getenv func(string) string

	// dataDir holds the suggestion database. Empty means the XDG data dir.
	dataDir string

	newCompleter func(p config.Provider, cfg *config.Config) (llm.Completer, error)
	newProber    func(inv *model.Invocation, cfg *config.Config, logger *slog.Logger) probe.Prober
}

func defaultEnvironment() *environment {
	return &environment{
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		getenv:       os.Getenv,
		newCompleter: newCompleter,
		newProber:    newProber,
	}
}

// NewRootCmd creates the root command for ffufai.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultEnvironment())
}

func newRootCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ffufai [flags] -u URL [ffuf flags]",
		Short: "AI-powered ffuf wrapper that suggests file extensions",
		Long: `ffufai wraps ffuf. It fetches the response headers of the target,
asks a language model which file extensions are worth fuzzing and runs ffuf
with all of your arguments plus "-e <extensions>".

The model provider is chosen from the environment, in this order:
  OLLAMA_MODEL       local Ollama server (OLLAMA_HOST overrides the address)
  ANTHROPIC_API_KEY  Anthropic Messages API
  OPENAI_API_KEY     OpenAI Chat Completions API

Every flag that is not listed below is passed to ffuf unchanged.
Put FUZZ at the end of the URL path for extension fuzzing to make sense.

Examples:
  ffufai -u https://example.com/FUZZ -w wordlist.txt
  ffufai --max-extensions 6 -u https://example.com/admin/FUZZ -w words.txt -mc 200,403
  ffufai --ffuf-path /opt/ffuf/ffuf -u https://example.com/FUZZ -w words.txt -H "Cookie: a=b"`,
		Version:            getVersion(),
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRootCmd(cmd, env, args)
		},
	}
	cmd.SetIn(env.stdin)
	cmd.SetOut(env.stdout)
	cmd.SetErr(env.stderr)

	// These are parsed by splitArgs. They are registered for the help text
	// and so that cobra does not mistake their values for subcommands.
	cmd.Flags().String(flagFfufPath, config.DefaultFfufPath, "Path to the ffuf executable")
	cmd.Flags().Int(flagMaxExtensions, config.DefaultMaxExtensions, "Maximum number of extensions to suggest")
	cmd.Flags().String(flagConfig, "", "Path to a .ffufai configuration file")
	cmd.Flags().Bool(flagVerbose, false, "Enable verbose logging")
	cmd.Flags().Bool(flagNoCache, false, "Always ask the model instead of reusing a cached suggestion")
	cmd.Flags().Bool(flagDryRun, false, "Print the ffuf command instead of running it")

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(newHistoryCmd(env))

	return cmd
}

// Execute runs the root command and exits with its exit code.
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil && !isSilent(err) {
		newPrinter(os.Stderr).Errorf("%v", err)
	}
	os.Exit(exitCodeOf(err))
}

// runRootCmd performs one ffufai run.
func runRootCmd(cmd *cobra.Command, env *environment, args []string) error {
	status := newPrinter(env.stderr)

	tf, passthrough, err := splitArgs(args)
	if err != nil {
		return usageError(err)
	}

	// Help and version never reach the probe or the model, even with -u.
	switch {
	case wantsHelp(passthrough):
		return cmd.Help()
	case wantsVersion(passthrough):
		fmt.Fprintf(env.stdout, "ffufai version %s\n", getVersion())
		return nil
	}

	inv, err := model.ParseInvocation(passthrough)
	if err != nil {
		return usageError(fmt.Errorf("%w (see 'ffufai --help')", err))
	}

	logger := log.NewSecureLogger(env.stderr, tf.verbose)
	slog.SetDefault(logger)

	cfg, err := buildConfig(tf, env)
	if err != nil {
		return configError(err)
	}

	if !model.HasPlaceholderAtEnd(inv.URL) {
		status.Warnf("%s keyword is not at the end of the URL path. Extension fuzzing may not work as expected.", model.Placeholder)
	}

	provider, err := cfg.ResolveProvider(env.getenv)
	if err != nil {
		return configError(err)
	}
	completer, err := env.newCompleter(provider, cfg)
	if err != nil {
		return configError(err)
	}
	logger.Debug("provider selected", "provider", completer.Name(), "model", completer.Model())

	advisorOpts := []advisor.Option{
		advisor.WithLogger(logger),
		advisor.WithCacheLookup(cfg.UseCache),
	}
	if db := openDatabase(cfg.DBDir, logger); db != nil {
		defer db.Close()
		advisorOpts = append(advisorOpts, advisor.WithStore(db, cfg.CacheTTL))
	}

	invoker := fuzz.New(cfg.FfufPath,
		fuzz.WithStdio(env.stdin, env.stdout, env.stderr),
		fuzz.WithLogger(logger),
	)

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewProbeStep(env.newProber(inv, cfg, logger)),
		pipeline.NewAdviseStep(advisor.New(completer, cfg.MaxExtensions, advisorOpts...), logger),
		&announceStep{status: status},
		pipeline.NewInvokeStep(invoker, cfg.DryRun),
	)

	// Ctrl-C reaches ffuf directly; ffufai stays alive to collect its exit code.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := model.NewRun(inv)
	if err := p.Execute(ctx, run); err != nil {
		return runError(err)
	}

	if cfg.DryRun {
		fmt.Fprintln(env.stdout, shellJoin(run.Command))
		return nil
	}
	if run.ExitCode != 0 {
		return &exitError{code: run.ExitCode}
	}
	return nil
}

// runError maps a pipeline failure to its exit code.
func runError(err error) error {
	var launchErr *fuzz.LaunchError
	switch {
	case errors.Is(err, context.Canceled):
		return &exitError{code: exitInterrupted, err: errors.New("interrupted")}
	case errors.Is(err, advisor.ErrModelCall):
		return &exitError{code: exitUnavailable, err: err}
	case errors.As(err, &launchErr):
		return &exitError{code: exitNotFound, err: err}
	default:
		return err
	}
}

// buildConfig layers defaults, the config file and the command line flags.
func buildConfig(tf *toolFlags, env *environment) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.ConfigFilePath = tf.configPath

	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if tf.ffufPath != nil {
		cfg.FfufPath = *tf.ffufPath
	}
	if tf.maxExtensions != nil {
		cfg.MaxExtensions = *tf.maxExtensions
	}
	cfg.Verbose = tf.verbose
	cfg.DryRun = tf.dryRun
	cfg.UseCache = !tf.noCache
	if env.dataDir != "" {
		cfg.DBDir = env.dataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// openDatabase opens the suggestion store. A failure only disables caching
// and history, so it is logged and nil is returned.
func openDatabase(dir string, logger *slog.Logger) *database.SuggestionDB {
	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		logger.Warn("suggestion database unavailable, continuing without cache", "error", err)
		return nil
	}
	return db
}

func newCompleter(p config.Provider, cfg *config.Config) (llm.Completer, error) {
	return llm.New(p, llm.WithTimeout(cfg.ModelTimeout))
}

// newProber builds the header probe from the user's ffuf options.
func newProber(inv *model.Invocation, cfg *config.Config, logger *slog.Logger) probe.Prober {
	opts := []probe.Option{
		probe.WithTimeout(cfg.ProbeTimeout),
		probe.WithUserAgent(cfg.UserAgent),
		probe.WithMaxBodySize(cfg.MaxBodySize),
		probe.WithHeaders(inv.Headers),
		probe.WithCookie(inv.Cookie),
		probe.WithProxy(inv.Proxy),
		probe.WithLogger(logger),
	}

	detector, err := probe.NewWappalyzerDetector()
	if err != nil {
		logger.Debug("technology detection disabled", "error", err)
	} else {
		opts = append(opts, probe.WithDetector(detector))
	}

	fetcher, err := probe.New(opts...)
	if err != nil {
		// Never bypass the user's proxy: skip the probe instead.
		logger.Warn("cannot probe through the given proxy, continuing without headers", "proxy", inv.Proxy, "error", err)
		return probe.Noop{}
	}
	return fetcher
}

// announceStep prints the suggestion before ffuf starts.
type announceStep struct {
	status *printer
}

// Name implements pipeline.Step.
func (s *announceStep) Name() string {
	return "announce"
}

// Do implements pipeline.Step.
func (s *announceStep) Do(_ context.Context, run *model.Run) error {
	if len(run.Extensions) == 0 {
		s.status.Warnf("no extensions suggested")
		return nil
	}
	source := run.Provider
	if run.Cached {
		source += ", cached"
	}
	s.status.Infof("Suggested extensions: %s (%s)", run.Extensions.Join(), source)
	return nil
}
