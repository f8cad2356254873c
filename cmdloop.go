package cmdloop

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/cmdloop/internal/logging"
	"github.com/aretw0/cmdloop/pkg/completion"
	"github.com/aretw0/cmdloop/pkg/domain"
	"github.com/aretw0/cmdloop/pkg/executor"
	"github.com/aretw0/cmdloop/pkg/observability"
	"github.com/aretw0/cmdloop/pkg/registry"
	"github.com/aretw0/cmdloop/pkg/runner"
)

// Version is the release of the library, overridden at link time by the CLI build.
var Version = "0.1.0-dev"

// Shell is the high-level entry point of the library.
// It wires a registry, an executor and a runner together.
type Shell struct {
	registry  *registry.Registry
	executor  *executor.Executor
	runner    *runner.Runner
	completer *completion.Provider
	logger    *slog.Logger
	metrics   *observability.Metrics
}

type settings struct {
	commands     []domain.Command
	overrides    []domain.Command
	aliases      map[string]string
	runnerOpts   []runner.Option
	hooks        domain.LifecycleHooks
	middleware   []executor.Middleware
	drainTimeout time.Duration
	logger       *slog.Logger
	metrics      *observability.Metrics
	handler      func(*completion.Provider) runner.IOHandler
}

// Option defines a functional option for configuring the Shell.
type Option func(*settings)

// WithCommand registers one or more commands.
func WithCommand(cmds ...domain.Command) Option {
	return func(s *settings) {
		s.commands = append(s.commands, cmds...)
	}
}

// WithOverride registers commands that replace a built-in (help, quit).
func WithOverride(cmds ...domain.Command) Option {
	return func(s *settings) {
		s.overrides = append(s.overrides, cmds...)
	}
}

// WithAliases adds aliases on top of the built-in "?" and "exit".
func WithAliases(aliases map[string]string) Option {
	return func(s *settings) {
		if s.aliases == nil {
			s.aliases = make(map[string]string, len(aliases))
		}
		for k, v := range aliases {
			s.aliases[k] = v
		}
	}
}

// WithPrompt sets the prompt string (default "$ ").
func WithPrompt(prompt string) Option {
	return func(s *settings) {
		s.runnerOpts = append(s.runnerOpts, runner.WithPrompt(prompt))
	}
}

// WithInputHandler sets the line source and console sink.
func WithInputHandler(h runner.IOHandler) Option {
	return func(s *settings) {
		s.handler = func(*completion.Provider) runner.IOHandler { return h }
	}
}

// WithLineEditor reads from the terminal through liner, with tab-completion
// fed by the shell's registry.
func WithLineEditor() Option {
	return func(s *settings) {
		s.handler = func(p *completion.Provider) runner.IOHandler {
			return runner.NewLinerHandler(runner.WithCompleter(p.Complete))
		}
	}
}

// WithCatchInterrupts controls the SIGINT hookup (default true).
func WithCatchInterrupts(catch bool) Option {
	return func(s *settings) {
		s.runnerOpts = append(s.runnerOpts, runner.WithCatchInterrupts(catch))
	}
}

// WithInterruptSource replaces the SIGINT hookup with a channel.
func WithInterruptSource(ch <-chan struct{}) Option {
	return func(s *settings) {
		s.runnerOpts = append(s.runnerOpts, runner.WithInterruptSource(ch))
	}
}

// WithOnExit registers the teardown hook, run exactly once.
func WithOnExit(fn func(context.Context) error) Option {
	return func(s *settings) {
		s.runnerOpts = append(s.runnerOpts, runner.WithOnExit(fn))
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.hooks = s.hooks.Merge(hooks)
	}
}

// WithMiddleware wraps every command handler.
func WithMiddleware(mws ...executor.Middleware) Option {
	return func(s *settings) {
		s.middleware = append(s.middleware, mws...)
	}
}

// WithDrainTimeout sets how long an interrupted suspending command may take to
// return before a warning is logged. The shell still waits for it.
func WithDrainTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.drainTimeout = d
	}
}

// WithMetrics records command metrics into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}

// New builds a Shell. It fails if the command table is inconsistent.
func New(opts ...Option) (*Shell, error) {
	s := &settings{
		drainTimeout: executor.DefaultDrainTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}

	reg, err := registry.New(
		registry.WithCommands(s.commands...),
		registry.WithOverrides(s.overrides...),
		registry.WithAliases(s.aliases),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build command registry: %w", err)
	}

	exec := executor.New(reg,
		executor.WithLogger(s.logger),
		executor.WithDrainTimeout(s.drainTimeout),
		executor.WithMiddleware(s.middleware...),
	)

	hooks := s.hooks
	if s.metrics != nil {
		hooks = hooks.Merge(s.metrics.Hooks())
	}

	sh := &Shell{
		registry:  reg,
		executor:  exec,
		completer: completion.New(reg),
		logger:    s.logger,
		metrics:   s.metrics,
	}

	runnerOpts := []runner.Option{
		runner.WithLogger(s.logger),
		runner.WithHooks(hooks),
	}
	if s.handler != nil {
		runnerOpts = append(runnerOpts, runner.WithInputHandler(s.handler(sh.completer)))
	} else {
		runnerOpts = append(runnerOpts, runner.WithInputHandler(runner.NewTextHandler(nil, nil)))
	}
	sh.runner = runner.NewRunner(exec, append(runnerOpts, s.runnerOpts...)...)
	return sh, nil
}

// Run reads and dispatches lines until quit, end of input or ctx cancellation.
// It returns nil for quit and end of input.
func (s *Shell) Run(ctx context.Context) error {
	s.logger.Debug("shell started", "commands", len(s.registry.ListCommands()))
	return s.runner.Run(ctx)
}

// Execute runs a single line outside the loop and reports its outcome.
// Interrupts delivered to the loop do not reach it.
func (s *Shell) Execute(ctx context.Context, line string) (domain.Outcome, error) {
	inv, ok := domain.ParseLine(line)
	if !ok {
		return domain.OutcomeSuccess, nil
	}
	return s.executor.Execute(ctx, inv, s.runner.Handler.Writer())
}

// Interrupt cancels the running command, if any, as Ctrl+C would.
func (s *Shell) Interrupt() bool {
	return s.runner.Controller().Interrupt()
}

// Registry exposes the command table.
func (s *Shell) Registry() *registry.Registry {
	return s.registry
}

// Completer exposes the tab-completion provider.
func (s *Shell) Completer() *completion.Provider {
	return s.completer
}

// Metrics returns the collectors installed by WithMetrics, or nil.
func (s *Shell) Metrics() *observability.Metrics {
	return s.metrics
}
