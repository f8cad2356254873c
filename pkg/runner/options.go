package runner

import (
	"context"
	"log/slog"

	"github.com/aretw0/cmdloop/pkg/domain"
)

// DefaultPrompt is rendered before each read.
const DefaultPrompt = "$ "

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithInputHandler configures the line source and console sink.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithPrompt overrides DefaultPrompt.
func WithPrompt(prompt string) Option {
	return func(r *Runner) {
		r.Prompt = prompt
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithCatchInterrupts controls whether the runner installs an OS interrupt
// hookup for its lifetime (default true). When false, Ctrl+C at the prompt
// ends the loop and only an explicit interrupt source can cancel commands.
func WithCatchInterrupts(catch bool) Option {
	return func(r *Runner) {
		r.CatchInterrupts = catch
	}
}

// WithInterruptSource sets a channel that signals the runner to interrupt the
// current command. It replaces the OS signal hookup.
func WithInterruptSource(ch <-chan struct{}) Option {
	return func(r *Runner) {
		r.InterruptSource = ch
	}
}

// WithOnExit registers a teardown hook, run exactly once when the loop ends.
func WithOnExit(fn func(context.Context) error) Option {
	return func(r *Runner) {
		r.OnExit = fn
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.Hooks = r.Hooks.Merge(hooks)
	}
}

// WithController shares an InterruptController with the caller.
func WithController(c *InterruptController) Option {
	return func(r *Runner) {
		r.controller = c
	}
}
