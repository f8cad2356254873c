package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/cmdloop/internal/logging"
	"github.com/aretw0/cmdloop/pkg/domain"
)

// DefaultDrainTimeout is how long an interrupted suspending handler may take to
// return before the executor logs a warning. The executor keeps waiting after
// that: the next command never starts while this one is still running.
const DefaultDrainTimeout = 250 * time.Millisecond

// Resolver is the part of the registry the executor needs.
type Resolver interface {
	Resolve(token string) (*domain.Command, error)
}

// Executor resolves invocations, checks their arity and runs their handlers.
type Executor struct {
	resolver     Resolver
	scope        domain.Scope
	logger       *slog.Logger
	drainTimeout time.Duration
	middleware   []Middleware
}

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithScope sets the scope used by Execute. Dispatch takes its scope explicitly.
func WithScope(scope domain.Scope) Option {
	return func(e *Executor) {
		e.scope = scope
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithDrainTimeout overrides DefaultDrainTimeout. Zero disables the warning.
func WithDrainTimeout(d time.Duration) Option {
	return func(e *Executor) {
		e.drainTimeout = d
	}
}

// WithMiddleware wraps every handler with the given middlewares.
func WithMiddleware(mws ...Middleware) Option {
	return func(e *Executor) {
		e.middleware = append(e.middleware, mws...)
	}
}

// New creates an executor over the given resolver.
func New(resolver Resolver, opts ...Option) *Executor {
	e := &Executor{
		resolver:     resolver,
		scope:        detachedScope{},
		logger:       logging.NewNop(),
		drainTimeout: DefaultDrainTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs inv under the executor's own scope.
func (e *Executor) Execute(ctx context.Context, inv domain.Invocation, out io.Writer) (domain.Outcome, error) {
	return e.Dispatch(ctx, e.scope, inv, out)
}

// Dispatch runs inv under scope and reports the result to out.
//
// The returned error carries the classified failure of every non-success
// outcome. Only OutcomeExit is meant to end the caller's loop; every other
// outcome has already been reported to out.
func (e *Executor) Dispatch(ctx context.Context, scope domain.Scope, inv domain.Invocation, out io.Writer) (domain.Outcome, error) {
	cmd, err := e.resolver.Resolve(inv.Name)
	if err != nil {
		fmt.Fprintf(out, "Command %s not found!\n", inv.Name)
		return domain.OutcomeNotFound, err
	}

	if len(inv.Args) != cmd.Arity() {
		usageErr := &domain.UsageError{Command: inv.Name, Params: cmd.Params, Got: len(inv.Args)}
		fmt.Fprintln(out, usageErr.Error())
		return domain.OutcomeUsage, usageErr
	}

	runCtx, end, err := scope.Begin(ctx)
	if err != nil {
		return domain.OutcomeFailed, fmt.Errorf("begin %s: %w", cmd.Name, err)
	}
	defer end()

	handler := Chain(append([]Middleware{
		RecoverMiddleware(e.logger),
		LoggingMiddleware(e.logger, cmd.Name),
	}, e.middleware...)...)(cmd.Handler)

	err = e.invoke(runCtx, cmd, handler, out, inv.Args)
	return e.classify(runCtx, cmd, out, err)
}

func (e *Executor) invoke(ctx context.Context, cmd *domain.Command, h domain.HandlerFunc, out io.Writer, args []string) error {
	if !cmd.Suspending {
		return h(ctx, out, args)
	}

	done := make(chan error, 1)
	go func() {
		done <- h(ctx, out, args)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
	}

	if e.drainTimeout > 0 {
		timer := time.NewTimer(e.drainTimeout)
		defer timer.Stop()
		select {
		case <-done:
			return context.Cause(ctx)
		case <-timer.C:
			e.logger.Warn("handler did not return after cancellation", "command", cmd.Name, "drain", e.drainTimeout)
		}
	}
	<-done
	return context.Cause(ctx)
}

func (e *Executor) classify(ctx context.Context, cmd *domain.Command, out io.Writer, err error) (domain.Outcome, error) {
	switch {
	case err == nil:
		return domain.OutcomeSuccess, nil

	case errors.Is(err, domain.ErrExitRequested):
		return domain.OutcomeExit, domain.ErrExitRequested

	case ctx.Err() != nil && isCancellation(ctx, err):
		cause := context.Cause(ctx)
		e.logger.Debug("command cancelled", "command", cmd.Name, "cause", cause)
		fmt.Fprintln(out)
		return domain.OutcomeInterrupted, cause

	default:
		fmt.Fprintf(out, "Command failed: %v\n", err)
		return domain.OutcomeFailed, &domain.HandlerError{Command: cmd.Name, Err: err}
	}
}

func isCancellation(ctx context.Context, err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Cause(ctx))
}

// detachedScope gives every command its own cancellable context, with
// nothing wired to cancel it besides the parent.
type detachedScope struct{}

func (detachedScope) Begin(parent context.Context) (context.Context, func(), error) {
	ctx, cancel := context.WithCancelCause(parent)
	return ctx, func() { cancel(nil) }, nil
}
