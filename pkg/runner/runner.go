package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/cmdloop/internal/logging"
	"github.com/aretw0/cmdloop/pkg/domain"
)

// Dispatcher runs one invocation under the given scope.
// *executor.Executor implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, scope domain.Scope, inv domain.Invocation, out io.Writer) (domain.Outcome, error)
}

// Runner is the prompt → read → dispatch loop.
type Runner struct {
	// Handler is the line source and console sink. Defaults to a TextHandler
	// on Stdin/Stdout.
	Handler IOHandler

	Prompt string

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// CatchInterrupts installs the OS interrupt hookup for the loop lifetime.
	CatchInterrupts bool

	// InterruptSource, when set, replaces the OS interrupt hookup.
	InterruptSource <-chan struct{}

	// OnExit runs once when the loop terminates, however it terminates.
	OnExit func(context.Context) error

	Hooks domain.LifecycleHooks

	dispatcher Dispatcher
	controller *InterruptController
	exitOnce   sync.Once
}

// NewRunner creates a Runner dispatching through d.
func NewRunner(d Dispatcher, opts ...Option) *Runner {
	r := &Runner{
		Prompt:          DefaultPrompt,
		Logger:          logging.NewNop(),
		CatchInterrupts: true,
		dispatcher:      d,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.controller == nil {
		r.controller = NewInterruptController()
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	return r
}

// Controller returns the runner's InterruptController.
func (r *Runner) Controller() *InterruptController {
	return r.controller
}

// Run executes the loop until quit, end of input or ctx cancellation.
// It returns nil for quit and end of input.
func (r *Runner) Run(ctx context.Context) (err error) {
	handler := r.resolveHandler()
	defer func() {
		if exitErr := r.teardown(ctx, handler); err == nil {
			err = exitErr
		}
	}()

	stop := r.armInterrupts(ctx, handler)
	defer stop()

	for {
		line, err := handler.Input(ctx, r.Prompt)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				r.Logger.Debug("end of input")
				return nil
			case errors.Is(err, domain.ErrInputAborted):
				if r.CatchInterrupts {
					continue
				}
				return domain.ErrInterrupted
			case errors.Is(err, ErrInputTooLarge), errors.Is(err, ErrInvalidUTF8):
				fmt.Fprintf(handler.Writer(), "Error: %v. Please try again.\n", err)
				continue
			case ctx.Err() != nil:
				return ctx.Err()
			default:
				return fmt.Errorf("input error: %w", err)
			}
		}

		inv, ok := domain.ParseLine(line)
		if !ok {
			continue
		}

		if outcome := r.dispatch(ctx, inv, handler.Writer()); outcome.Terminal() {
			r.Logger.Debug("exit requested", "command", inv.Name)
			return nil
		}
	}
}

func (r *Runner) dispatch(ctx context.Context, inv domain.Invocation, out io.Writer) domain.Outcome {
	start := time.Now()
	if r.Hooks.OnCommandStart != nil {
		r.Hooks.OnCommandStart(ctx, &domain.CommandEvent{
			EventBase: domain.EventBase{Timestamp: start, Type: domain.EventCommandStart},
			Name:      inv.Name,
			Args:      inv.Args,
		})
	}

	outcome, err := r.dispatcher.Dispatch(ctx, r.controller, inv, out)

	r.Logger.Debug("command dispatched", "command", inv.Name, "outcome", outcome.String(), "error", err)
	if r.Hooks.OnCommandFinish != nil {
		r.Hooks.OnCommandFinish(ctx, &domain.CommandEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventCommandFinish},
			Name:      inv.Name,
			Args:      inv.Args,
			Outcome:   outcome,
			Duration:  time.Since(start),
			Err:       err,
		})
	}
	return outcome
}

// armInterrupts wires the interrupt source to the controller.
func (r *Runner) armInterrupts(ctx context.Context, handler IOHandler) (stop func()) {
	source := r.InterruptSource
	stopSignals := func() {}
	if source == nil {
		if !r.CatchInterrupts {
			return func() {}
		}
		signals := NewSignalManager()
		source = signals.Interrupts()
		stopSignals = signals.Stop
	}

	var onIdle func()
	if aborter, ok := handler.(Aborter); ok {
		onIdle = aborter.Abort
	}
	r.controller.observe(onIdle, func(cancelled bool) {
		r.Logger.Debug("interrupt received", "cancelled", cancelled)
		if r.Hooks.OnInterrupt != nil {
			r.Hooks.OnInterrupt(ctx, &domain.InterruptEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventInterrupt},
				Cancelled: cancelled,
			})
		}
	})

	stopWatch := r.controller.Watch(ctx, source)
	return func() {
		stopWatch()
		stopSignals()
	}
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler == nil {
		r.Handler = NewTextHandler(nil, nil)
	}
	return r.Handler
}

func (r *Runner) teardown(ctx context.Context, handler IOHandler) error {
	var err error
	r.exitOnce.Do(func() {
		if r.OnExit != nil {
			// The loop context may already be cancelled; cleanup still runs.
			err = r.OnExit(context.WithoutCancel(ctx))
		}
		if closer, ok := handler.(io.Closer); ok {
			if closeErr := closer.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}
	})
	return err
}
