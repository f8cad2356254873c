package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/cmdloop/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
//
// SIGINT is not captured here; the shell turns it into a per-command
// interrupt. Only termination signals end the session.
type SignalContext struct {
	context.Context
	Cancel func()
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGTERM or SIGHUP.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
		}
		sc.stop.Do(func() {
			signal.Stop(sc.sigCh)
		})
	}()
	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommandStart: func(ctx context.Context, e *domain.CommandEvent) {
			logger.Debug("Command Start", "command", e.Name, "args", e.Args)
		},
		OnCommandFinish: func(ctx context.Context, e *domain.CommandEvent) {
			if e.Err != nil && e.Outcome != domain.OutcomeExit {
				logger.Debug("Command Finish (Error)", "command", e.Name, "outcome", e.Outcome.String(), "err", e.Err)
				return
			}
			logger.Debug("Command Finish", "command", e.Name, "outcome", e.Outcome.String(), "duration", e.Duration)
		},
		OnInterrupt: func(ctx context.Context, e *domain.InterruptEvent) {
			logger.Debug("Interrupt", "cancelled", e.Cancelled)
		},
	}
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, domain.ErrInterrupted)
}

// handleExecutionError maps the shell result to the process result.
// Interruptions exit cleanly.
func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}

func logCompletion(w io.Writer, err error, sig os.Signal) {
	switch {
	case err == nil && sig == nil:
		return
	case sig != nil:
		fmt.Fprintln(w)
		printSystemMessage(w, "Terminated by %s.", sig)
	case isInterrupted(err):
		fmt.Fprintln(w, "[CTRL+C]")
		printSystemMessage(w, "Interrupted.")
	}
}
