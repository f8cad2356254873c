package runner

import (
	"context"
	"errors"
	"sync"

	"github.com/aretw0/cmdloop/pkg/domain"
)

// ErrTaskRunning is returned by Begin when a command is already in flight.
var ErrTaskRunning = errors.New("a command is already running")

// ControllerState is the state of an InterruptController.
type ControllerState int

const (
	StateIdle ControllerState = iota
	StateRunning
)

func (s ControllerState) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// InterruptController routes interrupts to the command in flight.
//
// It holds at most one running task. Begin installs the task and its cancel
// function in the same critical section, so an interrupt can never observe a
// task that is not yet cancellable. The task stays in the slot until its end
// func runs, so State reports Running while a cancelled command winds down.
// Only the first interrupt cancels it; later ones are neither cancelling nor
// idle.
type InterruptController struct {
	mu   sync.Mutex
	task *runningTask
	seq  uint64

	// OnIdle is called when an interrupt arrives with nothing running.
	OnIdle func()

	// OnInterrupt observes every delivered interrupt.
	OnInterrupt func(cancelled bool)
}

type runningTask struct {
	id          uint64
	cancel      context.CancelCauseFunc
	interrupted bool
}

// NewInterruptController creates an idle controller.
func NewInterruptController() *InterruptController {
	return &InterruptController{}
}

// Begin implements domain.Scope. The returned end func clears the task and
// releases its context; it is safe to call more than once.
func (c *InterruptController) Begin(parent context.Context) (context.Context, func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.task != nil {
		return nil, nil, ErrTaskRunning
	}

	ctx, cancel := context.WithCancelCause(parent)
	c.seq++
	t := &runningTask{id: c.seq, cancel: cancel}
	c.task = t

	var once sync.Once
	end := func() {
		once.Do(func() {
			c.mu.Lock()
			if c.task == t {
				c.task = nil
			}
			c.mu.Unlock()
			cancel(nil)
		})
	}
	return ctx, end, nil
}

// Interrupt cancels the running task, if any, with domain.ErrInterrupted.
// It reports whether this call cancelled it.
func (c *InterruptController) Interrupt() bool {
	c.mu.Lock()
	t := c.task
	cancelled := t != nil && !t.interrupted
	if cancelled {
		t.interrupted = true
	}
	onIdle, onInterrupt := c.OnIdle, c.OnInterrupt
	c.mu.Unlock()

	switch {
	case cancelled:
		t.cancel(domain.ErrInterrupted)
	case t == nil && onIdle != nil:
		onIdle()
	}
	if onInterrupt != nil {
		onInterrupt(cancelled)
	}
	return cancelled
}

// observe installs the callbacks while watchers may already be running.
func (c *InterruptController) observe(onIdle func(), onInterrupt func(cancelled bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if onIdle != nil {
		c.OnIdle = onIdle
	}
	c.OnInterrupt = onInterrupt
}

// State reports whether a command is in flight.
func (c *InterruptController) State() ControllerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.task != nil {
		return StateRunning
	}
	return StateIdle
}

// Watch forwards every event from source to Interrupt until ctx is done or
// source is closed. The returned stop func ends the watcher and waits for it.
func (c *InterruptController) Watch(ctx context.Context, source <-chan struct{}) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-source:
				if !ok {
					return
				}
				c.Interrupt()
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
