package runner

import (
	"os"
	"os/signal"
	"sync"
)

// SignalManager turns OS interrupt signals into interrupt events.
//
// While a SignalManager is active the process no longer dies on Ctrl+C; each
// signal becomes one event on Interrupts(). Events are not queued: a signal
// that arrives while the previous event is still unread is coalesced.
type SignalManager struct {
	sigCh chan os.Signal
	out   chan struct{}
	quit  chan struct{}
	done  chan struct{}
	once  sync.Once
}

// NewSignalManager creates a new manager and immediately starts listening for
// the given signals (os.Interrupt when none are given).
func NewSignalManager(sigs ...os.Signal) *SignalManager {
	if len(sigs) == 0 {
		sigs = []os.Signal{os.Interrupt}
	}
	sm := &SignalManager{
		sigCh: make(chan os.Signal, 1),
		out:   make(chan struct{}, 1),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	signal.Notify(sm.sigCh, sigs...)
	go sm.forward()
	return sm
}

func (sm *SignalManager) forward() {
	defer close(sm.done)
	for {
		select {
		case <-sm.quit:
			return
		case <-sm.sigCh:
			select {
			case sm.out <- struct{}{}:
			default:
			}
		}
	}
}

// Interrupts returns the event channel.
func (sm *SignalManager) Interrupts() <-chan struct{} {
	return sm.out
}

// Stop permanently stops the signal listener and restores default handling.
func (sm *SignalManager) Stop() {
	sm.once.Do(func() {
		signal.Stop(sm.sigCh)
		close(sm.quit)
		<-sm.done
	})
}
