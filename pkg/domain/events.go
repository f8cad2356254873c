package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCommandStart  EventType = "command_start"
	EventCommandFinish EventType = "command_finish"
	EventInterrupt     EventType = "interrupt"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// CommandEvent describes one dispatch.
// Outcome, Duration and Err are only set on EventCommandFinish.
type CommandEvent struct {
	EventBase
	Name     string        `json:"name"`
	Args     []string      `json:"args,omitempty"`
	Outcome  Outcome       `json:"outcome"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// InterruptEvent records an interrupt delivery.
// Cancelled is false when nothing was running.
type InterruptEvent struct {
	EventBase
	Cancelled bool `json:"cancelled"`
}

// LifecycleHooks defines callbacks for loop observability.
type LifecycleHooks struct {
	OnCommandStart  func(context.Context, *CommandEvent)
	OnCommandFinish func(context.Context, *CommandEvent)
	OnInterrupt     func(context.Context, *InterruptEvent)
}

// Merge returns hooks that call h first, then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCommandStart:  chainCommand(h.OnCommandStart, other.OnCommandStart),
		OnCommandFinish: chainCommand(h.OnCommandFinish, other.OnCommandFinish),
		OnInterrupt:     chainInterrupt(h.OnInterrupt, other.OnInterrupt),
	}
}

func chainCommand(a, b func(context.Context, *CommandEvent)) func(context.Context, *CommandEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *CommandEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainInterrupt(a, b func(context.Context, *InterruptEvent)) func(context.Context, *InterruptEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *InterruptEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
