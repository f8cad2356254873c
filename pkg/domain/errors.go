package domain

import (
	"errors"
	"fmt"
)

// ErrCommandNotFound is returned when a token names no command or alias.
var ErrCommandNotFound = errors.New("command not found")

// ErrExitRequested is returned by the quit command to end the loop.
var ErrExitRequested = errors.New("exit requested")

// ErrInterrupted is the cancellation cause of a command aborted by an interrupt.
var ErrInterrupted = errors.New("command interrupted")

// ErrInputAborted is returned by an input handler when the user aborted the
// line being typed (e.g. Ctrl+C at the prompt). The typed text is discarded.
var ErrInputAborted = errors.New("input aborted")

// UsageError reports an argument count mismatch.
type UsageError struct {
	Command string
	Params  []string
	Got     int
}

func (e *UsageError) Error() string {
	return "Bad command args. Usage: " + UsageLine(e.Command, e.Params)
}

// HandlerError wraps a failure raised by a command handler.
type HandlerError struct {
	Command string
	Err     error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
