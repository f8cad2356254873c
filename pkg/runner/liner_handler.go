package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/aretw0/cmdloop/pkg/domain"
)

// LinerHandler reads lines from an interactive terminal with line editing,
// in-session history and tab completion.
//
// liner puts the terminal in raw mode only while a prompt is active, so
// Ctrl+C at the prompt surfaces as domain.ErrInputAborted while Ctrl+C during
// a command reaches the process as SIGINT.
type LinerHandler struct {
	state *liner.State
	out   io.Writer
}

// LinerOption configures a LinerHandler.
type LinerOption func(*LinerHandler)

// WithCompleter installs a full-line completer, e.g. completion.Provider.Complete.
func WithCompleter(complete func(line string) []string) LinerOption {
	return func(h *LinerHandler) {
		h.state.SetCompleter(liner.Completer(complete))
	}
}

// NewLinerHandler takes over the terminal. Close must be called to restore it.
func NewLinerHandler(opts ...LinerOption) *LinerHandler {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetTabCompletionStyle(liner.TabPrints)

	h := &LinerHandler{
		state: state,
		out:   os.Stdout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Input implements IOHandler. The read itself cannot be interrupted by ctx;
// ctx is only checked before prompting.
func (h *LinerHandler) Input(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	line, err := h.state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", domain.ErrInputAborted
		}
		return "", err
	}

	if strings.TrimSpace(line) != "" {
		h.state.AppendHistory(line)
	}
	return SanitizeInput(line)
}

// Writer implements IOHandler.
func (h *LinerHandler) Writer() io.Writer {
	return h.out
}

// Close restores the terminal.
func (h *LinerHandler) Close() error {
	return h.state.Close()
}
