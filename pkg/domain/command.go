package domain

import (
	"context"
	"io"
	"strings"
)

// HandlerFunc implements a command.
// args holds the positional arguments exactly as typed; converting them to
// richer types is the handler's job. Output intended for the user goes to out.
type HandlerFunc func(ctx context.Context, out io.Writer, args []string) error

// CompletionFunc returns the candidates offered for a command's arguments.
// It is called lazily, every time completion is requested.
type CompletionFunc func() []string

// Command describes a named, invocable operation.
type Command struct {
	// Name is the unique key used to invoke the command.
	Name string

	// Params lists the required positional parameters, in order.
	// Defaults a handler applies internally are not parameters.
	Params []string

	// Suspending marks handlers that may block (I/O, timers, sleeps).
	// They run under a cancellation scope the interrupt can abort.
	Suspending bool

	// Doc is shown by help. Optional.
	Doc string

	Handler HandlerFunc

	// Complete provides argument candidates for tab-completion. Optional.
	Complete CompletionFunc
}

// Arity returns the number of arguments a caller must supply.
func (c Command) Arity() int {
	return len(c.Params)
}

// Usage renders "name <p1> <p2>".
func (c Command) Usage() string {
	return UsageLine(c.Name, c.Params)
}

// UsageLine renders a command name followed by its bracketed parameters.
func UsageLine(name string, params []string) string {
	var b strings.Builder
	b.WriteString(name)
	for _, p := range params {
		b.WriteString(" <")
		b.WriteString(p)
		b.WriteString(">")
	}
	return b.String()
}

// Invocation is the ephemeral form of one input line.
type Invocation struct {
	Name string
	Args []string
}

// ParseLine splits a line on whitespace. The first token is the command name,
// the rest are literal arguments. Quoting is not supported.
// ok is false for blank lines.
func ParseLine(line string) (inv Invocation, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Invocation{}, false
	}
	return Invocation{Name: fields[0], Args: fields[1:]}, true
}

// Scope hands out the cancellation context of one command execution.
// end must be called once the command has finished, failed or been cancelled.
type Scope interface {
	Begin(parent context.Context) (ctx context.Context, end func(), err error)
}
