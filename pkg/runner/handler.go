package runner

import (
	"context"
	"io"
)

// IOHandler is the loop's line source and console sink.
//
// Input renders prompt and returns one line of text. It returns io.EOF at
// end of input and domain.ErrInputAborted when the user discarded the line
// being typed (e.g. Ctrl+C at the prompt).
type IOHandler interface {
	Input(ctx context.Context, prompt string) (string, error)

	// Writer is where command output and diagnostics are written.
	Writer() io.Writer
}

// Aborter is implemented by handlers that can discard a pending read when an
// interrupt arrives while no command is running.
type Aborter interface {
	Abort()
}
