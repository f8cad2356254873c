package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/aretw0/cmdloop/pkg/domain"
)

// TextHandler reads plain lines from any io.Reader. It is the handler used
// when stdin is not a terminal, and the one tests drive.
//
// Reads happen on a pump goroutine so Input can give up on a read when its
// context is cancelled or Abort is called.
type TextHandler struct {
	Reader *bufio.Reader
	Out    io.Writer

	inputChan chan inputResult
	abortChan chan struct{}
	closed    chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// NewTextHandler creates a handler for standard text IO.
// nil arguments default to os.Stdin and os.Stdout.
func NewTextHandler(r io.Reader, w io.Writer) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &TextHandler{
		Reader:    bufio.NewReader(r),
		Out:       w,
		abortChan: make(chan struct{}, 1),
		closed:    make(chan struct{}),
	}
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

func (h *TextHandler) pump() {
	defer close(h.inputChan)
	for {
		text, err := h.Reader.ReadString('\n')

		// A final line without a newline still counts.
		if text != "" {
			if !h.send(inputResult{text: text}) {
				return
			}
		}
		if err != nil {
			if err != io.EOF {
				h.send(inputResult{err: err})
			}
			return
		}
	}
}

func (h *TextHandler) send(res inputResult) bool {
	select {
	case h.inputChan <- res:
		return true
	case <-h.closed:
		return false
	}
}

// Writer implements IOHandler.
func (h *TextHandler) Writer() io.Writer {
	return h.Out
}

// Input implements IOHandler.
func (h *TextHandler) Input(ctx context.Context, prompt string) (string, error) {
	h.initPump()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprint(h.Out, prompt)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-h.abortChan:
			fmt.Fprintln(h.Out)
			return "", domain.ErrInputAborted
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}

			clean, err := SanitizeInput(res.text)
			if err != nil {
				fmt.Fprintf(h.Out, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}

// Abort discards the pending read, if any. An abort with no read pending is
// kept for the next Input call only if none is already queued.
func (h *TextHandler) Abort() {
	select {
	case h.abortChan <- struct{}{}:
	default:
	}
}

// Close stops the pump. A read already blocked on the underlying reader is
// abandoned.
func (h *TextHandler) Close() error {
	h.closeOnce.Do(func() {
		close(h.closed)
	})
	return nil
}
