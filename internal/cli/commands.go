package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/aretw0/cmdloop/pkg/domain"
)

// DefaultSleep is how long the demo sleep command suspends.
var DefaultSleep = time.Second

// DemoCommands returns the command set of the demo shell.
func DemoCommands() []domain.Command {
	return []domain.Command{
		{
			Name: "my_action",
			Doc:  "This will appear in help text",
			Handler: func(_ context.Context, out io.Writer, _ []string) error {
				_, err := fmt.Fprintln(out, "You ran my action!")
				return err
			},
		},
		{
			Name:   "add",
			Params: []string{"x", "y"},
			Handler: func(_ context.Context, out io.Writer, args []string) error {
				x, err := strconv.Atoi(args[0])
				if err != nil {
					return err
				}
				y, err := strconv.Atoi(args[1])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, x+y)
				return err
			},
			Complete: numbers(0, 9),
		},
		{
			Name:       "sleep",
			Suspending: true,
			Handler:    sleep,
			Complete:   numbers(1, 60),
		},
	}
}

func sleep(ctx context.Context, _ io.Writer, _ []string) error {
	timer := time.NewTimer(DefaultSleep)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// numbers yields the decimal strings of [from, to).
func numbers(from, to int) domain.CompletionFunc {
	return func() []string {
		out := make([]string, 0, to-from)
		for i := from; i < to; i++ {
			out = append(out, strconv.Itoa(i))
		}
		return out
	}
}
