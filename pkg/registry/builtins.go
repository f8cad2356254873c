package registry

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/cmdloop/pkg/domain"
)

const (
	CommandHelp = "help"
	CommandQuit = "quit"

	// DocHeader is the first line of the help listing.
	DocHeader = "Documented commands:"
)

var builtinAliases = map[string]string{
	"?":    CommandHelp,
	"exit": CommandQuit,
}

func (r *Registry) builtins() []domain.Command {
	return []domain.Command{
		{
			Name: CommandHelp,
			Handler: func(_ context.Context, out io.Writer, _ []string) error {
				_, err := io.WriteString(out, r.HelpText())
				return err
			},
		},
		{
			Name: CommandQuit,
			Doc:  "Exit the prompt",
			Handler: func(context.Context, io.Writer, []string) error {
				return domain.ErrExitRequested
			},
		},
	}
}

// HelpText renders the help listing. Every listed name, aliases included,
// gets one line: the name, its bracketed parameters and its doc string.
func (r *Registry) HelpText() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(DocHeader + "\n")
	b.WriteString(strings.Repeat("=", len(DocHeader)) + "\n")
	b.WriteString("\n")
	for _, name := range r.ListCommands() {
		cmd, err := r.Resolve(name)
		if err != nil {
			continue
		}
		params := make([]string, len(cmd.Params))
		for i, p := range cmd.Params {
			params[i] = "<" + p + ">"
		}
		fmt.Fprintf(&b, "%s %s      %s\n", name, strings.Join(params, " "), cmd.Doc)
	}
	return b.String()
}
