/*
Package cmdloop is an embeddable interactive command loop.

It reads a line, resolves its first word to a registered command, checks the
argument count, and runs the handler. Handlers may block; Ctrl+C cancels only
the command in flight and returns to the prompt, while Ctrl+C at an empty
prompt just discards the line.

# Concept

Commands are registered explicitly in a table: a name, its required positional
parameters, a doc string for help, and a handler. There is no reflection and no
flag parsing: arguments reach the handler as the strings that were typed.

# Key Features

  - Built-in help and quit commands, with the "?" and "exit" aliases.
  - Cooperative cancellation through context.Context.
  - Tab-completion of command names and per-command argument candidates.
  - Lifecycle hooks and Prometheus metrics for every dispatch.

# Usage

	sh, err := cmdloop.New(
		cmdloop.WithCommand(domain.Command{
			Name:   "add",
			Params: []string{"x", "y"},
			Doc:    "Add two numbers",
			Handler: func(ctx context.Context, out io.Writer, args []string) error {
				x, _ := strconv.Atoi(args[0])
				y, _ := strconv.Atoi(args[1])
				fmt.Fprintln(out, x+y)
				return nil
			},
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := sh.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
*/
package cmdloop
