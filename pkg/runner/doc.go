/*
Package runner implements the read-dispatch loop and its I/O and interrupt plumbing.

It is the bridge between the command executor and the outside world. The runner
reads lines through a pluggable IOHandler, hands each one to a Dispatcher, and
owns the InterruptController that lets Ctrl+C cancel the command in flight
without tearing down the loop.

# Key Components

  - Runner: the loop. Returns nil on quit or end of input.
  - IOHandler: decouples how lines are read (plain text, liner).
  - TextHandler: reads from any io.Reader; used for pipes and tests.
  - LinerHandler: line editing, history and tab-completion on a terminal.
  - InterruptController: single-slot cancellation of the running command.
  - SignalManager: turns SIGINT into interrupt events.

# Usage

	exec := executor.New(reg)
	r := runner.NewRunner(exec,
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithPrompt("> "),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
