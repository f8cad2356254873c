/*
Package domain contains the core models of the command loop.

It defines what a command is, how a line of input becomes an invocation, the
outcomes a dispatch can produce and the errors that travel between the
registry, the executor and the runner. This package is kept free of I/O and
terminal concerns so every other package can depend on it.

# Key Entities

  - Command: A named operation with a fixed required arity and a handler.
  - Invocation: A parsed input line (command name plus literal arguments).
  - Outcome: The result category of a single dispatch.
  - LifecycleHooks: Observability callbacks fired around each command.
*/
package domain
