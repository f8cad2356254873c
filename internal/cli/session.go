package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/cmdloop"
	"github.com/aretw0/cmdloop/internal/config"
	"github.com/aretw0/cmdloop/internal/logging"
	"github.com/aretw0/cmdloop/internal/presentation/tui"
	"github.com/aretw0/cmdloop/pkg/observability"
	"github.com/aretw0/cmdloop/pkg/runner"
)

const intro = "Type `help` or `?` to list commands, `quit` or `exit` to leave.\n\n" +
	"Press **Ctrl+C** during `sleep` to cancel it without leaving the shell."

// RunSession executes one session of the demo shell.
func RunSession(ctx context.Context, cfg config.Config, opts RunOptions) error {
	logger := logging.ForDebug(cfg.Debug)

	stdin, stdout := opts.Stdin, opts.Stdout
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	interactive := !opts.Plain && isTerminal(stdin) && isTerminal(stdout)

	if interactive && !opts.NoBanner {
		tui.PrintBanner(stdout, cmdloop.Version)
		if rendered, err := tui.NewRenderer()(intro); err == nil {
			fmt.Fprint(stdout, rendered)
		}
	}

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	shellOpts := []cmdloop.Option{
		cmdloop.WithCommand(DemoCommands()...),
		cmdloop.WithAliases(cfg.Aliases),
		cmdloop.WithPrompt(cfg.Prompt),
		cmdloop.WithCatchInterrupts(cfg.CatchInterrupts),
		cmdloop.WithDrainTimeout(cfg.DrainTimeout),
		cmdloop.WithLogger(logger),
	}
	if cfg.Debug {
		shellOpts = append(shellOpts, cmdloop.WithLifecycleHooks(createDebugHooks(logger)))
	}
	if interactive {
		shellOpts = append(shellOpts, cmdloop.WithLineEditor())
	} else {
		shellOpts = append(shellOpts, cmdloop.WithInputHandler(runner.NewTextHandler(stdin, stdout)))
	}

	var metricsDone <-chan struct{}
	if cfg.MetricsAddr != "" {
		metrics := observability.NewMetrics()
		shellOpts = append(shellOpts, cmdloop.WithMetrics(metrics))
		metricsDone = serveMetrics(sigCtx, cfg.MetricsAddr, metrics, logger)
	}

	sh, err := cmdloop.New(shellOpts...)
	if err != nil {
		return fmt.Errorf("error initializing shell: %w", err)
	}

	logger.Info("Shell Started", "interactive", interactive, "prompt", cfg.Prompt)
	runErr := sh.Run(sigCtx)

	sigCtx.Cancel()
	if metricsDone != nil {
		<-metricsDone
	}

	logCompletion(stdout, runErr, sigCtx.Signal())
	return handleExecutionError(runErr)
}

func serveMetrics(ctx context.Context, addr string, m *observability.Metrics, logger *slog.Logger) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := observability.Serve(ctx, addr, m, logger); err != nil {
			logger.Warn("Metrics server failed", "addr", addr, "error", err)
		}
	}()
	return done
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
