package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/cmdloop/internal/config"
)

// RunOptions contains all the configuration for the run command.
// Zero values leave the config file setting in place.
type RunOptions struct {
	ConfigPath  string
	Prompt      string
	Debug       bool
	MetricsAddr string
	Plain       bool
	NoBanner    bool

	// Stdin and Stdout default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
}

// Execute handles the 'run' command logic: it resolves the configuration and
// runs the demo shell.
func Execute(ctx context.Context, opts RunOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	applyOverrides(&cfg, opts)
	return RunSession(ctx, cfg, opts)
}

func applyOverrides(cfg *config.Config, opts RunOptions) {
	if opts.Prompt != "" {
		cfg.Prompt = opts.Prompt
	}
	if opts.Debug {
		cfg.Debug = true
	}
	if opts.MetricsAddr != "" {
		cfg.MetricsAddr = opts.MetricsAddr
	}
}
