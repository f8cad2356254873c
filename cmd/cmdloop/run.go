package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/cmdloop/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the demo shell",
	Long: `Starts the demo shell. On a terminal it uses line editing and tab-completion;
with piped input it reads plain lines, which makes it scriptable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.RunOptions{}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.Prompt, _ = cmd.Flags().GetString("prompt")
		opts.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")
		opts.Plain, _ = cmd.Flags().GetBool("plain")
		opts.NoBanner, _ = cmd.Flags().GetBool("no-banner")

		return cli.Execute(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("prompt", "", "Prompt string (default from config, \"$ \")")
	runCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :2112)")
	runCmd.Flags().Bool("plain", false, "Read plain lines even on a terminal")
	runCmd.Flags().Bool("no-banner", false, "Do not print the banner")

	// 'run' is the default when no command is given.
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
