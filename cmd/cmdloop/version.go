package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/cmdloop"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cmdloop",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cmdloop version %s\n", strings.TrimSpace(cmdloop.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
