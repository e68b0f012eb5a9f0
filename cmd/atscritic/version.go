package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/atscritic/internal/report"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Skip config loading so version works with a broken config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", report.Tool, version)
		},
	}
}
