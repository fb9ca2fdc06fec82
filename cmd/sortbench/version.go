package main

import (
	"fmt"

	"github.com/hupe1980/sortbench/internal/hostinfo"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and host details",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sortbench %s (%s)\n", version, hostinfo.Collect())
		},
	}
}
