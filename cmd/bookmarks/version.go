package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joestump/bookmarks/internal/build"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bookmarks %s (commit %s, branch %s)\n", build.Version, build.Commit, build.Branch)
		},
	}
}
