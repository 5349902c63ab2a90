package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/logincmd/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "logincmd - per-session login command scheduler")
		fmt.Fprintf(out, "Version: %s\n", version.Version)
		fmt.Fprintf(out, "Git Commit: %s\n", version.Commit)
		fmt.Fprintf(out, "Build Time: %s\n", version.BuildDate)
		fmt.Fprintf(out, "Go Version: %s\n", version.GoVersion)
	},
}
