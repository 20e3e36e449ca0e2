package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wayfind",
		Short: "Nested outlet routing for view trees",
		Long: `Wayfind resolves paths against an ordered route table and
produces the outlet views to display, with support for:

  • Named parameters and catch-all routes
  • Nested resolution via path remainders
  • Multi-outlet layouts with all-or-nothing loading
  • Last-write-wins resolution under rapid navigation`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		matchCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
