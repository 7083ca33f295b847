package main

import (
	"fmt"
	"os"

	"github.com/crucial707/fintrack/cmd/cli/auth"
	"github.com/crucial707/fintrack/cmd/cli/dashboard"
	"github.com/crucial707/fintrack/cmd/cli/entries"
	"github.com/crucial707/fintrack/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	entries.InitEntries(rootCmd)
	dashboard.InitDashboard(rootCmd)

	// Execute the root Cobra command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
