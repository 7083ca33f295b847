package root

import (
	"github.com/spf13/cobra"
)

var jsonOutput bool

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:           "fintrack",
	Short:         "Finance tracker CLI",
	Long:          "Command line interface for the personal finance tracker API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON instead of tables")
}

// GetRoot returns the RootCmd
func GetRoot() *cobra.Command {
	return RootCmd
}

// JSONOutput reports whether --json was given.
func JSONOutput() bool {
	return jsonOutput
}
