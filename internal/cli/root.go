// Package cli is the standalone command surface used outside CI. It
// wraps the same scanner invocation the pipeline uses, with the same
// exit-status contract.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "leaksentry",
	Short: "Secret scanning orchestrator",
	Long:  "Leaksentry runs gitleaks against a repository and reports findings with deterministic exit codes.",
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = 0

// Run executes the root command and returns the process exit code.
func Run() int {
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(protectCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error.
		return 1
	}

	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print leaksentry version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "leaksentry version %s\n", version)
	},
}
