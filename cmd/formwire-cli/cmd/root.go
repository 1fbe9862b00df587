package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "formwire-cli",
	Short: "Formwire CLI tool",
	Long: `Formwire CLI is a command-line interface for the formwire
form-interaction engine.

Available commands:
  strength    Evaluate a password against the strength heuristic
  topics      Explore the event topics the engine publishes

Use "formwire-cli [command] --help" for more information about a specific command.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
