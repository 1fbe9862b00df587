package cmd

import (
	"github.com/spf13/cobra"
)

// topicsCmd represents the topics command
var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Explore formwire event topics",
	Long: `The topics command provides tools for discovering, inspecting, and
validating the event topics the form interaction engine publishes and
the UI command topics its clients consume.

Available subcommands:
  list      List all registered topics with optional filtering
  get       Get detailed information about a specific topic
  validate  Validate a topic name against the naming convention

Examples:
  # List all topics
  formwire-cli topics list

  # List form-level topics only
  formwire-cli topics list --scope=form

  # Get detailed information about a topic
  formwire-cli topics get forms.field.validated

  # Validate a topic name
  formwire-cli topics validate forms.field.validated

Use "formwire-cli topics [command] --help" for more information about a specific command.`,
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}
