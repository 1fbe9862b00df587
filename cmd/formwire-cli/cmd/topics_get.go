package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nfrund/formwire/cmd/formwire-cli/internal/topicfmt"
	"github.com/nfrund/formwire/internal/topics"
)

var getOutputFormat string

// topicsGetCmd represents the topics get command
var topicsGetCmd = &cobra.Command{
	Use:   "get <topic-name>",
	Short: "Get detailed information about a specific topic",
	Long: `Get detailed information about a specific topic: name, scope,
description, pattern and example.

Examples:
  # Basic usage
  formwire-cli topics get forms.field.validated
  formwire-cli topics get ui.notice.show --format json

Output formats:
  table - Human-readable detailed format (default)
  json  - Machine-readable JSON format`,
	Args: cobra.ExactArgs(1),
	Run:  topicsGetHandler,
}

func topicsGetHandler(cmd *cobra.Command, args []string) {
	topicName := args[0]

	registry := topics.Default()
	topics.MustRegisterAll(registry)

	topic, found := registry.Get(topicName)
	if !found {
		fmt.Fprintf(os.Stderr, "Error: Topic '%s' not found\n", topicName)
		fmt.Fprintf(os.Stderr, "\nUse 'formwire-cli topics list' to see all available topics.\n")
		os.Exit(1)
	}

	if err := topicfmt.WriteDetails(os.Stdout, topic, getOutputFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to display topic details: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	topicsCmd.AddCommand(topicsGetCmd)

	topicsGetCmd.Flags().StringVarP(&getOutputFormat, "format", "f", "table", "Output format (table, json)")
}
