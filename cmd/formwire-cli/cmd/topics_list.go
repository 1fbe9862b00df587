package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nfrund/formwire/cmd/formwire-cli/internal/topicfmt"
	"github.com/nfrund/formwire/internal/topics"
)

var (
	listOutputFormat string
	listScopeFilter  string
)

// topicsListCmd represents the topics list command
var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered topics",
	Long: `List all topics registered by the form interaction engine. This
command helps developers discover what events are available to subscribe
to and which UI command topics a client surface must handle.

Examples:
  # Basic usage
  formwire-cli topics list                  # List all topics in table format
  formwire-cli topics list --format json    # List all topics in JSON format

  # Filtering options
  formwire-cli topics list --scope form     # Show only form interaction events
  formwire-cli topics list --scope ui       # Show only UI command topics

Output formats:
  table - Human-readable table format (default)
  json  - Machine-readable JSON format`,
	Run: topicsListHandler,
}

func topicsListHandler(cmd *cobra.Command, args []string) {
	registry := topics.Default()
	topics.MustRegisterAll(registry)

	var topicList []topics.Topic
	if listScopeFilter != "" {
		scope := parseScope(listScopeFilter)
		if scope == "" {
			fmt.Fprintf(os.Stderr, "Error: Invalid scope '%s'. Valid scopes: form, ui\n", listScopeFilter)
			os.Exit(1)
		}
		topicList = registry.ListByScope(scope)
		if listOutputFormat == "table" {
			fmt.Printf("Topics for scope '%s':\n\n", listScopeFilter)
		}
	} else {
		topicList = registry.List()
	}

	if len(topicList) == 0 {
		message := "No topics found"
		if listScopeFilter != "" {
			message += fmt.Sprintf(" matching scope '%s'", listScopeFilter)
		}
		fmt.Println(message)
		return
	}

	switch listOutputFormat {
	case "json":
		if err := topicfmt.WriteJSON(os.Stdout, topicList); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to encode JSON: %v\n", err)
			os.Exit(1)
		}
	case "table":
		topicfmt.WriteTable(os.Stdout, topicList)
	default:
		fmt.Fprintf(os.Stderr, "Error: Unsupported output format '%s'. Use 'table' or 'json'\n", listOutputFormat)
		os.Exit(1)
	}
}

// parseScope converts a flag value to a topics.Scope.
func parseScope(scopeStr string) topics.Scope {
	switch strings.ToLower(scopeStr) {
	case "form":
		return topics.ScopeForm
	case "ui":
		return topics.ScopeUI
	default:
		return ""
	}
}

func init() {
	topicsCmd.AddCommand(topicsListCmd)

	topicsListCmd.Flags().StringVarP(&listOutputFormat, "format", "f", "table", "Output format (table, json)")
	topicsListCmd.Flags().StringVarP(&listScopeFilter, "scope", "s", "", "Filter topics by scope (form, ui)")
}
