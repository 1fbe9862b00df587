package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nfrund/formwire/internal/topics"
)

// topicsValidateCmd represents the topics validate command
var topicsValidateCmd = &cobra.Command{
	Use:   "validate <topic-name>",
	Short: "Validate a topic name against the naming convention",
	Long: `Validate a topic name against the "layer.entity.action" naming
convention: exactly three lowercase dot-separated segments. The command
also reports whether the name is registered.

Examples:
  formwire-cli topics validate forms.field.validated   # Valid and registered
  formwire-cli topics validate forms.field             # Invalid: 2 segments
  formwire-cli topics validate forms.meter.updated     # Valid but unregistered`,
	Args: cobra.ExactArgs(1),
	Run:  topicsValidateHandler,
}

func topicsValidateHandler(cmd *cobra.Command, args []string) {
	topicName := args[0]

	if err := topics.ValidateName(topicName); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Valid: '%s' follows the naming convention\n", topicName)

	registry := topics.Default()
	topics.MustRegisterAll(registry)

	if _, found := registry.Get(topicName); found {
		fmt.Println("Registered: yes")
	} else {
		fmt.Println("Registered: no")
	}
}

func init() {
	topicsCmd.AddCommand(topicsValidateCmd)
}
