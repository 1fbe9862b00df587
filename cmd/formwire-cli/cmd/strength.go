package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nfrund/formwire/internal/strength"
)

var strengthOutputFormat string

// strengthCmd evaluates a password with the same heuristic the
// registration form's meter uses.
var strengthCmd = &cobra.Command{
	Use:   "strength <password>",
	Short: "Evaluate a password against the strength heuristic",
	Long: `Evaluate a password with the four-check strength heuristic the
registration form's meter uses: length of at least 8, an uppercase
letter, a lowercase letter, and a digit or special character. Each
satisfied check is worth 25 points.

Examples:
  formwire-cli strength 'Abcdefg1'               # Human-readable report
  formwire-cli strength 'abcdefgh' --format json # Machine-readable report`,
	Args: cobra.ExactArgs(1),
	Run:  strengthHandler,
}

func strengthHandler(cmd *cobra.Command, args []string) {
	result := strength.Evaluate(args[0])

	switch strengthOutputFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to encode JSON: %v\n", err)
			os.Exit(1)
		}
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Score:\t%d\n", result.Score)
		fmt.Fprintf(w, "Level:\t%s\n", result.Level)
		if len(result.Feedback) == 0 {
			fmt.Fprintf(w, "Missing:\t(nothing)\n")
		} else {
			fmt.Fprintf(w, "Missing:\t%s\n", strings.Join(result.Feedback, "; "))
		}
		w.Flush()
	default:
		fmt.Fprintf(os.Stderr, "Error: Unsupported output format '%s'. Use 'table' or 'json'\n", strengthOutputFormat)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(strengthCmd)

	strengthCmd.Flags().StringVarP(&strengthOutputFormat, "format", "f", "table", "Output format (table, json)")
}
