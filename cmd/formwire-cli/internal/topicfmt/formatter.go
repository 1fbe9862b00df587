// Package topicfmt formats topic registry contents for the CLI.
package topicfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nfrund/formwire/internal/topics"
)

// TopicDisplay represents a topic for display purposes
type TopicDisplay struct {
	Name        string `json:"name"`
	Scope       string `json:"scope"`
	Description string `json:"description"`
	Pattern     string `json:"pattern"`
	Example     string `json:"example"`
}

// Display converts a topic to its display form.
func Display(topic topics.Topic) TopicDisplay {
	return TopicDisplay{
		Name:        topic.Name(),
		Scope:       string(topic.Scope()),
		Description: topic.Description(),
		Pattern:     topic.Pattern(),
		Example:     topic.Example(),
	}
}

// WriteTable writes topics as a formatted table.
func WriteTable(w io.Writer, list []topics.Topic) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSCOPE\tDESCRIPTION")
	for _, topic := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", topic.Name(), topic.Scope(), topic.Description())
	}
	tw.Flush()
	fmt.Fprintf(w, "\nTotal: %d topics\n", len(list))
}

// WriteJSON writes topics as indented JSON.
func WriteJSON(w io.Writer, list []topics.Topic) error {
	displays := make([]TopicDisplay, 0, len(list))
	for _, topic := range list {
		displays = append(displays, Display(topic))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(displays)
}

// WriteDetails writes one topic in the requested format ("table" or
// "json").
func WriteDetails(w io.Writer, topic topics.Topic, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(Display(topic))
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Name:\t%s\n", topic.Name())
		fmt.Fprintf(tw, "Scope:\t%s\n", topic.Scope())
		fmt.Fprintf(tw, "Description:\t%s\n", topic.Description())
		fmt.Fprintf(tw, "Pattern:\t%s\n", topic.Pattern())
		fmt.Fprintf(tw, "Example:\t%s\n", topic.Example())
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
