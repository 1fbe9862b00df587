package server

import "encoding/json"

// Message is the envelope for everything the server pushes to a
// connected client: surface mutations, notices and navigation commands.
type Message struct {
	// Type discriminates the payload (e.g. "apply", "show_notification").
	Type string `json:"type"`
	// Target is the surface node or region the message concerns.
	Target string `json:"target,omitempty"`
	// Payload is the command-specific content.
	Payload any `json:"payload,omitempty"`
}

// Command types the client runtime understands.
const (
	CmdApply            = "apply"
	CmdShowNotification = "show_notification"
	CmdNavigate         = "navigate"
)

// NoticePayload carries one rendered toast to the client.
type NoticePayload struct {
	ID       string `json:"id"`
	Severity string `json:"severity"`
	HTML     string `json:"html"`
}

// NavigatePayload carries a navigation command to the client.
type NavigatePayload struct {
	URL string `json:"url"`
}

// encode marshals a message for the wire. Marshal failures are a
// programming error in the payload type, so they surface as nil and the
// caller drops the message.
func encode(msg Message) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil
	}
	return data
}

// trigger is a DOM event forwarded by the client runtime.
type trigger struct {
	// Event is one of "blur", "input", "change", "toggle", "submit".
	Event string `json:"event"`
	Form  string `json:"form"`
	Field string `json:"field,omitempty"`
	// Value is the field's current input value for blur/input events.
	Value string `json:"value,omitempty"`
	// Checked carries checkbox state for change events.
	Checked bool `json:"checked,omitempty"`
}
