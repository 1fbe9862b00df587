// Package notify delivers transient, severity-tagged notices (toasts) to
// clients. The notifier owns sanitation and identity; the widgets decide
// where a notice surfaces (the browser via pub/sub, the server log).
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// Severity drives the notice's icon and styling.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notice is one transient message shown to a client.
type Notice struct {
	ID        string    `json:"id"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Widget renders notices somewhere a client can see them.
type Widget interface {
	Show(ctx context.Context, clientID string, notice Notice) error
}

// Notifier stamps, sanitizes and fans notices out to its widgets.
type Notifier struct {
	widgets []Widget
	policy  *bluemonday.Policy
}

// New creates a notifier delivering to the given widgets. Messages pass
// through bluemonday's strict policy, so markup in them is stripped
// before anything reaches a browser.
func New(widgets ...Widget) *Notifier {
	return &Notifier{
		widgets: widgets,
		policy:  bluemonday.StrictPolicy(),
	}
}

// Show builds a notice and delivers it to every widget. Widget failures
// are logged, not returned: a lost toast must not fail the interaction
// that produced it.
func (n *Notifier) Show(ctx context.Context, clientID string, severity Severity, message string) Notice {
	notice := Notice{
		ID:        uuid.New().String(),
		Severity:  severity,
		Message:   n.policy.Sanitize(message),
		CreatedAt: time.Now().UTC(),
	}

	for _, widget := range n.widgets {
		if err := widget.Show(ctx, clientID, notice); err != nil {
			slog.Error("Notice widget failed",
				"client_id", clientID,
				"severity", severity,
				"notice_id", notice.ID,
				"error", err,
			)
		}
	}

	return notice
}

// Info shows an informational notice.
func (n *Notifier) Info(ctx context.Context, clientID, message string) Notice {
	return n.Show(ctx, clientID, SeverityInfo, message)
}

// Success shows a success notice.
func (n *Notifier) Success(ctx context.Context, clientID, message string) Notice {
	return n.Show(ctx, clientID, SeveritySuccess, message)
}

// Warning shows a warning notice.
func (n *Notifier) Warning(ctx context.Context, clientID, message string) Notice {
	return n.Show(ctx, clientID, SeverityWarning, message)
}

// Error shows an error notice.
func (n *Notifier) Error(ctx context.Context, clientID, message string) Notice {
	return n.Show(ctx, clientID, SeverityError, message)
}
