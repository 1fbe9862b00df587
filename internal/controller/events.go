package controller

import (
	"log/slog"

	"github.com/nfrund/formwire/internal/pubsub"
)

// FieldEvent reports one field validation outcome.
type FieldEvent struct {
	ClientID string `json:"client_id"`
	Form     string `json:"form"`
	Field    string `json:"field"`
	Valid    bool   `json:"valid"`
	Message  string `json:"message,omitempty"`
}

// StrengthEvent reports a recomputed password strength.
type StrengthEvent struct {
	ClientID string   `json:"client_id"`
	Form     string   `json:"form"`
	Field    string   `json:"field"`
	Score    int      `json:"score"`
	Level    string   `json:"level"`
	Feedback []string `json:"feedback,omitempty"`
}

// SubmitEvent reports a submission lifecycle change.
type SubmitEvent struct {
	ClientID string `json:"client_id"`
	Form     string `json:"form"`
}

func (c *Controller) publishFieldValidated(event FieldEvent) {
	if c.publisher == nil {
		return
	}
	if err := pubsub.Publish(c.ctx, c.publisher, c.fieldValidated, event); err != nil {
		slog.Error("Failed to publish field validation event", "form", event.Form, "field", event.Field, "error", err)
	}
}

func (c *Controller) publishStrengthChanged(event StrengthEvent) {
	if c.publisher == nil {
		return
	}
	if err := pubsub.Publish(c.ctx, c.publisher, c.strengthChanged, event); err != nil {
		slog.Error("Failed to publish strength event", "form", event.Form, "error", err)
	}
}

func (c *Controller) publishSubmit(event pubsub.Event[SubmitEvent], formID string) {
	if c.publisher == nil {
		return
	}
	payload := SubmitEvent{ClientID: c.clientID, Form: formID}
	if err := pubsub.Publish(c.ctx, c.publisher, event, payload); err != nil {
		slog.Error("Failed to publish submit event", "topic", event.Name(), "form", formID, "error", err)
	}
}
