package pubsub

import (
	"context"
	"encoding/json"
	"reflect"

	"github.com/nfrund/formwire/internal/topics"
)

// Event[T] binds a payload type to a registered topic so publishing is
// type-safe: the compiler rejects payloads that do not match T.
type Event[T any] struct {
	topic  topics.Topic
	fields []string
}

// NewEvent creates a typed event for an already-defined topic and makes
// sure the topic is present in the default registry. It uses reflection
// over T's json tags to document the payload fields.
func NewEvent[T any](topic topics.Topic) Event[T] {
	// Reflect on T to get field names for documentation.
	var zero T
	t := reflect.TypeOf(zero)
	fields := make([]string, 0)

	// Handle both struct and pointer to struct
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t != nil && t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			jsonTag := field.Tag.Get("json")
			// Extract just the name part of the tag (ignore omitempty, etc.)
			if jsonTag != "" && jsonTag != "-" {
				nameEnd := 0
				for nameEnd < len(jsonTag) && jsonTag[nameEnd] != ',' {
					nameEnd++
				}
				fields = append(fields, jsonTag[:nameEnd])
			}
		}
	}

	// Events are usually defined at package level, so a missing topic is a
	// configuration error that should stop startup. Topics registered by
	// an earlier event or by RegisterAll are fine.
	if _, exists := topics.Get(topic.Name()); !exists {
		if err := topics.Register(topic); err != nil {
			panic("failed to register event topic: " + err.Error())
		}
	}

	return Event[T]{
		topic:  topic,
		fields: fields,
	}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topic.Name()
}

// PayloadFields returns the json field names of the payload type, for
// documentation and troubleshooting.
func (e Event[T]) PayloadFields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Publish sends a typed event. The compiler ensures 'payload' matches 'T'.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], payload T) error {
	// Marshal payload to JSON
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	// Use underlying Publisher interface
	return p.Publish(ctx, Message{
		Topic:   event.Name(),
		Payload: data,
	})
}

// PublishTo sends a typed event addressed to a single client. The
// recipient travels in the message metadata under the key the UI topics
// document.
func PublishTo[T any](ctx context.Context, p Publisher, event Event[T], recipientID string, payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.Publish(ctx, Message{
		Topic:   event.Name(),
		Payload: data,
		Metadata: map[string]string{
			topics.MetadataRecipientID: recipientID,
		},
	})
}
