package topics

import "fmt"

// MetadataRecipientID is the message metadata key that addresses a
// direct UI topic to one connected client.
const MetadataRecipientID = "recipient_id"

// Presentation command topics. These are consumed by whatever renders
// the surface for a client, typically the websocket bridge.
var (
	// NoticeShow asks the client surface to display a transient notice.
	// The recipient is specified in the message metadata as "recipient_id";
	// without one the notice is broadcast to every client.
	NoticeShow = NewBaseTopic(
		"ui.notice.show",
		"Display a transient notice on a client surface",
		"ui.notice.show",
		"ui.notice.show",
		ScopeUI,
	)

	// SurfaceApply carries one surface mutation to the client that
	// renders it. The recipient ID should be specified in the message
	// metadata as "recipient_id".
	SurfaceApply = NewBaseTopic(
		"ui.surface.apply",
		"Apply a single surface mutation on a specific client",
		"ui.surface.apply",
		"ui.surface.apply",
		ScopeUI,
	)
)

// RegisterUITopics registers all presentation command topics.
// It skips topics that are already registered.
func RegisterUITopics(reg *Registry) error {
	topicsToRegister := []Topic{
		NoticeShow,
		SurfaceApply,
	}

	for _, topic := range topicsToRegister {
		if _, exists := reg.Get(topic.Name()); exists {
			continue
		}
		if err := reg.Register(topic); err != nil {
			return fmt.Errorf("failed to register ui topic %s: %w", topic.Name(), err)
		}
	}

	return nil
}
