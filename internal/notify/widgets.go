package notify

import (
	"context"
	"log/slog"

	"github.com/nfrund/formwire/internal/pubsub"
	"github.com/nfrund/formwire/internal/topics"
)

// LogWidget writes notices to the structured log. It is the debug trace
// every environment gets, whether or not a browser is attached.
type LogWidget struct{}

var _ Widget = (*LogWidget)(nil)

func (LogWidget) Show(_ context.Context, clientID string, notice Notice) error {
	slog.Info("Notice",
		"client_id", clientID,
		"severity", notice.Severity,
		"message", notice.Message,
	)
	return nil
}

// PublishWidget pushes notices onto the UI notice topic so the websocket
// bridge can hand them to the client's toast widget. A notice with a
// client ID is addressed to that client only; without one it broadcasts.
type PublishWidget struct {
	publisher pubsub.Publisher
	event     pubsub.Event[Notice]
}

var _ Widget = (*PublishWidget)(nil)

// NewPublishWidget creates a widget publishing on topics.NoticeShow.
func NewPublishWidget(publisher pubsub.Publisher) *PublishWidget {
	return &PublishWidget{
		publisher: publisher,
		event:     pubsub.NewEvent[Notice](topics.NoticeShow),
	}
}

func (w *PublishWidget) Show(ctx context.Context, clientID string, notice Notice) error {
	if clientID == "" {
		return pubsub.Publish(ctx, w.publisher, w.event, notice)
	}
	return pubsub.PublishTo(ctx, w.publisher, w.event, clientID, notice)
}
