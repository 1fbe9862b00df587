package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nfrund/formwire/internal/controller"
	"github.com/nfrund/formwire/internal/forms"
	"github.com/nfrund/formwire/internal/notify"
	"github.com/nfrund/formwire/internal/pubsub"
	"github.com/nfrund/formwire/internal/rendering"
	"github.com/nfrund/formwire/internal/schedule"
	"github.com/nfrund/formwire/internal/surface"
	"github.com/nfrund/formwire/internal/topics"
	"github.com/nfrund/formwire/internal/validation"
	"github.com/nfrund/formwire/web/src/templates/components"
)

// NoticeRegionID is the node the client runtime stacks toasts in. It
// matches the region the base layout renders.
const NoticeRegionID = "notice-region"

// BridgeDependencies holds the services the websocket bridge needs to
// run a per-connection interaction loop and fan out UI commands.
type BridgeDependencies struct {
	Forms     *forms.Store
	Engine    *validation.Engine
	Notifier  *notify.Notifier
	Publisher pubsub.Publisher
	Renderer  *rendering.UniversalRenderer
}

// noticeDelivery is one notice routed through the bridge loop, addressed
// to a single client or, with an empty recipient, to every client.
type noticeDelivery struct {
	recipient string
	notice    notify.Notice
}

// applyDelivery is one surface mutation routed through the bridge loop
// to the client whose interaction loop produced it.
type applyDelivery struct {
	recipient string
	op        surface.Op
}

// Bridge manages all WebSocket connections. Each connection gets its own
// in-memory surface and interaction loop; mutations the loop applies are
// mirrored to the browser as commands, and notices published on the bus
// are fanned out to the clients they address.
type Bridge struct {
	forms     *forms.Store
	engine    *validation.Engine
	notifier  *notify.Notifier
	publisher pubsub.Publisher
	renderer  *rendering.UniversalRenderer

	register   chan *client
	unregister chan *client
	notices    chan noticeDelivery
	applies    chan applyDelivery

	// done is closed when Run exits, releasing goroutines blocked on the
	// channels above.
	done chan struct{}

	// clients is owned by the Run goroutine; all access goes through the
	// channels above.
	clients map[string]*client
}

// NewBridge creates a Bridge. Run must be started for connections to be
// serviced.
func NewBridge(deps BridgeDependencies) *Bridge {
	return &Bridge{
		forms:      deps.Forms,
		engine:     deps.Engine,
		notifier:   deps.Notifier,
		publisher:  deps.Publisher,
		renderer:   deps.Renderer,
		register:   make(chan *client),
		unregister: make(chan *client),
		notices:    make(chan noticeDelivery, 64),
		applies:    make(chan applyDelivery, 256),
		done:       make(chan struct{}),
		clients:    make(map[string]*client),
	}
}

// Run processes client lifecycle and UI command fan-out until the
// context is cancelled. It must run in its own goroutine.
func (b *Bridge) Run(ctx context.Context) {
	defer close(b.done)

	slog.Info("WebSocket bridge started")
	for {
		select {
		case <-ctx.Done():
			slog.Info("WebSocket bridge stopped")
			return

		case cl := <-b.register:
			b.clients[cl.id] = cl
			slog.Info("Client registered", "client_id", cl.id, "total_clients", len(b.clients))

		case cl := <-b.unregister:
			if _, ok := b.clients[cl.id]; ok {
				delete(b.clients, cl.id)
				close(cl.send)
				slog.Info("Client unregistered", "client_id", cl.id, "total_clients", len(b.clients))
			}

		case delivery := <-b.notices:
			b.deliverNotice(ctx, delivery)

		case delivery := <-b.applies:
			b.deliverApply(delivery)
		}
	}
}

// Subscribe wires the bridge to the UI command topics on the bus:
// surface mutations and notices. Handlers run on the subscription
// goroutine and only enqueue onto the bridge loop.
func (b *Bridge) Subscribe(ctx context.Context, sub pubsub.Subscriber) error {
	if err := sub.Subscribe(ctx, topics.SurfaceApply.Name(), b.onApply); err != nil {
		return err
	}
	return sub.Subscribe(ctx, topics.NoticeShow.Name(), b.onNotice)
}

func (b *Bridge) onApply(ctx context.Context, msg pubsub.Message) error {
	var op surface.Op
	if err := json.Unmarshal(msg.Payload, &op); err != nil {
		slog.Error("Failed to decode surface op payload", "error", err)
		return nil
	}
	select {
	case b.applies <- applyDelivery{recipient: msg.Metadata[topics.MetadataRecipientID], op: op}:
	case <-ctx.Done():
	}
	return nil
}

func (b *Bridge) onNotice(ctx context.Context, msg pubsub.Message) error {
	var notice notify.Notice
	if err := json.Unmarshal(msg.Payload, &notice); err != nil {
		slog.Error("Failed to decode notice payload", "error", err)
		return nil
	}
	select {
	case b.notices <- noticeDelivery{recipient: msg.Metadata[topics.MetadataRecipientID], notice: notice}:
	case <-ctx.Done():
	}
	return nil
}

// deliverNotice renders a toast and sends it to the addressed client, or
// to every client when the delivery carries no recipient.
func (b *Bridge) deliverNotice(ctx context.Context, delivery noticeDelivery) {
	html, err := b.renderer.RenderComponent(ctx, components.Notice(delivery.notice.Severity, delivery.notice.Message))
	if err != nil {
		slog.Error("Failed to render notice", "notice_id", delivery.notice.ID, "error", err)
		return
	}

	payload := encode(Message{
		Type:   CmdShowNotification,
		Target: NoticeRegionID,
		Payload: NoticePayload{
			ID:       delivery.notice.ID,
			Severity: string(delivery.notice.Severity),
			HTML:     string(html),
		},
	})

	if delivery.recipient != "" {
		if cl, ok := b.clients[delivery.recipient]; ok {
			b.send(cl, payload)
		}
		return
	}
	for _, cl := range b.clients {
		b.send(cl, payload)
	}
}

// deliverApply turns a surface mutation into a client command and sends
// it to the client it addresses.
func (b *Bridge) deliverApply(delivery applyDelivery) {
	var msg Message
	if delivery.op.Kind == surface.OpNavigate {
		msg = Message{Type: CmdNavigate, Payload: NavigatePayload{URL: delivery.op.Value}}
	} else {
		msg = Message{Type: CmdApply, Target: delivery.op.Node, Payload: delivery.op}
	}

	if cl, ok := b.clients[delivery.recipient]; ok {
		b.send(cl, encode(msg))
	}
}

// enroll hands a client to the run loop, giving up when the bridge has
// already stopped.
func (b *Bridge) enroll(cl *client) {
	select {
	case b.register <- cl:
	case <-b.done:
	}
}

// drop removes a client from the run loop. Selecting on done keeps
// connection teardown from blocking when the bridge stopped first.
func (b *Bridge) drop(cl *client) {
	select {
	case b.unregister <- cl:
	case <-b.done:
	}
}

// send pushes a payload to one client without blocking the loop. A full
// buffer means the client is lagging or gone, so it is evicted.
func (b *Bridge) send(cl *client, payload []byte) {
	if payload == nil {
		return
	}
	select {
	case cl.send <- payload:
	default:
		delete(b.clients, cl.id)
		close(cl.send)
		slog.Warn("Evicting slow client", "client_id", cl.id, "total_clients", len(b.clients))
	}
}

// Handler returns the echo handler that upgrades a request to a
// websocket connection and starts its interaction loop.
func (b *Bridge) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
			InsecureSkipVerify: true, // In production, check origin.
		})
		if err != nil {
			slog.Error("Failed to upgrade connection to WebSocket", "error", err)
			return err
		}

		cl := &client{
			id:     uuid.NewString(),
			conn:   conn,
			send:   make(chan []byte, 256),
			bridge: b,
		}

		// The connection outlives the HTTP handler, so its lifetime hangs
		// off its own context, cancelled when the read pump exits.
		ctx, cancel := context.WithCancel(context.Background())
		cl.cancel = cancel

		cl.surface = surface.NewMemory(surface.WithObserver(cl.mirror))
		for _, spec := range b.forms.List() {
			cl.surface.Add(spec.Nodes()...)
		}

		cl.scheduler = schedule.New()
		cl.controller = controller.New(controller.Dependencies{
			Surface:   cl.surface,
			Forms:     b.forms,
			Engine:    b.engine,
			Notifier:  b.notifier,
			Scheduler: cl.scheduler,
			Publisher: b.publisher,
			ClientID:  cl.id,
		})
		go cl.controller.Run(ctx)

		b.enroll(cl)
		go cl.writePump()
		go cl.readPump(ctx)

		return nil
	}
}

// client is one websocket connection with its own surface, scheduler and
// interaction loop.
type client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	bridge *Bridge

	surface    *surface.Memory
	scheduler  *schedule.Scheduler
	controller *controller.Controller
	cancel     context.CancelFunc
}

// mirror publishes surface mutations onto the bus, addressed back to
// this client; the bridge loop turns them into apply commands. Input
// state is skipped: values and checkbox changes originate from the
// client, and echoing them back would fight the user's typing.
func (c *client) mirror(op surface.Op) {
	switch op.Kind {
	case surface.OpSetValue, surface.OpSetChecked:
		return
	}

	payload, err := json.Marshal(op)
	if err != nil {
		slog.Error("Failed to encode surface op", "client_id", c.id, "error", err)
		return
	}

	msg := pubsub.Message{
		Topic:    topics.SurfaceApply.Name(),
		ClientID: c.id,
		Payload:  payload,
		Metadata: map[string]string{topics.MetadataRecipientID: c.id},
	}
	if err := c.bridge.publisher.Publish(context.Background(), msg); err != nil {
		slog.Error("Failed to publish surface op", "client_id", c.id, "op", string(op.Kind), "error", err)
	}
}

// readPump reads triggers from the connection and dispatches them to the
// interaction loop. It owns connection teardown.
func (c *client) readPump(ctx context.Context) {
	defer func() {
		c.cancel()
		c.scheduler.Stop()
		c.bridge.drop(c)
		c.conn.Close(websocket.StatusNormalClosure, "Client disconnected")
	}()

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || websocket.CloseStatus(err) == websocket.StatusGoingAway {
				slog.Info("WebSocket closed normally by client", "client_id", c.id)
			} else if err != io.EOF && ctx.Err() == nil {
				slog.Error("WebSocket read error", "client_id", c.id, "error", err)
			}
			return
		}

		var t trigger
		if err := json.Unmarshal(data, &t); err != nil {
			slog.Debug("Ignoring malformed trigger", "client_id", c.id, "error", err)
			continue
		}
		c.dispatch(t)
	}
}

// dispatch applies a trigger's input state to the surface and hands the
// event to the controller. Unknown forms and fields are dropped; the
// surface treats missing nodes the same way.
func (c *client) dispatch(t trigger) {
	spec, ok := c.bridge.forms.Get(t.Form)
	if !ok {
		slog.Debug("Trigger for unknown form", "client_id", c.id, "form", t.Form)
		return
	}

	switch t.Event {
	case "blur":
		if fld, ok := spec.Field(t.Field); ok {
			c.surface.SetValue(fld.Node, t.Value)
		}
		c.controller.FieldBlurred(t.Form, t.Field)
	case "input":
		if fld, ok := spec.Field(t.Field); ok {
			c.surface.SetValue(fld.Node, t.Value)
		}
		c.controller.InputChanged(t.Form, t.Field)
	case "change":
		if fld, ok := spec.Field(t.Field); ok {
			c.surface.SetChecked(fld.Node, t.Checked)
		}
	case "toggle":
		c.controller.ToggleVisibility(t.Form, t.Field)
	case "submit":
		c.controller.SubmitRequested(t.Form)
	default:
		slog.Debug("Unknown trigger event", "client_id", c.id, "event", t.Event)
	}
}

// writePump pumps messages from the client's send channel to the
// websocket connection.
func (c *client) writePump() {
	defer c.conn.Close(websocket.StatusNormalClosure, "Server-side cleanup")

	for {
		payload, ok := <-c.send
		if !ok {
			// The bridge closed the channel.
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := c.conn.Write(ctx, websocket.MessageText, payload)
		cancel()
		if err != nil {
			slog.Error("WebSocket write error", "client_id", c.id, "error", err)
			return
		}
	}
}
