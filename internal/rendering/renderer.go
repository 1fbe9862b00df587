// Package rendering turns view components into HTML. Components can be
// templ components or gomponents nodes; full pages go out through Echo
// while fragments render to bytes so they can ride an HTMX response or
// a socket push.
package rendering

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Renderer renders any supported component type. The component argument
// is deliberately untyped so a handler can mix templ and gomponents
// trees without adapter plumbing.
type Renderer interface {
	// RenderComponent renders a component to bytes. Used for HTMX
	// fragments and for updates pushed over a client socket.
	RenderComponent(ctx context.Context, component interface{}) ([]byte, error)

	// RenderPage writes a complete page response with the given status.
	RenderPage(c echo.Context, status int, component interface{}) error
}

// gomponentNode matches gomponents.Node structurally, so this package
// dispatches on the shape rather than the concrete library type.
type gomponentNode interface {
	Render(w io.Writer) error
}

// UniversalRenderer is a Renderer for both component systems. It also
// satisfies echo.Renderer, so handlers may call c.Render directly.
type UniversalRenderer struct{}

// NewUniversalRenderer creates a new UniversalRenderer.
func NewUniversalRenderer() *UniversalRenderer {
	return &UniversalRenderer{}
}

var (
	_ Renderer      = (*UniversalRenderer)(nil)
	_ echo.Renderer = (*UniversalRenderer)(nil)
)

// render inspects the component's concrete type and calls the matching
// render method.
func (ur *UniversalRenderer) render(ctx context.Context, component interface{}, w io.Writer) error {
	switch c := component.(type) {
	case templ.Component:
		return c.Render(ctx, w)

	case gomponentNode:
		return c.Render(w)

	default:
		return fmt.Errorf("unsupported component type %T: must be templ.Component or implement Render(io.Writer) error", component)
	}
}

// RenderComponent implements the Renderer interface.
func (ur *UniversalRenderer) RenderComponent(ctx context.Context, component interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := ur.render(ctx, component, &buf); err != nil {
		return nil, fmt.Errorf("failed to render component: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPage implements the Renderer interface for full HTTP responses.
func (ur *UniversalRenderer) RenderPage(c echo.Context, status int, component interface{}) error {
	// The content type has to land before the status line is written.
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTML)
	c.Response().WriteHeader(status)

	if err := ur.render(c.Request().Context(), component, c.Response()); err != nil {
		slog.Error("Failed to stream page to response", "error", err)
		return err
	}
	return nil
}

// Render implements the echo.Renderer interface for c.Render(status,
// name, component). The component travels in the data parameter; the
// template name is unused.
func (ur *UniversalRenderer) Render(w io.Writer, _ string, data interface{}, c echo.Context) error {
	if c.Response().Header().Get(echo.HeaderContentType) == "" {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTML)
	}
	return ur.render(c.Request().Context(), data, w)
}
