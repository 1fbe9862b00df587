package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// The form pages are written with gomponents, but templ components can
// appear inside them (and the other way around) through these adapters.
// A module picks whichever tool fits and the renderer takes both.

// templNode wraps a templ.Component as a gomponents.Node.
type templNode struct {
	component templ.Component
}

// Render implements gomponents.Node. The gomponents render call carries
// no context, so the component gets a background one.
func (n templNode) Render(w io.Writer) error {
	return n.component.Render(context.Background(), w)
}

// FromTempl converts a templ component into a gomponents node so it can
// sit inside a gomponents tree.
func FromTempl(component templ.Component) gomponents.Node {
	return templNode{component: component}
}

// ToTempl converts a gomponents node into a templ component so it can
// be embedded in a templ pipeline.
func ToTempl(node gomponents.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return node.Render(w)
	})
}
