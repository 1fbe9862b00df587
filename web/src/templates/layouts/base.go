package layouts

import (
	"github.com/nfrund/formwire/internal/view"
	"github.com/nfrund/formwire/web/src/templates/components"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Base wraps page content in the HTML shell: head assets, the notice
// region seeded with any server flashes, and the client runtime that
// drives interactivity over the socket. The socket path rides on the
// body as a data attribute so the runtime stays configuration-free.
func Base(title string, flashes view.FlashData, content cmp.Node) cmp.Node {
	return g.Doctype(
		g.HTML(
			g.Lang("en"),
			g.Head(
				g.Meta(g.Charset("utf-8")),
				g.Meta(g.Name("viewport"), g.Content("width=device-width, initial-scale=1")),
				g.TitleEl(cmp.Text(PageTitle(title))),
				g.Link(g.Rel("stylesheet"), g.Href("/static/css/app.css")),
				g.Script(g.Src("https://unpkg.com/htmx.org@1.9.12"), g.Defer()),
				g.Script(g.Src("/static/js/formwire.js"), g.Defer()),
			),
			g.Body(
				g.Data("socket", "/ws"),
				components.NoticeRegion(flashes),
				g.Main(g.Class("page"), content),
			),
		),
	)
}
