package pages

import (
	"github.com/nfrund/formwire/internal/forms"
	"github.com/nfrund/formwire/internal/view/dto/auth"
	"github.com/nfrund/formwire/web/src/templates/components"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Login renders the login page content from the form's definition.
func Login(spec forms.FormSpec, data auth.LoginData) cmp.Node {
	values := map[string]string{}
	if data.Email != "" {
		values["email"] = data.Email
	}

	return g.Section(
		g.Class("auth-card"),
		g.H1(cmp.Text(spec.Title)),
		components.Form(spec, "/login", values),
		g.P(
			g.Class("auth-switch"),
			cmp.Text("Don't have an account? "),
			g.A(g.Href("/register"), cmp.Text("Create one")),
		),
	)
}
