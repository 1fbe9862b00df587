package pages

import (
	"github.com/nfrund/formwire/internal/forms"
	"github.com/nfrund/formwire/internal/view/dto/auth"
	"github.com/nfrund/formwire/web/src/templates/components"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Register renders the registration page content from the form's
// definition.
func Register(spec forms.FormSpec, data auth.RegisterData) cmp.Node {
	values := map[string]string{}
	if data.Email != "" {
		values["email"] = data.Email
	}

	return g.Section(
		g.Class("auth-card"),
		g.H1(cmp.Text(spec.Title)),
		components.Form(spec, "/register", values),
		g.P(
			g.Class("auth-switch"),
			cmp.Text("Already have an account? "),
			g.A(g.Href("/login"), cmp.Text("Sign in")),
		),
	)
}
