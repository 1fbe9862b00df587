package forms

import "github.com/nfrund/formwire/internal/surface"

// Surface node identifiers for the built-in forms. The names follow the
// "<form>-<field>" convention Normalize applies to every definition.
const (
	NodeLoginEmail    = "login-email"
	NodeLoginPassword = "login-password"
	NodeLoginRemember = "login-remember"
	NodeLoginSubmit   = "login-submit"

	NodeRegisterFullName        = "register-full_name"
	NodeRegisterEmail           = "register-email"
	NodeRegisterPassword        = "register-password"
	NodeRegisterConfirmPassword = "register-confirm_password"
	NodeRegisterTerms           = "register-terms"
	NodeRegisterSubmit          = "register-submit"
)

// LoginForm is the typed view of the login form's current input. Fields
// map one-to-one onto surface nodes; no runtime lookup by identifier
// string is involved once the struct is populated.
type LoginForm struct {
	Email    string `json:"email" form:"email" validate:"required,emailshape"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
	Remember bool   `json:"remember" form:"remember"`
}

// ReadLoginForm snapshots the login form's field values from a surface.
func ReadLoginForm(s surface.Surface) LoginForm {
	return LoginForm{
		Email:    s.Value(NodeLoginEmail),
		Password: s.Value(NodeLoginPassword),
		Remember: s.Checked(NodeLoginRemember),
	}
}

// RegistrationForm is the typed view of the registration form's current
// input.
type RegistrationForm struct {
	FullName        string `json:"full_name" form:"full_name" validate:"required"`
	Email           string `json:"email" form:"email" validate:"required,emailshape"`
	Password        string `json:"password" form:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required,eqfield=Password"`
	AcceptTerms     bool   `json:"accept_terms" form:"terms" validate:"eq=true"`
}

// ReadRegistrationForm snapshots the registration form's field values
// from a surface.
func ReadRegistrationForm(s surface.Surface) RegistrationForm {
	return RegistrationForm{
		FullName:        s.Value(NodeRegisterFullName),
		Email:           s.Value(NodeRegisterEmail),
		Password:        s.Value(NodeRegisterPassword),
		ConfirmPassword: s.Value(NodeRegisterConfirmPassword),
		AcceptTerms:     s.Checked(NodeRegisterTerms),
	}
}
