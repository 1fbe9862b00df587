package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/formwire/internal/controller"
	"github.com/nfrund/formwire/internal/forms"
	"github.com/nfrund/formwire/internal/rendering"
	"github.com/nfrund/formwire/internal/strength"
	"github.com/nfrund/formwire/internal/surface"
	"github.com/nfrund/formwire/internal/validation"
	"github.com/nfrund/formwire/internal/view"
	"github.com/nfrund/formwire/internal/view/dto/auth"
	"github.com/nfrund/formwire/web/src/templates/components"
	"github.com/nfrund/formwire/web/src/templates/layouts"
	"github.com/nfrund/formwire/web/src/templates/pages"
)

// FormHandler serves the form pages, the no-socket fragment endpoints
// and the plain POST fallback. The POST path runs the same validation
// engine the interaction loop uses; the submission itself stays
// simulated, so success is a flash and a redirect.
type FormHandler struct {
	forms    *forms.Store
	engine   *validation.Engine
	renderer *rendering.UniversalRenderer
}

// NewFormHandler creates a FormHandler.
func NewFormHandler(store *forms.Store, engine *validation.Engine, renderer *rendering.UniversalRenderer) *FormHandler {
	return &FormHandler{
		forms:    store,
		engine:   engine,
		renderer: renderer,
	}
}

// LoginGet renders the login page (GET /login).
func (h *FormHandler) LoginGet(c echo.Context) error {
	spec, ok := h.forms.Get("login")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "login form is not defined")
	}

	data := auth.LoginData{Email: view.RecallEmail(c)}
	flashes := view.GetFlashData(c)

	page := layouts.Base(spec.Title, flashes, pages.Login(spec, data))
	return h.renderer.RenderPage(c, http.StatusOK, page)
}

// RegisterGet renders the registration page (GET /register).
func (h *FormHandler) RegisterGet(c echo.Context) error {
	spec, ok := h.forms.Get("register")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "registration form is not defined")
	}

	data := auth.RegisterData{Email: view.RecallEmail(c)}
	flashes := view.GetFlashData(c)

	page := layouts.Base(spec.Title, flashes, pages.Register(spec, data))
	return h.renderer.RenderPage(c, http.StatusOK, page)
}

// LoginPost handles the boosted/no-script login submission (POST /login).
func (h *FormHandler) LoginPost(c echo.Context) error {
	return h.submit(c, "login", "/login")
}

// RegisterPost handles the boosted/no-script registration submission
// (POST /register). A passing registration lands on the login page, the
// same place the simulated redirect takes socket clients.
func (h *FormHandler) RegisterPost(c echo.Context) error {
	return h.submit(c, "register", "/login")
}

// submit validates a posted form against its definition. There is no
// real processing behind it; a valid submission is immediately the
// success outcome.
func (h *FormHandler) submit(c echo.Context, formID, successURL string) error {
	spec, ok := h.forms.Get(formID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "form is not defined")
	}

	surf := h.postedSurface(c, spec)
	if email, found := spec.Field("email"); found {
		view.RememberEmail(c, surf.Value(email.Node))
	}

	if !h.valid(c, surf, spec) {
		view.SetFlashError(c, "Please correct the errors in the form.")
		return c.Redirect(http.StatusSeeOther, c.Request().URL.Path)
	}

	if spec.SuccessMessage != "" {
		view.SetFlashSuccess(c, spec.SuccessMessage)
	}
	return c.Redirect(http.StatusSeeOther, successURL)
}

// valid runs the posted values through the form's typed view-model.
// Definition-only forms have no struct to bind, so they take the
// per-field engine walk instead.
func (h *FormHandler) valid(c echo.Context, surf surface.Surface, spec forms.FormSpec) bool {
	switch spec.ID {
	case "login":
		return h.engine.Struct(forms.ReadLoginForm(surf)) == nil
	case "register":
		return h.engine.Struct(forms.ReadRegistrationForm(surf)) == nil
	default:
		return h.engine.Form(c.Request().Context(), surf, spec)
	}
}

// FieldFragment validates a single field from posted form values and
// returns the feedback slot for htmx to swap in
// (POST /fragments/field?form=&field=).
func (h *FormHandler) FieldFragment(c echo.Context) error {
	spec, fld, err := h.lookup(c)
	if err != nil {
		return err
	}

	surf := h.postedSurface(c, spec)
	res := h.engine.Field(c.Request().Context(), surf, spec, fld.Name)

	return h.renderer.RenderPage(c, http.StatusOK, components.Feedback(fld, res.Valid, res.Message))
}

// StrengthFragment recomputes the password strength meter from the
// posted value (POST /fragments/strength?form=&field=).
func (h *FormHandler) StrengthFragment(c echo.Context) error {
	_, fld, err := h.lookup(c)
	if err != nil {
		return err
	}
	if !fld.Meter {
		return echo.NewHTTPError(http.StatusBadRequest, "field has no strength meter")
	}

	result := strength.Evaluate(c.FormValue(fld.Name))
	report := components.StrengthReport(fld, result.Score, string(result.Level), controller.StrengthText(result))

	return h.renderer.RenderPage(c, http.StatusOK, report)
}

// lookup resolves the form and field named in the fragment query.
func (h *FormHandler) lookup(c echo.Context) (forms.FormSpec, forms.FieldSpec, error) {
	spec, ok := h.forms.Get(c.QueryParam("form"))
	if !ok {
		return forms.FormSpec{}, forms.FieldSpec{}, echo.NewHTTPError(http.StatusNotFound, "unknown form")
	}
	fld, ok := spec.Field(c.QueryParam("field"))
	if !ok {
		slog.Debug("Fragment request for unknown field", "form", spec.ID, "field", c.QueryParam("field"))
		return forms.FormSpec{}, forms.FieldSpec{}, echo.NewHTTPError(http.StatusNotFound, "unknown field")
	}
	return spec, fld, nil
}

// postedSurface builds an in-memory surface holding the posted values of
// every field, keyed by the definition's node identifiers. The engine
// then reads it exactly as it would a live page.
func (h *FormHandler) postedSurface(c echo.Context, spec forms.FormSpec) *surface.Memory {
	surf := surface.NewMemory(surface.WithNodes(spec.Nodes()...))
	for _, fld := range spec.Fields {
		if fld.Kind == forms.KindCheckbox {
			surf.SetChecked(fld.Node, c.FormValue(fld.Name) != "")
			continue
		}
		surf.SetValue(fld.Node, c.FormValue(fld.Name))
	}
	return surf
}
