// Package validation evaluates form input against the rules a
// forms.FormSpec declares and presents the outcome on a rendering
// surface. The built-in checks run in a fixed priority order; the first
// failing rule decides the message, so a field never shows more than one
// problem at a time.
package validation

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nfrund/formwire/internal/forms"
	"github.com/nfrund/formwire/internal/surface"
)

// Messages shown next to an invalid field.
const (
	MsgRequired         = "This field is required."
	MsgEmail            = "Please enter a valid email address."
	MsgPasswordLength   = "Password must be at least 8 characters long."
	MsgPasswordMismatch = "Passwords do not match."
	MsgTerms            = "You must accept the terms and conditions."
)

// emailShape matches local@domain.tld: no whitespace, exactly one "@",
// at least one "." after the "@".
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result is the outcome of validating one field. Message is empty when
// the field is valid.
type Result struct {
	Valid   bool
	Message string
}

var pass = Result{Valid: true}

func fail(message string) Result {
	return Result{Valid: false, Message: message}
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules attaches a set of scripted rules. Fields that name a rule
// run it after the built-in checks pass.
func WithRules(rules *RuleSet) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

// Engine evaluates field and form input. It wraps go-playground/validator
// with one custom tag, "emailshape", shared by the per-field checks and
// the view-model struct tags.
type Engine struct {
	validate *validator.Validate
	rules    *RuleSet
}

// New builds an Engine with the emailshape tag registered.
func New(opts ...Option) *Engine {
	v := validator.New()

	// RegisterValidation only errors on an empty tag name.
	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})

	e := &Engine{validate: v}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Check evaluates one text-like field against the built-in rules, in
// priority order:
//
//  1. required and trimmed-empty
//  2. email kind, non-empty, wrong shape
//  3. primary password shorter than eight characters
//  4. confirmation differing from the primary password's value
//
// The first failing rule wins. Checkbox fields go through Checkbox
// instead.
func (e *Engine) Check(fld forms.FieldSpec, value, primary string) Result {
	if fld.Required && strings.TrimSpace(value) == "" {
		return fail(MsgRequired)
	}
	if fld.Kind == forms.KindEmail && value != "" {
		if err := e.validate.Var(value, "emailshape"); err != nil {
			return fail(MsgEmail)
		}
	}
	if fld.PasswordRole == forms.RolePrimary {
		if err := e.validate.Var(value, "min=8"); err != nil {
			return fail(MsgPasswordLength)
		}
	}
	if fld.PasswordRole == forms.RoleConfirm {
		if err := e.validate.VarWithValue(value, primary, "eqfield"); err != nil {
			return fail(MsgPasswordMismatch)
		}
	}
	return pass
}

// Checkbox evaluates a checkbox field. Only the terms-acceptance box can
// fail; any other checkbox is informational.
func (e *Engine) Checkbox(fld forms.FieldSpec, checked bool) Result {
	if !fld.Terms {
		return pass
	}
	if err := e.validate.Var(checked, "eq=true"); err != nil {
		return fail(MsgTerms)
	}
	return pass
}

// Field validates the named field's current surface state and presents
// the outcome on its node. Unknown field names report valid with no side
// effects.
func (e *Engine) Field(ctx context.Context, s surface.Surface, form forms.FormSpec, name string) Result {
	fld, found := form.Field(name)
	if !found {
		return pass
	}

	res := e.evaluate(ctx, s, form, fld)
	Present(s, fld, res)
	return res
}

// Form validates every participating field and presents each outcome.
// Participating fields are the required and email-typed ones, the
// password fields and the terms checkbox; anything else (a remember-me
// box, an optional note) is left untouched. Every field is evaluated
// even after a failure so each one shows its own marker. Returns true
// iff everything passed.
func (e *Engine) Form(ctx context.Context, s surface.Surface, form forms.FormSpec) bool {
	allValid := true
	for _, fld := range form.Fields {
		if !participates(fld) {
			continue
		}
		res := e.evaluate(ctx, s, form, fld)
		Present(s, fld, res)
		if !res.Valid {
			allValid = false
		}
	}
	return allValid
}

// Struct validates a view-model struct via its validate tags. The POST
// fallback path runs submissions through it after snapshotting the
// posted values into the form's typed view.
func (e *Engine) Struct(v any) error {
	return e.validate.Struct(v)
}

// evaluate computes a field's result from the surface without presenting
// it.
func (e *Engine) evaluate(ctx context.Context, s surface.Surface, form forms.FormSpec, fld forms.FieldSpec) Result {
	var res Result
	if fld.Kind == forms.KindCheckbox {
		res = e.Checkbox(fld, s.Checked(fld.Node))
	} else {
		res = e.Check(fld, s.Value(fld.Node), e.primaryValue(s, form))
	}

	if res.Valid && fld.Rule != "" && e.rules != nil {
		res = e.scripted(ctx, form, fld, s.Value(fld.Node))
	}
	return res
}

// scripted runs a field's named rule. A missing or broken rule logs and
// reports valid: scripted rules refine the built-in checks, they must
// not brick the form when an operator ships a bad script.
func (e *Engine) scripted(ctx context.Context, form forms.FormSpec, fld forms.FieldSpec, value string) Result {
	res, err := e.rules.Eval(ctx, fld.Rule, RuleInput{
		Form:  form.ID,
		Field: fld.Name,
		Value: value,
	})
	if err != nil {
		slog.Error("Scripted rule failed, treating field as valid",
			"form", form.ID,
			"field", fld.Name,
			"rule", fld.Rule,
			"error", err,
		)
		return pass
	}
	return res
}

func (e *Engine) primaryValue(s surface.Surface, form forms.FormSpec) string {
	primary, found := form.PrimaryPassword()
	if !found {
		return ""
	}
	return s.Value(primary.Node)
}

// participates reports whether the form validator visits a field.
func participates(fld forms.FieldSpec) bool {
	if fld.Kind == forms.KindCheckbox {
		return fld.Terms
	}
	return fld.Required || fld.Kind == forms.KindEmail || fld.PasswordRole != forms.RoleNone
}
