package components

import (
	"strconv"

	"github.com/nfrund/formwire/internal/forms"
	"github.com/nfrund/formwire/internal/validation"
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// Form renders a complete interactive form from its definition. Every
// node identifier comes from the spec, so the same markup works for the
// built-in forms and for YAML-defined ones. The data-form and
// data-field attributes are how the client runtime routes DOM events to
// the interaction loop; the boosted POST is the fallback when no socket
// is available.
func Form(spec forms.FormSpec, action string, values map[string]string) cmp.Node {
	return g.Form(
		g.ID(spec.ID),
		g.Class("auth-form"),
		g.Method("post"),
		g.Action(action),
		hx.Boost("true"),
		g.Data("form", spec.ID),
		cmp.Map(spec.Fields, func(fld forms.FieldSpec) cmp.Node {
			return Field(spec, fld, values[fld.Name])
		}),
		SubmitButton(spec),
	)
}

// Field renders one input group: label, input, optional visibility
// toggle and strength meter, and the feedback slot validation writes
// into.
func Field(spec forms.FormSpec, fld forms.FieldSpec, value string) cmp.Node {
	if fld.Kind == forms.KindCheckbox {
		return checkboxField(spec, fld)
	}

	return g.Div(
		g.Class("form-group"),
		g.Label(g.For(fld.Node), cmp.Text(fld.Label)),
		g.Div(
			g.Class("input-wrap"),
			input(spec, fld, value),
			cmp.If(fld.Toggle, toggleButton(spec, fld)),
		),
		cmp.If(fld.Meter, strengthMeter(spec, fld)),
		feedback(fld),
	)
}

// SubmitButton renders the form's submit control with its idle caption.
// The interaction loop swaps the caption and disables it while a
// submission is processing.
func SubmitButton(spec forms.FormSpec) cmp.Node {
	return g.Button(
		g.ID(spec.SubmitNode),
		g.Type("submit"),
		g.Class("submit"),
		cmp.Text(spec.SubmitLabel),
	)
}

func input(spec forms.FormSpec, fld forms.FieldSpec, value string) cmp.Node {
	return g.Input(
		g.ID(fld.Node),
		g.Name(fld.Name),
		g.Type(inputType(fld.Kind)),
		cmp.If(value != "", g.Value(value)),
		cmp.If(fld.Placeholder != "", g.Placeholder(fld.Placeholder)),
		cmp.If(fld.Required, g.Required()),
		g.AutoComplete(autoComplete(fld)),
		g.Data("form", spec.ID),
		g.Data("field", fld.Name),
		// Fragment fallback: when no socket is attached, blur posts the
		// form and swaps the feedback slot in place.
		hx.Post("/fragments/field?form="+spec.ID+"&field="+fld.Name),
		hx.Trigger("blur changed"),
		hx.Target("#"+fld.FeedbackNode),
		hx.Swap("outerHTML"),
		hx.Include("closest form"),
	)
}

func checkboxField(spec forms.FormSpec, fld forms.FieldSpec) cmp.Node {
	return g.Div(
		g.Class("form-group form-group-checkbox"),
		g.Label(
			g.Class("checkbox-label"),
			g.Input(
				g.ID(fld.Node),
				g.Name(fld.Name),
				g.Type("checkbox"),
				g.Value("true"),
				g.Data("form", spec.ID),
				g.Data("field", fld.Name),
			),
			g.Span(cmp.Text(fld.Label)),
		),
		feedback(fld),
	)
}

func toggleButton(spec forms.FormSpec, fld forms.FieldSpec) cmp.Node {
	return g.Button(
		g.ID(fld.ToggleNode),
		g.Type("button"),
		g.Class("toggle-visibility"),
		g.Aria("pressed", "false"),
		g.Aria("label", "Show password"),
		g.Data("form", spec.ID),
		g.Data("field", fld.Name),
		g.Data("toggle", "true"),
		cmp.Text("Show"),
	)
}

func strengthMeter(spec forms.FormSpec, fld forms.FieldSpec) cmp.Node {
	return g.Div(
		g.Class("strength"),
		// Fragment fallback: keystrokes recompute the meter after the
		// form's quiet period; htmx's delay modifier is the debounce.
		hx.Post("/fragments/strength?form="+spec.ID+"&field="+fld.Name),
		hx.Trigger("keyup changed delay:"+spec.DebounceInterval.String()+" from:#"+fld.Node),
		hx.Include("#"+fld.Node),
		hx.Swap("innerHTML"),
		g.Div(g.ID(fld.MeterNode), g.Class("strength-bar"), g.Data("score", "0")),
		g.Small(g.ID(fld.MeterTextNode), g.Class("strength-text")),
	)
}

// StrengthReport renders the strength meter's filled state. It is the
// body the strength fragment endpoint swaps into the meter container.
func StrengthReport(fld forms.FieldSpec, score int, level, text string) cmp.Node {
	return cmp.Group{
		g.Div(
			g.ID(fld.MeterNode),
			g.Class("strength-bar strength-"+level),
			g.Data("score", strconv.Itoa(score)),
		),
		g.Small(g.ID(fld.MeterTextNode), g.Class("strength-text"), cmp.Text(text)),
	}
}

func feedback(fld forms.FieldSpec) cmp.Node {
	return g.Div(
		g.ID(fld.FeedbackNode),
		g.Class("feedback"),
		g.Aria("live", "polite"),
	)
}

// Feedback renders a field's feedback slot with a validation outcome
// applied. It is what the field fragment endpoint swaps in for the
// initial empty slot.
func Feedback(fld forms.FieldSpec, valid bool, message string) cmp.Node {
	state := validation.ClassInvalid
	if valid {
		state = validation.ClassValid
		message = ""
	}
	return g.Div(
		g.ID(fld.FeedbackNode),
		g.Class("feedback "+state),
		g.Aria("live", "polite"),
		cmp.If(message != "", cmp.Text(message)),
	)
}

func inputType(kind forms.Kind) string {
	switch kind {
	case forms.KindEmail:
		return "email"
	case forms.KindPassword:
		return "password"
	default:
		return "text"
	}
}

// autoComplete picks the autocomplete hint: new-password for passwords
// the user is choosing (metered or confirmation), current-password for
// ones they are entering.
func autoComplete(fld forms.FieldSpec) string {
	switch {
	case fld.Kind == forms.KindEmail:
		return "email"
	case fld.Kind == forms.KindPassword && (fld.Meter || fld.PasswordRole == forms.RoleConfirm):
		return "new-password"
	case fld.Kind == forms.KindPassword:
		return "current-password"
	default:
		return "on"
	}
}
