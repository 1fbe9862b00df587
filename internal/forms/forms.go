// Package forms defines the declarative description of an interactive
// form: which fields it has, how they validate, which surface nodes they
// bind to, and how a submission behaves. Definitions come from built-in
// specs or from YAML files on disk.
package forms

import (
	"fmt"
	"time"
)

// Kind is the input role of a field. It decides which validation rules
// apply and how the field binds to the surface.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindPassword Kind = "password"
	KindCheckbox Kind = "checkbox"
)

// PasswordRole distinguishes the primary password field from its
// confirmation sibling.
type PasswordRole string

const (
	// RoleNone marks a field that plays no password role.
	RoleNone PasswordRole = ""
	// RolePrimary is the password the user is choosing or entering.
	RolePrimary PasswordRole = "primary"
	// RoleConfirm must match the primary password's current value.
	RoleConfirm PasswordRole = "confirm"
)

// FieldSpec describes one input in a form.
type FieldSpec struct {
	// Name is the field identifier, unique within the form (e.g. "email").
	Name string
	// Kind selects the input role. Defaults to text.
	Kind Kind
	// Required marks the field as mandatory; an empty (trimmed) value fails.
	Required bool
	// PasswordRole marks primary/confirmation password fields.
	PasswordRole PasswordRole
	// Terms marks the form's terms-acceptance checkbox.
	Terms bool
	// Label is the human-readable caption. Derived from Name when empty.
	Label string
	// Placeholder is the input hint text.
	Placeholder string
	// Meter enables the strength meter for this field (primary passwords).
	Meter bool
	// Toggle enables the visibility toggle control for password fields.
	Toggle bool
	// Node is the surface identifier of the input. Defaults to
	// "<form>-<name>".
	Node string
	// FeedbackNode is the surface identifier of the adjacent feedback
	// slot. Defaults to "<node>-feedback".
	FeedbackNode string
	// MeterNode is the strength bar's surface identifier, derived when
	// Meter is set. Defaults to "<node>-strength".
	MeterNode string
	// MeterTextNode is the strength summary line's surface identifier,
	// derived when Meter is set. Defaults to "<node>-strength-text".
	MeterTextNode string
	// ToggleNode is the visibility toggle control's surface identifier,
	// derived when Toggle is set. Defaults to "<node>-toggle".
	ToggleNode string
	// Rule optionally names a script rule that runs after the built-in
	// checks pass.
	Rule string
}

// FormSpec describes one form: its fields, nodes and submission behavior.
type FormSpec struct {
	// ID identifies the form (e.g. "login"). Used as the node prefix.
	ID string
	// Title is the page heading. Derived from ID when empty.
	Title string
	// Fields lists the inputs in display order.
	Fields []FieldSpec
	// SubmitNode is the surface identifier of the submit control.
	// Defaults to "<id>-submit".
	SubmitNode string
	// SubmitLabel is the submit control's idle caption.
	SubmitLabel string
	// BusyLabel replaces the caption while a submission is processing.
	BusyLabel string
	// SubmitDelay is the simulated processing time for a submission.
	SubmitDelay time.Duration
	// RedirectDelay is how long after success the redirect fires. Zero
	// disables the redirect.
	RedirectDelay time.Duration
	// RedirectURL is where a successful submission eventually navigates.
	RedirectURL string
	// DebounceInterval is the quiet period for input-driven work such as
	// the strength meter.
	DebounceInterval time.Duration
	// SuccessMessage is the notice shown when the simulated submission
	// completes.
	SuccessMessage string
}

// Defaults applied by Normalize.
const (
	DefaultSubmitDelay      = 2000 * time.Millisecond
	DefaultRedirectDelay    = 1500 * time.Millisecond
	DefaultDebounceInterval = 300 * time.Millisecond
)

// Normalize fills in derived values: node identifiers, labels, the title
// and timing defaults. It is idempotent and returns the receiver's value
// for chaining.
func (f FormSpec) Normalize() FormSpec {
	if f.Title == "" {
		f.Title = deriveLabel(f.ID)
	}
	if f.SubmitNode == "" {
		f.SubmitNode = f.ID + "-submit"
	}
	if f.SubmitLabel == "" {
		f.SubmitLabel = f.Title
	}
	if f.BusyLabel == "" {
		f.BusyLabel = "Please wait..."
	}
	if f.SubmitDelay == 0 {
		f.SubmitDelay = DefaultSubmitDelay
	}
	if f.DebounceInterval == 0 {
		f.DebounceInterval = DefaultDebounceInterval
	}

	for i := range f.Fields {
		fld := &f.Fields[i]
		if fld.Kind == "" {
			fld.Kind = KindText
		}
		if fld.Label == "" {
			fld.Label = deriveLabel(fld.Name)
		}
		if fld.Node == "" {
			fld.Node = f.ID + "-" + fld.Name
		}
		if fld.FeedbackNode == "" {
			fld.FeedbackNode = fld.Node + "-feedback"
		}
		if fld.Meter && fld.MeterNode == "" {
			fld.MeterNode = fld.Node + "-strength"
		}
		if fld.Meter && fld.MeterTextNode == "" {
			fld.MeterTextNode = fld.Node + "-strength-text"
		}
		if fld.Toggle && fld.ToggleNode == "" {
			fld.ToggleNode = fld.Node + "-toggle"
		}
	}

	return f
}

// Validate checks structural soundness of a definition: identifiers
// present, field names unique, kinds known, at most one primary and one
// confirmation password.
func (f FormSpec) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("form id is required")
	}
	if len(f.Fields) == 0 {
		return fmt.Errorf("form %q has no fields", f.ID)
	}

	seen := make(map[string]bool, len(f.Fields))
	var primaries, confirms int
	for _, fld := range f.Fields {
		if fld.Name == "" {
			return fmt.Errorf("form %q has a field with no name", f.ID)
		}
		if seen[fld.Name] {
			return fmt.Errorf("form %q declares field %q twice", f.ID, fld.Name)
		}
		seen[fld.Name] = true

		switch fld.Kind {
		case KindText, KindEmail, KindPassword, KindCheckbox, "":
		default:
			return fmt.Errorf("form %q field %q has unknown kind %q", f.ID, fld.Name, fld.Kind)
		}

		switch fld.PasswordRole {
		case RoleNone:
		case RolePrimary:
			primaries++
		case RoleConfirm:
			confirms++
		default:
			return fmt.Errorf("form %q field %q has unknown password role %q", f.ID, fld.Name, fld.PasswordRole)
		}

		if fld.Terms && fld.Kind != KindCheckbox {
			return fmt.Errorf("form %q field %q is marked as terms but is not a checkbox", f.ID, fld.Name)
		}
	}

	if primaries > 1 {
		return fmt.Errorf("form %q declares more than one primary password", f.ID)
	}
	if confirms > 1 {
		return fmt.Errorf("form %q declares more than one confirmation password", f.ID)
	}
	if confirms == 1 && primaries == 0 {
		return fmt.Errorf("form %q has a confirmation password but no primary", f.ID)
	}

	return nil
}

// Field returns the spec of the named field.
func (f FormSpec) Field(name string) (FieldSpec, bool) {
	for _, fld := range f.Fields {
		if fld.Name == name {
			return fld, true
		}
	}
	return FieldSpec{}, false
}

// PrimaryPassword returns the primary password field, if the form has one.
func (f FormSpec) PrimaryPassword() (FieldSpec, bool) {
	for _, fld := range f.Fields {
		if fld.PasswordRole == RolePrimary {
			return fld, true
		}
	}
	return FieldSpec{}, false
}

// TermsField returns the terms-acceptance checkbox, if the form has one.
func (f FormSpec) TermsField() (FieldSpec, bool) {
	for _, fld := range f.Fields {
		if fld.Terms {
			return fld, true
		}
	}
	return FieldSpec{}, false
}

// Nodes returns every surface identifier the form binds to, in a stable
// order: each field's input, feedback and optional meter/toggle nodes,
// then the submit control.
func (f FormSpec) Nodes() []string {
	out := make([]string, 0, len(f.Fields)*2+1)
	for _, fld := range f.Fields {
		out = append(out, fld.Node, fld.FeedbackNode)
		if fld.MeterNode != "" {
			out = append(out, fld.MeterNode)
		}
		if fld.MeterTextNode != "" {
			out = append(out, fld.MeterTextNode)
		}
		if fld.ToggleNode != "" {
			out = append(out, fld.ToggleNode)
		}
	}
	out = append(out, f.SubmitNode)
	return out
}
