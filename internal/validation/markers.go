package validation

import (
	"github.com/nfrund/formwire/internal/forms"
	"github.com/nfrund/formwire/internal/surface"
)

// Presentation markers applied to a validated field's node.
const (
	ClassValid   = "is-valid"
	ClassInvalid = "is-invalid"
	AttrInvalid  = "aria-invalid"
)

// Present writes a field's validation state onto the surface: the
// valid/invalid class pair, the aria-invalid attribute and the feedback
// slot's text. Absent nodes are ignored by the surface itself.
func Present(s surface.Surface, fld forms.FieldSpec, res Result) {
	if res.Valid {
		s.AddClass(fld.Node, ClassValid)
		s.RemoveClass(fld.Node, ClassInvalid)
		s.RemoveAttr(fld.Node, AttrInvalid)
		s.SetText(fld.FeedbackNode, "")
		return
	}

	s.AddClass(fld.Node, ClassInvalid)
	s.RemoveClass(fld.Node, ClassValid)
	s.SetAttr(fld.Node, AttrInvalid, "true")
	s.SetText(fld.FeedbackNode, res.Message)
}

// Clear removes every validation marker from a field, returning it to
// the untouched state.
func Clear(s surface.Surface, fld forms.FieldSpec) {
	s.RemoveClass(fld.Node, ClassValid)
	s.RemoveClass(fld.Node, ClassInvalid)
	s.RemoveAttr(fld.Node, AttrInvalid)
	s.SetText(fld.FeedbackNode, "")
}
