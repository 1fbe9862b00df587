package controller

import "log/slog"

// Visibility toggle presentation. The toggle control binds to
// "<node>-toggle" next to the password field it reveals.
const (
	ClassToggleActive = "active"
	AttrType          = "type"
	AttrPressed       = "aria-pressed"
)

// handleToggle flips a password field between hidden and revealed. The
// input's type attribute swaps between "password" and "text", and the
// toggle control mirrors the state for styling and assistive tech.
func (c *Controller) handleToggle(formID, field string) {
	spec, found := c.forms.Get(formID)
	if !found {
		return
	}
	fld, found := spec.Field(field)
	if !found || !fld.Toggle {
		slog.Debug("Visibility toggle for a field without one", "form", formID, "field", field)
		return
	}

	node := fld.Node
	toggle := fld.ToggleNode

	current, _ := c.surface.Attr(node, AttrType)
	if current == "text" {
		c.surface.SetAttr(node, AttrType, "password")
		c.surface.RemoveClass(toggle, ClassToggleActive)
		c.surface.SetAttr(toggle, AttrPressed, "false")
		return
	}

	c.surface.SetAttr(node, AttrType, "text")
	c.surface.AddClass(toggle, ClassToggleActive)
	c.surface.SetAttr(toggle, AttrPressed, "true")
}
