// Package surface abstracts the rendering surface that form interaction
// logic reads from and writes to. Components receive a Surface instead of
// reaching into ambient page state, so the same logic drives a real page,
// an in-memory tree in tests, or a remote client over a socket.
package surface

// Surface is a tree of labeled nodes addressed by identifier. Writes to an
// unknown identifier are silent no-ops and reads return zero values; a
// missing node means the page does not have that feature, not that
// something failed.
type Surface interface {
	// Has reports whether a node with the given identifier exists.
	Has(node string) bool

	// Value returns the current input value of a node.
	Value(node string) string
	// SetValue replaces the input value of a node.
	SetValue(node, value string)

	// Checked reports the checkbox state of a node.
	Checked(node string) bool
	// SetChecked sets the checkbox state of a node.
	SetChecked(node string, checked bool)

	// Attr returns a named attribute and whether it is present.
	Attr(node, name string) (string, bool)
	// SetAttr sets a named attribute.
	SetAttr(node, name, value string)
	// RemoveAttr deletes a named attribute if present.
	RemoveAttr(node, name string)

	// HasClass reports whether a presentation class is set on a node.
	HasClass(node, class string) bool
	// AddClass sets a presentation class on a node.
	AddClass(node, class string)
	// RemoveClass clears a presentation class from a node.
	RemoveClass(node, class string)

	// Text returns the visible text content of a node.
	Text(node string) string
	// SetText replaces the visible text content of a node.
	SetText(node, text string)

	// Navigate requests a location change. The surface decides what that
	// means; an in-memory surface just records the destination.
	Navigate(url string)
}

// OpKind discriminates the mutations a surface can receive.
type OpKind string

const (
	OpSetValue    OpKind = "set_value"
	OpSetChecked  OpKind = "set_checked"
	OpSetAttr     OpKind = "set_attr"
	OpRemoveAttr  OpKind = "remove_attr"
	OpAddClass    OpKind = "add_class"
	OpRemoveClass OpKind = "remove_class"
	OpSetText     OpKind = "set_text"
	OpNavigate    OpKind = "navigate"
)

// Op describes one mutation applied to a surface. Observers receive ops in
// application order, which lets a transport mirror changes to a remote
// client without knowing what produced them.
type Op struct {
	Kind OpKind
	// Node is the target identifier; empty for OpNavigate.
	Node string
	// Name is the attribute or class name for attribute and class ops.
	Name string
	// Value carries the new value, text, checked state ("true"/"false")
	// or navigation target depending on Kind.
	Value string
}
