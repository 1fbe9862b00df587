package topics

// Scope groups topics by the layer that owns them.
type Scope string

const (
	// ScopeForm covers events produced by form interaction logic.
	ScopeForm Scope = "form"
	// ScopeUI covers presentation commands consumed by a client surface.
	ScopeUI Scope = "ui"
)

// Topic defines the interface that all topic types must implement.
type Topic interface {
	// Name returns the unique identifier for this topic
	Name() string

	// Description returns a human-readable description of the topic
	Description() string

	// Pattern returns the topic's routing pattern
	Pattern() string

	// Example returns an example of how to use this topic
	Example() string

	// Scope returns the layer that owns this topic
	Scope() Scope
}

// BaseTopic provides a base implementation of the Topic interface.
type BaseTopic struct {
	name        string
	description string
	pattern     string
	example     string
	scope       Scope
}

// Compile-time interface compliance check
var _ Topic = BaseTopic{}

// NewBaseTopic creates a new BaseTopic.
func NewBaseTopic(name, description, pattern, example string, scope Scope) BaseTopic {
	return BaseTopic{
		name:        name,
		description: description,
		pattern:     pattern,
		example:     example,
		scope:       scope,
	}
}

// Name returns the topic's name
func (t BaseTopic) Name() string {
	return t.name
}

// Description returns the topic's description
func (t BaseTopic) Description() string {
	return t.description
}

// Pattern returns the topic's routing pattern
func (t BaseTopic) Pattern() string {
	return t.pattern
}

// Example returns an example of how to use this topic
func (t BaseTopic) Example() string {
	return t.example
}

// Scope returns the layer that owns this topic
func (t BaseTopic) Scope() Scope {
	return t.scope
}

// String returns the topic's name
func (t BaseTopic) String() string {
	return t.name
}
