// Package topics provides the canonical topic definitions for the
// formwire application, organized by the layer that owns them:
//
// - Form events: published by form interaction logic (validation results,
//   strength changes, submission lifecycle)
// - UI commands: consumed by whatever renders a client surface (notices,
//   surface mutations)
//
// Usage example:
//
//	import "github.com/nfrund/formwire/internal/topics"
//
//	reg := topics.NewRegistry()
//	if err := topics.RegisterAll(reg); err != nil {
//	    // handle error
//	}
package topics
