package topics

import (
	"fmt"
	"sync"
	"time"
)

// RegistryEntry wraps a registered topic with registration metadata.
type RegistryEntry struct {
	Topic        Topic     `json:"topic"`
	RegisteredAt time.Time `json:"registered_at"`
	UsageCount   int64     `json:"usage_count"`
}

// Registry manages the collection of registered topics. Registration is
// write-once per name; duplicates are rejected so two components cannot
// silently claim the same channel.
type Registry struct {
	entries map[string]*RegistryEntry
	mu      sync.RWMutex
}

// NewRegistry creates a new topic registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a topic to the registry.
func (r *Registry) Register(topic Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if topic == nil {
		return &TopicError{
			Type:    ErrorValidationFailed,
			Message: "cannot register nil topic",
		}
	}

	name := topic.Name()
	if name == "" {
		return &TopicError{
			Type:    ErrorValidationFailed,
			Message: "topic name cannot be empty",
		}
	}

	if _, exists := r.entries[name]; exists {
		return &TopicError{
			Type:    ErrorDuplicateRegistration,
			Topic:   name,
			Message: fmt.Sprintf("topic already registered: %s", name),
		}
	}

	r.entries[name] = &RegistryEntry{
		Topic:        topic,
		RegisteredAt: time.Now(),
	}
	return nil
}

// Get retrieves a topic by name.
func (r *Registry) Get(name string) (Topic, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[name]
	if !exists {
		return nil, false
	}

	// Track usage without holding readers up.
	go func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if entry, exists := r.entries[name]; exists {
			entry.UsageCount++
		}
	}()

	return entry.Topic, true
}

// GetEntry retrieves a copy of the registry entry for a topic name.
func (r *Registry) GetEntry(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[name]
	if !exists {
		return nil, false
	}

	entryCopy := &RegistryEntry{
		Topic:        entry.Topic,
		RegisteredAt: entry.RegisteredAt,
		UsageCount:   entry.UsageCount,
	}
	return entryCopy, true
}

// List returns all registered topics.
func (r *Registry) List() []Topic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Topic, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry.Topic)
	}
	return out
}

// ListByScope returns the registered topics owned by one layer.
func (r *Registry) ListByScope(scope Scope) []Topic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Topic
	for _, entry := range r.entries {
		if entry.Topic.Scope() == scope {
			out = append(out, entry.Topic)
		}
	}
	return out
}

// Count returns the number of registered topics.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Reset removes all registered topics (primarily for testing).
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*RegistryEntry)
}

// MustRegister registers a topic and panics if registration fails.
func (r *Registry) MustRegister(topic Topic) {
	if err := r.Register(topic); err != nil {
		panic(fmt.Sprintf("failed to register topic: %v", err))
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the default global registry.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register registers a topic with the default registry.
func Register(topic Topic) error {
	return Default().Register(topic)
}

// Get retrieves a topic from the default registry.
func Get(name string) (Topic, bool) {
	return Default().Get(name)
}

// List returns all topics in the default registry.
func List() []Topic {
	return Default().List()
}
