package topics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nfrund/formwire/internal/topics"
)

func TestRegistry(t *testing.T) {
	registry := topics.NewRegistry()

	t.Run("Register and Get", func(t *testing.T) {
		topic := topics.NewBaseTopic(
			"test_topic",
			"A test topic",
			"test.pattern",
			"test.pattern",
			topics.ScopeForm,
		)

		err := registry.Register(topic)
		assert.NoError(t, err, "Register should succeed")

		found, exists := registry.Get("test_topic")
		assert.True(t, exists, "Topic should exist after registration")
		assert.Equal(t, topic.Name(), found.Name(), "Retrieved topic should match registered topic")
	})

	t.Run("Get Non-Existent Topic", func(t *testing.T) {
		_, exists := registry.Get("non_existent_topic")
		assert.False(t, exists, "Non-existent topic should not be found")
	})

	t.Run("List Topics", func(t *testing.T) {
		registry = topics.NewRegistry()

		t1 := topics.NewBaseTopic("topic1", "Topic 1", "topic.1", "topic.1", topics.ScopeForm)
		t2 := topics.NewBaseTopic("topic2", "Topic 2", "topic.2", "topic.2", topics.ScopeUI)

		assert.NoError(t, registry.Register(t1), "Register t1 should succeed")
		assert.NoError(t, registry.Register(t2), "Register t2 should succeed")

		all := registry.List()
		assert.Len(t, all, 2, "Should return all registered topics")
		var names []string
		for _, topic := range all {
			names = append(names, topic.Name())
		}
		assert.Contains(t, names, "topic1", "Should contain first topic")
		assert.Contains(t, names, "topic2", "Should contain second topic")
	})

	t.Run("List By Scope", func(t *testing.T) {
		registry = topics.NewRegistry()

		form := topics.NewBaseTopic("form.topic", "Form", "form.topic", "form.topic", topics.ScopeForm)
		ui := topics.NewBaseTopic("ui.topic", "UI", "ui.topic", "ui.topic", topics.ScopeUI)

		assert.NoError(t, registry.Register(form))
		assert.NoError(t, registry.Register(ui))

		formTopics := registry.ListByScope(topics.ScopeForm)
		assert.Len(t, formTopics, 1)
		assert.Equal(t, "form.topic", formTopics[0].Name())
	})

	t.Run("Prevent Duplicate Registration", func(t *testing.T) {
		registry = topics.NewRegistry()

		topic := topics.NewBaseTopic("duplicate", "Duplicate topic", "duplicate", "duplicate", topics.ScopeForm)
		assert.NoError(t, registry.Register(topic), "First register should succeed")

		err := registry.Register(topic)
		assert.Error(t, err, "Second register should fail")
		assert.Contains(t, err.Error(), "already registered", "Error should indicate duplicate registration")
	})

	t.Run("Reject Empty Topic Name", func(t *testing.T) {
		registry = topics.NewRegistry()

		err := registry.Register(topics.NewBaseTopic("", "", "", "", topics.ScopeForm))
		assert.Error(t, err, "Empty name should be rejected")
	})
}

func TestRegisterAll(t *testing.T) {
	registry := topics.NewRegistry()

	err := topics.RegisterAll(registry)
	assert.NoError(t, err, "RegisterAll should succeed on an empty registry")

	// Every published topic must be present.
	for _, name := range []string{
		topics.FieldValidated.Name(),
		topics.StrengthChanged.Name(),
		topics.SubmitStarted.Name(),
		topics.SubmitFinished.Name(),
		topics.NoticeShow.Name(),
		topics.SurfaceApply.Name(),
	} {
		_, exists := registry.Get(name)
		assert.True(t, exists, "topic %s should be registered", name)
	}

	// Running it again must not fail; already-registered topics are skipped.
	assert.NoError(t, topics.RegisterAll(registry))
}

func TestDefaultRegistry(t *testing.T) {
	t.Run("Default registry is a singleton", func(t *testing.T) {
		r1 := topics.Default()
		r2 := topics.Default()
		assert.Equal(t, r1, r2, "Default() should return the same instance")
	})

	t.Run("Register with default registry", func(t *testing.T) {
		// Reset the default registry for testing
		topics.Default().Reset()

		topic := topics.NewBaseTopic(
			"default_registry_topic",
			"Topic for default registry test",
			"test.default",
			"test.default",
			topics.ScopeForm,
		)

		err := topics.Register(topic)
		assert.NoError(t, err, "Register with default registry should succeed")

		found, exists := topics.Get("default_registry_topic")
		assert.True(t, exists, "Topic should exist in default registry after registration")
		assert.Equal(t, topic.Name(), found.Name(), "Retrieved topic should match registered topic")
	})
}
