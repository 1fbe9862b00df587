package topics

// RegisterAll registers every topic the application publishes with the
// provided registry. It skips topics that are already registered.
func RegisterAll(reg *Registry) error {
	if err := RegisterFormTopics(reg); err != nil {
		return err
	}
	return RegisterUITopics(reg)
}

// MustRegisterAll registers all topics and panics on error.
func MustRegisterAll(reg *Registry) {
	if err := RegisterAll(reg); err != nil {
		panic("failed to register topics: " + err.Error())
	}
}
