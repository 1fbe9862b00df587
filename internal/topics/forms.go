package topics

import "fmt"

// Form interaction events. Every payload carries the form identifier so
// subscribers can filter without per-form topics.
var (
	// FieldValidated is published each time a single field finishes
	// validation, whether it passed or failed.
	FieldValidated = NewBaseTopic(
		"forms.field.validated",
		"A form field was validated and its result applied to the surface",
		"forms.field.validated",
		"forms.field.validated",
		ScopeForm,
	)

	// StrengthChanged is published when the password strength meter is
	// recomputed for the primary password field.
	StrengthChanged = NewBaseTopic(
		"forms.strength.changed",
		"The password strength score for a form was recomputed",
		"forms.strength.changed",
		"forms.strength.changed",
		ScopeForm,
	)

	// SubmitStarted is published when a submission passes validation and
	// the form enters its busy state.
	SubmitStarted = NewBaseTopic(
		"forms.submit.started",
		"A form submission passed validation and started processing",
		"forms.submit.started",
		"forms.submit.started",
		ScopeForm,
	)

	// SubmitFinished is published when the simulated processing delay
	// elapses and the form leaves its busy state.
	SubmitFinished = NewBaseTopic(
		"forms.submit.finished",
		"A form submission finished and the form returned to idle",
		"forms.submit.finished",
		"forms.submit.finished",
		ScopeForm,
	)
)

// RegisterFormTopics registers all form interaction topics.
// It skips topics that are already registered.
func RegisterFormTopics(reg *Registry) error {
	topicsToRegister := []Topic{
		FieldValidated,
		StrengthChanged,
		SubmitStarted,
		SubmitFinished,
	}

	for _, topic := range topicsToRegister {
		if _, exists := reg.Get(topic.Name()); exists {
			continue
		}
		if err := reg.Register(topic); err != nil {
			return fmt.Errorf("failed to register form topic %s: %w", topic.Name(), err)
		}
	}

	return nil
}
