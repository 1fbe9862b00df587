package topics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nfrund/formwire/internal/topics"
)

func TestValidateName(t *testing.T) {
	testCases := []struct {
		name    string
		topic   string
		wantErr bool
	}{
		{name: "canonical form topic", topic: "forms.field.validated", wantErr: false},
		{name: "canonical ui topic", topic: "ui.notice.show", wantErr: false},
		{name: "underscores allowed", topic: "forms.confirm_password.validated", wantErr: false},
		{name: "empty", topic: "", wantErr: true},
		{name: "two segments", topic: "forms.field", wantErr: true},
		{name: "four segments", topic: "forms.field.validated.now", wantErr: true},
		{name: "uppercase segment", topic: "Forms.field.validated", wantErr: true},
		{name: "empty segment", topic: "forms..validated", wantErr: true},
		{name: "digit-leading segment", topic: "forms.2fa.validated", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := topics.ValidateName(tc.topic)
			if tc.wantErr {
				assert.Error(t, err)
				var topicErr *topics.TopicError
				assert.ErrorAs(t, err, &topicErr)
				assert.Equal(t, topics.ErrorValidationFailed, topicErr.Type)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegisteredTopicsFollowNamingConvention(t *testing.T) {
	reg := topics.NewRegistry()
	assert.NoError(t, topics.RegisterAll(reg))

	for _, topic := range reg.List() {
		assert.NoError(t, topics.ValidateName(topic.Name()), "topic %s", topic.Name())
	}
}
