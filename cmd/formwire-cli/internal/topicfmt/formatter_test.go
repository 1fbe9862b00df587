package topicfmt_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/formwire/cmd/formwire-cli/internal/topicfmt"
	"github.com/nfrund/formwire/internal/topics"
)

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	topicfmt.WriteTable(&buf, []topics.Topic{topics.FieldValidated, topics.NoticeShow})

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "forms.field.validated")
	assert.Contains(t, out, "ui.notice.show")
	assert.Contains(t, out, "Total: 2 topics")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, topicfmt.WriteJSON(&buf, []topics.Topic{topics.SubmitStarted}))

	var displays []topicfmt.TopicDisplay
	require.NoError(t, json.Unmarshal(buf.Bytes(), &displays))
	require.Len(t, displays, 1)
	assert.Equal(t, "forms.submit.started", displays[0].Name)
	assert.Equal(t, "form", displays[0].Scope)
}

func TestWriteDetails(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, topicfmt.WriteDetails(&buf, topics.StrengthChanged, "table"))
	assert.Contains(t, buf.String(), "forms.strength.changed")

	buf.Reset()
	require.NoError(t, topicfmt.WriteDetails(&buf, topics.StrengthChanged, "json"))
	var display topicfmt.TopicDisplay
	require.NoError(t, json.Unmarshal(buf.Bytes(), &display))
	assert.Equal(t, "forms.strength.changed", display.Name)

	assert.Error(t, topicfmt.WriteDetails(&buf, topics.StrengthChanged, "yaml"))
}
