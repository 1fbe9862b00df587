package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nfrund/formwire/internal/config"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("TRACING_ENABLED", "")
	t.Setenv("ZIPKIN_URL", "")
	t.Setenv("SERVICE_NAME", "")

	cfg := config.New()

	assert.Equal(t, ":8080", cfg.GetServerAddr())
	assert.False(t, cfg.GetTracingEnabled())
	assert.Equal(t, "http://localhost:9411/api/v2/spans", cfg.GetZipkinURL())
	assert.Equal(t, "formwire", cfg.GetServiceName())
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("FORMS_DIR", "/etc/formwire/forms")
	t.Setenv("FORMS_WATCH", "true")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("ZIPKIN_URL", "http://zipkin:9411/api/v2/spans")
	t.Setenv("SERVICE_NAME", "formwire-demo")

	cfg := config.New()

	assert.Equal(t, ":9090", cfg.GetServerAddr())
	assert.Equal(t, "/etc/formwire/forms", cfg.GetFormsDir())
	assert.True(t, cfg.GetFormsWatch())
	assert.True(t, cfg.GetTracingEnabled())
	assert.Equal(t, "http://zipkin:9411/api/v2/spans", cfg.GetZipkinURL())
	assert.Equal(t, "formwire-demo", cfg.GetServiceName())
}

func TestNewIgnoresMalformedBool(t *testing.T) {
	t.Setenv("TRACING_ENABLED", "definitely")

	cfg := config.New()

	assert.False(t, cfg.GetTracingEnabled())
}
