package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Provider exposes read-only access to application configuration.
// Components depend on this interface rather than the concrete Config
// struct so tests can substitute fixed values.
type Provider interface {
	GetServerAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetFormsDir() string
	GetFormsWatch() bool
	GetTracingEnabled() bool
	GetZipkinURL() string
	GetServiceName() string
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr     string
	AppBaseURL     string
	SessionSecret  string
	FormsDir       string
	FormsWatch     bool
	TracingEnabled bool
	ZipkinURL      string
	ServiceName    string
}

// New loads configuration from environment variables.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		ServerAddr:     getEnv("SERVER_ADDR", ":8080"),
		AppBaseURL:     getEnv("APP_BASE_URL", "http://localhost:8080"),
		SessionSecret:  getEnv("SESSION_SECRET", "formwire-dev-secret"),
		FormsDir:       getEnv("FORMS_DIR", "forms"),
		FormsWatch:     getEnvBool("FORMS_WATCH", false),
		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		ZipkinURL:      getEnv("ZIPKIN_URL", "http://localhost:9411/api/v2/spans"),
		ServiceName:    getEnv("SERVICE_NAME", "formwire"),
	}

	return cfg
}

func (c *Config) GetServerAddr() string    { return c.ServerAddr }
func (c *Config) GetAppBaseURL() string    { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string { return c.SessionSecret }
func (c *Config) GetFormsDir() string      { return c.FormsDir }
func (c *Config) GetFormsWatch() bool      { return c.FormsWatch }
func (c *Config) GetTracingEnabled() bool  { return c.TracingEnabled }
func (c *Config) GetZipkinURL() string     { return c.ZipkinURL }
func (c *Config) GetServiceName() string   { return c.ServiceName }

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
