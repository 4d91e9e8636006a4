// internal/common/config/config.go
package config

import (
	"strconv"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Server        ServerConfig            `mapstructure:"server"`
	GenAI         GenAIConfig             `mapstructure:"genai"`
	RateLimit     RateLimitConfig         `mapstructure:"rate_limit"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port            int      `mapstructure:"port"`
	BodyLimitBytes  int64    `mapstructure:"body_limit_bytes"`
	ReadTimeout     int      `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int      `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // milliseconds
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
}

// Addr returns the listen address for http.Server.
func (s ServerConfig) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

// GenAIConfig configures the text-generation provider.
type GenAIConfig struct {
	Provider        string  `mapstructure:"provider"`
	BaseURL         string  `mapstructure:"base_url"`
	APIKey          string  `mapstructure:"api_key"`
	Model           string  `mapstructure:"model"`
	Temperature     float64 `mapstructure:"temperature"`
	TopP            float64 `mapstructure:"top_p"`
	TopK            int     `mapstructure:"top_k"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens"`
	Timeout         int     `mapstructure:"timeout"` // milliseconds
}

// RateLimitConfig configures per-client request limiting on the agent endpoints.
type RateLimitConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	Backend           string `mapstructure:"backend"` // "memory" or "redis"
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
	Burst             int    `mapstructure:"burst"`

	// TrustedProxies lists the IPs or CIDR ranges whose X-Forwarded-For header is believed.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CamundaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// WorkerConfig holds the settings applicable to every job worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type ObservabilityConfig struct {
	ServiceName      string  `mapstructure:"service_name"`
	TracingEnabled   bool    `mapstructure:"tracing_enabled"`
	TraceSampleRatio float64 `mapstructure:"trace_sample_ratio"`
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
