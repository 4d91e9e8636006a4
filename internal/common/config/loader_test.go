package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PORT", "")

	cfg, err := LoadFromFile(writeConfig(t, "app:\n  name: agent-test\n"))
	require.NoError(t, err)

	assert.Equal(t, "agent-test", cfg.App.Name)
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, int64(50<<20), cfg.Server.BodyLimitBytes)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "gemini", cfg.GenAI.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.GenAI.Model)
	assert.InDelta(t, 0.7, cfg.GenAI.Temperature, 1e-9)
	assert.InDelta(t, 0.95, cfg.GenAI.TopP, 1e-9)
	assert.Equal(t, 40, cfg.GenAI.TopK)
	assert.Equal(t, 8192, cfg.GenAI.MaxOutputTokens)
	assert.Equal(t, 2*time.Minute, GetDuration(cfg.GenAI.Timeout))
	assert.False(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.Camunda.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-gemini-env")
	t.Setenv("PORT", "4000")

	cfg, err := LoadFromFile(writeConfig(t, "server:\n  port: 3001\n"))
	require.NoError(t, err)

	assert.Equal(t, "from-gemini-env", cfg.GenAI.APIKey)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, ":4000", cfg.Server.Addr())
}

func TestLoadFromFile_TrustedProxies(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := LoadFromFile(writeConfig(t, "rate_limit:\n  enabled: true\n  requests_per_minute: 5\n  trusted_proxies:\n    - 10.0.0.0/8\n    - 127.0.0.1\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.RateLimit.TrustedProxies)
}

func TestLoadFromFile_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TEST_GENAI_KEY", "expanded-key")

	cfg, err := LoadFromFile(writeConfig(t, "genai:\n  api_key: ${TEST_GENAI_KEY}\n  base_url: http://localhost:9999/\n"))
	require.NoError(t, err)

	assert.Equal(t, "expanded-key", cfg.GenAI.APIKey)
	assert.Equal(t, "http://localhost:9999", cfg.GenAI.BaseURL)
}

func TestLoadFromFile_Validation(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("REDIS_ADDR", "")

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "unsupported provider",
			body:    "genai:\n  provider: openai\n",
			wantErr: "genai.provider",
		},
		{
			name:    "redis limiter without address",
			body:    "rate_limit:\n  enabled: true\n  backend: redis\n",
			wantErr: "database.redis.address",
		},
		{
			name:    "unknown limiter backend",
			body:    "rate_limit:\n  enabled: true\n  backend: memcached\n",
			wantErr: "rate_limit.backend",
		},
		{
			name:    "camunda without broker",
			body:    "camunda:\n  enabled: true\n",
			wantErr: "camunda.broker_address",
		},
		{
			name:    "bad port",
			body:    "server:\n  port: 70000\n",
			wantErr: "server.port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestGetWorkerConfig(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := LoadFromFile(writeConfig(t, `
camunda:
  max_jobs_active: 7
  timeout: 5000
workers:
  ideation-agent:
    enabled: false
  coding-agent:
    enabled: true
    max_jobs_active: 2
`))
	require.NoError(t, err)

	ideation := GetWorkerConfig(cfg, "ideation-agent")
	assert.False(t, ideation.Enabled)
	assert.Equal(t, 7, ideation.MaxJobsActive)
	assert.Equal(t, 5000, ideation.Timeout)

	coding := GetWorkerConfig(cfg, "coding-agent")
	assert.Equal(t, 2, coding.MaxJobsActive)

	unlisted := GetWorkerConfig(cfg, "documentation-agent")
	assert.True(t, unlisted.Enabled)
	assert.Equal(t, 7, unlisted.MaxJobsActive)

	assert.False(t, IsWorkerEnabled(cfg, "ideation-agent"))
	assert.True(t, IsWorkerEnabled(cfg, "documentation-agent"))
}
