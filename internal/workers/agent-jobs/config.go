// internal/workers/agent-jobs/config.go
package agentjobs

import (
	"time"

	"ai-web-platform/internal/common/config"
)

type Config struct {
	// Timeout bounds one job, generation call included.
	Timeout time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	timeout := config.GetDuration(cfg.Camunda.Timeout)
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}
	return &Config{Timeout: timeout}
}
