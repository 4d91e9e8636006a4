// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml (if present), merges config.<APP_ENVIRONMENT>.yaml on top,
// applies environment overrides and validates the result.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func bindEnv(v *viper.Viper) {
	// GENAI_API_KEY -> genai.api_key, SERVER_PORT -> server.port, ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "ai-web-platform")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.port", 3001)
	v.SetDefault("server.body_limit_bytes", 50<<20)
	v.SetDefault("server.read_timeout", 30000)
	v.SetDefault("server.write_timeout", 180000)
	v.SetDefault("server.shutdown_timeout", 30000)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("genai.provider", "gemini")
	v.SetDefault("genai.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("genai.api_key", "")
	v.SetDefault("genai.model", "gemini-2.0-flash")
	v.SetDefault("genai.temperature", 0.7)
	v.SetDefault("genai.top_p", 0.95)
	v.SetDefault("genai.top_k", 40)
	v.SetDefault("genai.max_output_tokens", 8192)
	v.SetDefault("genai.timeout", 120000)

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.backend", "memory")
	v.SetDefault("rate_limit.requests_per_minute", 30)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("rate_limit.trusted_proxies", []string{})

	v.SetDefault("database.redis.address", "")
	v.SetDefault("database.redis.password", "")
	v.SetDefault("database.redis.db", 0)

	v.SetDefault("camunda.enabled", false)
	v.SetDefault("camunda.broker_address", "")
	v.SetDefault("camunda.max_jobs_active", 10)
	v.SetDefault("camunda.timeout", 180000)
	v.SetDefault("camunda.request_timeout", 30000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")

	v.SetDefault("observability.service_name", "ai-web-platform")
	v.SetDefault("observability.tracing_enabled", true)
	v.SetDefault("observability.trace_sample_ratio", 1.0)
}

// loadEnvFile loads the first .env found walking up from the working directory.
// It returns the path that was loaded, or "" when none was found.
func loadEnvFile() string {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// LoadEnvFile is exported for commands that only need the environment (e.g. the check command).
func LoadEnvFile() string {
	return loadEnvFile()
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig honours the short variable names used by deployment scripts.
func overrideEmptyConfig(cfg *Config) {
	if cfg.GenAI.APIKey == "" {
		if val := os.Getenv("GEMINI_API_KEY"); val != "" {
			cfg.GenAI.APIKey = val
		}
	}
	if val := os.Getenv("PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.Server.Port = port
		}
	}
	if cfg.Database.Redis.Address == "" {
		if val := os.Getenv("REDIS_ADDR"); val != "" {
			cfg.Database.Redis.Address = val
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Workers == nil {
		cfg.Workers = make(map[string]WorkerConfig)
	}
	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = cfg.Camunda.MaxJobsActive
		}
		if worker.Timeout == 0 {
			worker.Timeout = cfg.Camunda.Timeout
		}
		cfg.Workers[key] = worker
	}
	cfg.GenAI.BaseURL = strings.TrimRight(cfg.GenAI.BaseURL, "/")
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.BodyLimitBytes <= 0 {
		return fmt.Errorf("server.body_limit_bytes must be positive")
	}

	if cfg.GenAI.Provider != "gemini" {
		return fmt.Errorf("genai.provider %q is not supported", cfg.GenAI.Provider)
	}
	if cfg.GenAI.BaseURL == "" {
		return fmt.Errorf("genai.base_url is required")
	}
	if cfg.GenAI.Model == "" {
		return fmt.Errorf("genai.model is required")
	}

	if cfg.RateLimit.Enabled {
		switch cfg.RateLimit.Backend {
		case "memory":
		case "redis":
			if cfg.Database.Redis.Address == "" {
				return fmt.Errorf("database.redis.address is required for the redis rate limit backend")
			}
		default:
			return fmt.Errorf("rate_limit.backend %q is not supported", cfg.RateLimit.Backend)
		}
		if cfg.RateLimit.RequestsPerMinute <= 0 {
			return fmt.Errorf("rate_limit.requests_per_minute must be positive")
		}
	}

	if cfg.Camunda.Enabled && cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required when camunda is enabled")
	}

	return nil
}

// GetWorkerConfig retrieves worker-specific configuration with fallback to the camunda defaults.
func GetWorkerConfig(cfg *Config, taskType string) WorkerConfig {
	if worker, exists := cfg.Workers[taskType]; exists {
		return worker
	}
	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: cfg.Camunda.MaxJobsActive,
		Timeout:       cfg.Camunda.Timeout,
	}
}

// IsWorkerEnabled reports whether a job worker should be opened. Unlisted workers are enabled.
func IsWorkerEnabled(cfg *Config, taskType string) bool {
	if worker, exists := cfg.Workers[taskType]; exists {
		return worker.Enabled
	}
	return true
}
