// Package genai is the boundary to the hosted text-generation provider.
package genai

import (
	"context"
	"errors"
	"time"

	"ai-web-platform/internal/common/config"
)

// Generator turns a prompt into raw model text. One call is one attempt; implementations
// must not retry, and repeated calls may return different text for the same prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

var (
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set in environment variables")
	ErrInvalidAPIKey = errors.New("Invalid Gemini API key. Please check your .env file")
	ErrRequestFailed = errors.New("Failed to generate content")
	ErrEmptyResponse = errors.New("empty response from model")
	ErrTimeout       = errors.New("generation timed out")
)

type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config holds the provider settings.
type Config struct {
	BaseURL         string
	APIKey          string
	Model           string
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
	Timeout         time.Duration
}

// NewConfig derives the client settings from the application configuration.
func NewConfig(cfg config.GenAIConfig) *Config {
	return &Config{
		BaseURL:         cfg.BaseURL,
		APIKey:          cfg.APIKey,
		Model:           cfg.Model,
		Temperature:     cfg.Temperature,
		TopP:            cfg.TopP,
		TopK:            cfg.TopK,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Timeout:         config.GetDuration(cfg.Timeout),
	}
}
