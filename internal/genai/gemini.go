package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	commonhttp "ai-web-platform/internal/common/http"
)

const pingPrompt = "Say hello in one sentence."

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	config *Config
	client *commonhttp.Client
	logger Logger
}

// NewGeminiClient builds a client. A missing API key is reported on the first call, not here.
// The HTTP client carries no timeout of its own; Config.Timeout is applied per call via the context.
func NewGeminiClient(cfg *Config, client *commonhttp.Client, log Logger) *GeminiClient {
	if client == nil {
		client = commonhttp.NewClient(0)
	}
	if cfg.APIKey == "" {
		log.Warn("generation provider API key is not configured", map[string]interface{}{
			"model": cfg.Model,
		})
	}
	return &GeminiClient{
		config: cfg,
		client: client,
		logger: log,
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Details []struct {
			Reason string `json:"reason"`
		} `json:"details"`
	} `json:"error"`
}

// Generate sends one generateContent request and returns the concatenated candidate text.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.config.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     c.config.Temperature,
			TopP:            c.config.TopP,
			TopK:            c.config.TopK,
			MaxOutputTokens: c.config.MaxOutputTokens,
		},
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.config.BaseURL, c.config.Model)
	start := time.Now()

	resp, err := c.client.PostJSON(ctx, url, map[string]string{"x-goog-api-key": c.config.APIKey}, body)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
		}
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	if !resp.OK() {
		return "", c.providerError(resp)
	}

	var decoded generateResponse
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrRequestFailed, err)
	}

	text := decoded.text()
	if strings.TrimSpace(text) == "" {
		reason := "no candidates"
		if decoded.PromptFeedback != nil && decoded.PromptFeedback.BlockReason != "" {
			reason = "blocked: " + decoded.PromptFeedback.BlockReason
		} else if len(decoded.Candidates) > 0 && decoded.Candidates[0].FinishReason != "" {
			reason = "finish reason: " + decoded.Candidates[0].FinishReason
		}
		return "", fmt.Errorf("%w (%s)", ErrEmptyResponse, reason)
	}

	c.logger.Debug("generation completed", map[string]interface{}{
		"model":       c.config.Model,
		"promptLen":   len(prompt),
		"responseLen": len(text),
		"durationMs":  time.Since(start).Milliseconds(),
	})

	return text, nil
}

// Ping sends a fixed smoke prompt and returns the reply.
func (c *GeminiClient) Ping(ctx context.Context) (string, error) {
	return c.Generate(ctx, pingPrompt)
}

// Model returns the configured model name.
func (c *GeminiClient) Model() string {
	return c.config.Model
}

func (c *GeminiClient) providerError(resp *commonhttp.Response) error {
	var apiErr errorResponse
	message := strings.TrimSpace(string(resp.Body))
	if err := json.Unmarshal(resp.Body, &apiErr); err == nil && apiErr.Error.Message != "" {
		message = apiErr.Error.Message
	}

	c.logger.Error("generation request rejected", map[string]interface{}{
		"status":  resp.StatusCode,
		"message": message,
	})

	if isKeyError(resp.StatusCode, message, apiErr) {
		return ErrInvalidAPIKey
	}
	return fmt.Errorf("%w: %s", ErrRequestFailed, message)
}

func isKeyError(status int, message string, apiErr errorResponse) bool {
	for _, d := range apiErr.Error.Details {
		if d.Reason == "API_KEY_INVALID" {
			return true
		}
	}
	if strings.Contains(message, "API_KEY_INVALID") || strings.Contains(message, "API key not valid") {
		return true
	}
	return status == 401 || status == 403
}

func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// IsTimeout reports whether err came from a cancelled or expired generation call.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
