package docagent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-web-platform/internal/common/logger"
	"ai-web-platform/internal/genai"
	"ai-web-platform/internal/models"
	"ai-web-platform/internal/structured"
)

func newAgent(t *testing.T, reply string, err error) (*Agent, *[]string) {
	t.Helper()
	var prompts []string
	gen := genai.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
		prompts = append(prompts, prompt)
		return reply, err
	})
	log := logger.NewTestLogger(t)
	agent := New(structured.NewRunner(gen, nil, log), log)
	agent.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return agent, &prompts
}

var shopIdeation = models.Document{
	"projectName": "Shop",
	"description": "An online store",
	"features":    []interface{}{"Cart", "Checkout"},
}

var shopFiles = []interface{}{
	map[string]interface{}{"path": "src/App.jsx", "content": "export default App"},
}

func TestAgent_Generate_Success(t *testing.T) {
	agent, prompts := newAgent(t, `{"documentation":"# Shop\n\nDocs."}`, nil)

	resp := agent.Generate(context.Background(), shopFiles, shopIdeation)

	require.True(t, resp.Success)
	assert.Equal(t, "# Shop\n\nDocs.", resp.Documentation)
	assert.Equal(t, "2025-01-02T03:04:05Z", resp.Timestamp)

	require.Len(t, *prompts, 1)
	assert.Contains(t, (*prompts)[0], "Project Ideation:\n{")
	assert.Contains(t, (*prompts)[0], "\"path\": \"src/App.jsx\"")
	assert.Contains(t, (*prompts)[0], "required fields: documentation.")
}

func TestGenerateRequest_AsksForMarkdownInsideJSON(t *testing.T) {
	prompt := GenerateRequest(shopFiles, shopIdeation).Prompt()

	assert.Contains(t, prompt, `place
the whole Markdown document in the "documentation" string value`)
	assert.Contains(t, prompt, "Never reply with bare Markdown.")
	assert.NotContains(t, prompt, "Format documentation in Markdown")

	update := UpdateRequest("# Shop", []interface{}{"x"}).Prompt()
	assert.Contains(t, update, "Format documentation in Markdown")
	assert.NotContains(t, update, `"documentation" string value`)
}

func TestAgent_Generate_KeepsCodeBlocks(t *testing.T) {
	reply := "```json\n" + `{"documentation":"# Shop\n\n## Installation\n` + "```bash" + `\nnpm install\n` + "```" + `\n"}` + "\n```"
	agent, _ := newAgent(t, reply, nil)

	resp := agent.Generate(context.Background(), shopFiles, shopIdeation)

	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, "# Shop\n\n## Installation\n```bash\nnpm install\n```\n", resp.Documentation)
}

func TestAgent_Generate_FallsBackToIdeationMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{"transport", "", errors.New("Failed to generate content: boom")},
		{"plain markdown instead of json", "# Shop\nSome docs", nil},
		{"wrong key", `{"docs":"# Shop"}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent, _ := newAgent(t, tt.reply, tt.err)
			resp := agent.Generate(context.Background(), shopFiles, shopIdeation)

			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, Fallback(shopIdeation), resp.Documentation)
			assert.NotEmpty(t, resp.Payload().Documentation)
		})
	}
}

func TestFallback(t *testing.T) {
	want := "# Shop Documentation\n\n" +
		"## Overview\nAn online store\n\n" +
		"## Features\n- Cart\n- Checkout\n\n" +
		"## Installation\n```bash\nnpm install\nnpm run dev\n```\n\n" +
		"## Project Structure\nGenerated based on requirements.\n"
	assert.Equal(t, want, Fallback(shopIdeation))
}

func TestFallback_EmptyIdeation(t *testing.T) {
	doc := Fallback(models.Document{})
	assert.Contains(t, doc, "# Project Documentation")
	assert.Contains(t, doc, "## Overview\nReact application")
	assert.Contains(t, doc, "## Features\n\n")
}

func TestAgent_Update(t *testing.T) {
	agent, prompts := newAgent(t, "# Shop v2\n", nil)

	resp := agent.Update(context.Background(), "# Shop", []interface{}{"renamed App"})

	require.True(t, resp.Success)
	assert.Equal(t, "# Shop v2", resp.Documentation)
	assert.Contains(t, (*prompts)[0], "Existing Documentation:\n# Shop")
	assert.Contains(t, (*prompts)[0], "Code Changes:\n[\n  \"renamed App\"\n]")
}

func TestAgent_Update_Failure(t *testing.T) {
	agent, _ := newAgent(t, "", genai.ErrMissingAPIKey)

	resp := agent.Update(context.Background(), "# Shop", []interface{}{"x"})

	assert.False(t, resp.Success)
	assert.Empty(t, resp.Documentation)
	assert.Equal(t, genai.ErrMissingAPIKey.Error(), resp.Error)
}
