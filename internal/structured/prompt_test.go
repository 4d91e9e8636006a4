package structured

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequest_Prompt_Structured(t *testing.T) {
	req := Request{
		UseCase:        "ideation",
		Role:           "You are a product manager.",
		Task:           "User Request: build a todo app",
		Shape:          `{"projectName": "string"}`,
		RequiredFields: []string{"projectName", "description"},
	}

	prompt := req.Prompt()

	assert.True(t, strings.HasPrefix(prompt, "You are a product manager.\n\nUser Request: build a todo app"))
	assert.Contains(t, prompt, "Return a JSON object with this structure:\n{\"projectName\": \"string\"}")
	assert.Contains(t, prompt, "required fields: projectName, description.")
	assert.Contains(t, prompt, "Do not wrap the JSON in markdown code fences.")
	assert.Contains(t, prompt, "The response must start with { and end with }.")
}

func TestRequest_Prompt_Payload(t *testing.T) {
	req := Request{
		Role:           "role",
		Task:           "Generate code.",
		Payload:        map[string]interface{}{"projectName": "Todo"},
		PayloadLabel:   "Ideation document",
		RequiredFields: []string{"files"},
	}

	prompt := req.Prompt()
	assert.Contains(t, prompt, "Ideation document:\n{\n  \"projectName\": \"Todo\"\n}")
	assert.Less(t, strings.Index(prompt, "Ideation document:"), strings.Index(prompt, "IMPORTANT:"))
}

func TestRequest_Prompt_StringPayloadIsVerbatim(t *testing.T) {
	req := Request{
		Role:         "role",
		Task:         "Update the code.",
		Payload:      "func main() {}",
		PayloadLabel: "Current code",
	}

	prompt := req.Prompt()
	assert.Contains(t, prompt, "Current code:\nfunc main() {}")
}

func TestRequest_Prompt_PlainText(t *testing.T) {
	req := Request{Role: "role", Task: "Rewrite the docs."}

	assert.False(t, req.Structured())
	assert.Equal(t, "role\n\nRewrite the docs.", req.Prompt())
}

func TestRequest_Prompt_DefaultPayloadLabel(t *testing.T) {
	req := Request{Role: "role", Task: "task", Payload: []string{"a"}}
	assert.Contains(t, req.Prompt(), "Input:\n[\n  \"a\"\n]")
}

// The contract is restated on every call.
func TestRequest_Prompt_IsDeterministic(t *testing.T) {
	req := Request{Role: "r", Task: "t", RequiredFields: []string{"x"}}
	assert.Equal(t, req.Prompt(), req.Prompt())
	assert.Equal(t, 1, strings.Count(req.Prompt(), "required fields: x."))
}

func TestRequest_Prompt_Sections(t *testing.T) {
	req := Request{
		Role: "role",
		Task: "Document the project.",
		Sections: []Section{
			{Label: "Project Ideation", Value: map[string]interface{}{"projectName": "Todo"}},
			{Label: "Code Files", Value: []interface{}{}},
		},
	}

	prompt := req.Prompt()
	ideationAt := strings.Index(prompt, "Project Ideation:\n{")
	filesAt := strings.Index(prompt, "Code Files:\n[]")
	assert.Greater(t, ideationAt, 0)
	assert.Greater(t, filesAt, ideationAt)
}
