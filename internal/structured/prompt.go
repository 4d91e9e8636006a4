// Package structured implements one generation round trip: build the prompt, call the model,
// isolate the JSON object in its reply and check the required fields.
package structured

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Request is one generation request. It is built per call and never mutated afterwards.
type Request struct {
	// UseCase labels logs, spans and metrics (e.g. "ideation", "code-update").
	UseCase string
	// Role is the persona block placed before the task.
	Role string
	// Task is the use-case instruction text.
	Task string
	// Payload is caller data serialized into the task block. Nil means none.
	Payload interface{}
	// PayloadLabel heads the serialized payload.
	PayloadLabel string
	// Sections are further labelled inputs rendered after Payload, in order.
	Sections []Section
	// Shape is an example of the expected JSON object, shown to the model verbatim.
	Shape string
	// RequiredFields makes the request structured. Empty means plain text output.
	RequiredFields []string
}

// Section is a labelled input block of the task.
type Section struct {
	Label string
	Value interface{}
}

// Structured reports whether the reply must be a JSON object.
func (r Request) Structured() bool {
	return len(r.RequiredFields) > 0
}

// Prompt renders the full prompt text: role block, a blank line, then the task block.
func (r Request) Prompt() string {
	var task []string
	task = append(task, strings.TrimSpace(r.Task))

	if r.Payload != nil {
		label := r.PayloadLabel
		if label == "" {
			label = "Input"
		}
		task = append(task, "", label+":", renderPayload(r.Payload))
	}
	for _, section := range r.Sections {
		task = append(task, "", section.Label+":", renderPayload(section.Value))
	}

	if r.Structured() {
		if r.Shape != "" {
			task = append(task, "", "Return a JSON object with this structure:", strings.TrimSpace(r.Shape))
		}
		task = append(task, "", outputContract(r.RequiredFields))
	}

	return strings.TrimSpace(r.Role) + "\n\n" + strings.Join(task, "\n")
}

func renderPayload(payload interface{}) string {
	if s, ok := payload.(string); ok {
		return s
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", payload)
	}
	return string(data)
}

func outputContract(required []string) string {
	return strings.Join([]string{
		"IMPORTANT:",
		fmt.Sprintf("- Respond with ONLY a valid JSON object containing these required fields: %s.", strings.Join(required, ", ")),
		"- Do not wrap the JSON in markdown code fences.",
		"- Do not add any explanation or text before or after the JSON.",
		"- The response must start with { and end with }.",
	}, "\n")
}
