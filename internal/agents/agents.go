// Package agents wires the three agents behind the activity IDs of the registry, so the HTTP
// routes and the Zeebe job workers share input decoding and dispatch.
package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-web-platform/internal/agents/coding"
	"ai-web-platform/internal/agents/docagent"
	"ai-web-platform/internal/agents/ideation"
	apperrors "ai-web-platform/internal/common/errors"
	"ai-web-platform/internal/common/validation"
	"ai-web-platform/internal/models"
	"ai-web-platform/internal/structured"
	"ai-web-platform/pkg/registry"
)

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

// Set holds one agent of each kind.
type Set struct {
	Ideation      *ideation.Agent
	Coding        *coding.Agent
	Documentation *docagent.Agent
}

func NewSet(runner *structured.Runner, log Logger) *Set {
	return &Set{
		Ideation:      ideation.New(runner, log),
		Coding:        coding.New(runner, log),
		Documentation: docagent.New(runner, log),
	}
}

// Input is the union of the request bodies of every agent activity.
type Input struct {
	Prompt          string          `json:"prompt"`
	Ideation        models.Document `json:"ideation"`
	SpecificRequest string          `json:"specificRequest"`
	ExistingCode    string          `json:"existingCode"`
	UpdateRequest   string          `json:"updateRequest"`
	CodeFiles       interface{}     `json:"codeFiles"`
	ExistingDocs    string          `json:"existingDocs"`
	CodeChanges     interface{}     `json:"codeChanges"`
}

// Decode parses a request body for an activity. An empty body counts as {}. Required inputs
// that are absent, null or falsy, and values of the wrong type, fail with the activity's
// invalid-input message.
func Decode(data []byte, activity registry.Activity) (*Input, error) {
	if len(data) == 0 {
		data = []byte("{}")
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.NewInvalidRequestError("Request body must be a JSON object")
	}
	if missing := validation.MissingFields(raw, activity.RequiredInputs...); len(missing) > 0 {
		return nil, apperrors.NewInvalidRequestError(activity.InvalidInputMessage)
	}

	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, apperrors.NewInvalidRequestError(activity.InvalidInputMessage)
	}
	return &in, nil
}

// Run dispatches a decoded input to the agent behind an activity. Agent failures are reported
// in the returned response; the error is only set for activities no agent serves.
func (s *Set) Run(ctx context.Context, activityID string, in *Input) (interface{}, error) {
	switch activityID {
	case registry.IDIdeation:
		return s.Ideation.Generate(ctx, in.Prompt), nil
	case registry.IDCodeGeneration:
		return s.Coding.Generate(ctx, in.Ideation, in.SpecificRequest), nil
	case registry.IDCodeUpdate:
		return s.Coding.Update(ctx, in.ExistingCode, in.UpdateRequest), nil
	case registry.IDDocumentationGeneration:
		return s.Documentation.Generate(ctx, in.CodeFiles, in.Ideation), nil
	case registry.IDDocumentationUpdate:
		return s.Documentation.Update(ctx, in.ExistingDocs, in.CodeChanges), nil
	default:
		return nil, fmt.Errorf("no agent serves activity %q", activityID)
	}
}
