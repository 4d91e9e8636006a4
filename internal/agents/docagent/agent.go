// Package docagent writes and updates Markdown project documentation.
package docagent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-web-platform/internal/common/metrics"
	"ai-web-platform/internal/models"
	"ai-web-platform/internal/structured"
)

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

type Agent struct {
	runner *structured.Runner
	logger Logger
	now    func() time.Time
}

func New(runner *structured.Runner, log Logger) *Agent {
	return &Agent{
		runner: runner,
		logger: log,
		now:    time.Now,
	}
}

func GenerateRequest(codeFiles interface{}, ideation models.Document) structured.Request {
	return structured.Request{
		UseCase: UseCaseGenerate,
		Role:    generateRole,
		Task:    generateTask,
		Sections: []structured.Section{
			{Label: "Project Ideation", Value: ideation},
			{Label: "Code Files", Value: codeFiles},
		},
		Shape:          Shape,
		RequiredFields: models.DocumentationRequiredFields,
	}
}

func UpdateRequest(existingDocs string, codeChanges interface{}) structured.Request {
	return structured.Request{
		UseCase:      UseCaseUpdate,
		Role:         updateRole,
		Task:         updateTask,
		Payload:      existingDocs,
		PayloadLabel: "Existing Documentation",
		Sections:     []structured.Section{{Label: "Code Changes", Value: codeChanges}},
	}
}

// Generate returns the generated documentation, or fallback markdown built from the ideation.
func (a *Agent) Generate(ctx context.Context, codeFiles interface{}, ideation models.Document) *models.DocumentationResponse {
	out, err := structured.Run[models.DocumentationOutput](ctx, a.runner, GenerateRequest(codeFiles, ideation))
	if err != nil {
		metrics.AgentFallbacks.WithLabelValues(UseCaseGenerate).Inc()
		a.logger.Warn("documentation generation fell back to default", map[string]interface{}{
			"error": err.Error(),
		})
		return &models.DocumentationResponse{
			Success:       false,
			Documentation: Fallback(ideation),
			Error:         err.Error(),
			Timestamp:     models.Timestamp(a.now()),
		}
	}

	return &models.DocumentationResponse{
		Success:       true,
		Documentation: out.Documentation,
		Timestamp:     models.Timestamp(a.now()),
	}
}

// Update returns the model's trimmed reply as the new documentation. There is no fallback.
func (a *Agent) Update(ctx context.Context, existingDocs string, codeChanges interface{}) *models.DocumentationResponse {
	text, err := a.runner.Text(ctx, UpdateRequest(existingDocs, codeChanges))
	if err != nil {
		return &models.DocumentationResponse{
			Success:   false,
			Error:     err.Error(),
			Timestamp: models.Timestamp(a.now()),
		}
	}

	return &models.DocumentationResponse{
		Success:       true,
		Documentation: text,
		Timestamp:     models.Timestamp(a.now()),
	}
}

// Fallback renders minimal Markdown from whatever the ideation document provides.
func Fallback(ideation models.Document) string {
	name, description, features := models.IdeationSummary(ideation)
	if name == "" {
		name = "Project"
	}
	if description == "" {
		description = "React application"
	}

	bullets := make([]string, len(features))
	for i, f := range features {
		bullets[i] = "- " + f
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s Documentation\n\n", name)
	fmt.Fprintf(&b, "## Overview\n%s\n\n", description)
	fmt.Fprintf(&b, "## Features\n%s\n\n", strings.Join(bullets, "\n"))
	b.WriteString("## Installation\n```bash\nnpm install\nnpm run dev\n```\n\n")
	b.WriteString("## Project Structure\nGenerated based on requirements.\n")
	return b.String()
}
