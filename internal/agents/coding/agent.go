// Package coding generates React source files from an ideation document and rewrites
// existing code on request.
package coding

import (
	"context"
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

// GenerateRequest builds the code generation request. specificRequest is optional.
func GenerateRequest(ideation interface{}, specificRequest string) structured.Request {
	req := structured.Request{
		UseCase:        UseCaseGenerate,
		Role:           SystemPrompt,
		Task:           generateTask,
		Payload:        ideation,
		PayloadLabel:   "Ideation document",
		Shape:          Shape,
		RequiredFields: models.CodeRequiredFields,
	}
	if specificRequest != "" {
		req.Sections = []structured.Section{{Label: "Specific Request", Value: specificRequest}}
	}
	return req
}

func UpdateRequest(existingCode, updateRequest string) structured.Request {
	return structured.Request{
		UseCase:      UseCaseUpdate,
		Role:         SystemPrompt,
		Task:         updateTask,
		Payload:      existingCode,
		PayloadLabel: "Current code",
		Sections:     []structured.Section{{Label: "Update Request", Value: updateRequest}},
	}
}

// Generate returns the generated files. On failure Files is empty, which still satisfies
// the required-field set.
func (a *Agent) Generate(ctx context.Context, ideation interface{}, specificRequest string) *models.CodeResponse {
	out, err := structured.Run[models.CodeOutput](ctx, a.runner, GenerateRequest(ideation, specificRequest))
	if err != nil {
		metrics.AgentFallbacks.WithLabelValues(UseCaseGenerate).Inc()
		a.logger.Warn("code generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return &models.CodeResponse{
			Success:   false,
			Files:     []models.CodeFile{},
			Error:     err.Error(),
			Timestamp: models.Timestamp(a.now()),
		}
	}

	files := out.Files
	if files == nil {
		files = []models.CodeFile{}
	}
	a.logger.Info("code generated", map[string]interface{}{
		"fileCount": len(files),
	})

	return &models.CodeResponse{
		Success:   true,
		Files:     files,
		Timestamp: models.Timestamp(a.now()),
	}
}

// Update returns the model's trimmed reply as the updated code. There is no fallback.
func (a *Agent) Update(ctx context.Context, existingCode, updateRequest string) *models.CodeUpdateResponse {
	text, err := a.runner.Text(ctx, UpdateRequest(existingCode, updateRequest))
	if err != nil {
		return &models.CodeUpdateResponse{
			Success:   false,
			Error:     err.Error(),
			Timestamp: models.Timestamp(a.now()),
		}
	}

	return &models.CodeUpdateResponse{
		Success:     true,
		UpdatedCode: text,
		Timestamp:   models.Timestamp(a.now()),
	}
}
