// Package ideation turns a free-text product idea into a project specification.
package ideation

import (
	"context"
	"fmt"
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

// Request builds the generation request for a user prompt.
func Request(userPrompt string) structured.Request {
	return structured.Request{
		UseCase:        UseCase,
		Role:           SystemPrompt,
		Task:           fmt.Sprintf(taskTemplate, userPrompt),
		Shape:          Shape,
		RequiredFields: models.IdeationRequiredFields,
	}
}

// Generate never fails: provider and output errors yield success=false with the fallback.
func (a *Agent) Generate(ctx context.Context, userPrompt string) *models.IdeationResponse {
	a.logger.Info("ideation started", map[string]interface{}{
		"promptLen": len(userPrompt),
	})

	doc, err := structured.Run[models.Document](ctx, a.runner, Request(userPrompt))
	if err != nil {
		metrics.AgentFallbacks.WithLabelValues(UseCase).Inc()
		a.logger.Warn("ideation fell back to default", map[string]interface{}{
			"error": err.Error(),
		})
		return &models.IdeationResponse{
			Success:   false,
			Error:     err.Error(),
			Fallback:  Fallback(userPrompt).Document(),
			Timestamp: models.Timestamp(a.now()),
		}
	}

	return &models.IdeationResponse{
		Success:   true,
		Ideation:  doc,
		Timestamp: models.Timestamp(a.now()),
	}
}

// Fallback is the static ideation served when generation fails. It echoes the user prompt
// as the description.
func Fallback(userPrompt string) *models.Ideation {
	return &models.Ideation{
		ProjectName: "Custom React Application",
		Description: userPrompt,
		Features:    []string{"User Interface", "Component Structure", "State Management"},
		Components: []models.Component{
			{Name: "App", Purpose: "Main application component", Props: []string{}},
		},
		FileStructure: map[string]string{
			"App.jsx": "Main application component",
			"App.css": "Styling",
		},
		TechStack: &models.TechStack{
			Frontend: []string{"React", "CSS"},
			Backend:  []string{},
		},
		UserFlows:            []string{"User interacts with the application"},
		DesignConsiderations: []string{"Responsive design", "User-friendly interface"},
	}
}
