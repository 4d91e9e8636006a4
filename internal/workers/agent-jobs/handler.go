// internal/workers/agent-jobs/handler.go
package agentjobs

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"ai-web-platform/internal/agents"
	apperrors "ai-web-platform/internal/common/errors"
	"ai-web-platform/internal/common/metrics"
	"ai-web-platform/internal/common/observability"
	"ai-web-platform/pkg/registry"
)

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Handler serves every agent task type. Agent failures complete the job with success=false;
// only invalid input raises a BPMN error. Nothing is retried.
type Handler struct {
	config     *Config
	agents     *agents.Set
	registry   *registry.ActivityRegistry
	errHandler *apperrors.ErrorHandler
	obs        *observability.Observability
	logger     Logger
}

func NewHandler(config *Config, set *agents.Set, reg *registry.ActivityRegistry, obs *observability.Observability, log Logger) *Handler {
	if obs == nil {
		obs = &observability.Observability{}
	}
	l := log.With(map[string]interface{}{"component": "agent-jobs"})
	return &Handler{
		config:     config,
		agents:     set,
		registry:   reg,
		errHandler: apperrors.NewErrorHandler(l),
		obs:        obs,
		logger:     l,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	taskType := job.Type
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"taskType":    taskType,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.Execute(ctx, taskType, job.Variables)
	if err != nil {
		code := string(apperrors.Normalize(err).Code)
		metrics.WorkerJobsFailed.WithLabelValues(taskType, code).Inc()
		h.obs.RecordJobProcessed(ctx, taskType, "failed")
		h.obs.RecordJobDuration(ctx, taskType, time.Since(start), "failed")
		h.errHandler.HandleJobError(ctx, client, job, err)
		return nil
	}

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("create complete job command: %w", err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return fmt.Errorf("send complete job command: %w", err)
	}

	metrics.WorkerJobsCompleted.WithLabelValues(taskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
	h.obs.RecordJobProcessed(ctx, taskType, "completed")
	h.obs.RecordJobDuration(ctx, taskType, time.Since(start), "completed")
	return nil
}

// Execute validates the job variables, runs the agent and returns the completion variables.
func (h *Handler) Execute(ctx context.Context, taskType, variables string) (map[string]interface{}, error) {
	activity, ok := h.registry.FindByTaskType(taskType)
	if !ok || ResultVariable(taskType) == "" {
		return nil, apperrors.NewInvalidRequestError(fmt.Sprintf("unsupported task type %q", taskType))
	}

	input, err := agents.Decode([]byte(variables), activity)
	if err != nil {
		return nil, err
	}

	result, err := h.agents.Run(ctx, activity.ID, input)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	return map[string]interface{}{ResultVariable(taskType): result}, nil
}
