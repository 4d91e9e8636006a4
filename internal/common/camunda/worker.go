// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"ai-web-platform/internal/common/config"
)

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// JobHandler processes one job. A returned error means the job could not be reported back.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job) error
}

// CamundaWorker is one open job worker for a task type.
type CamundaWorker struct {
	worker   worker.JobWorker
	logger   Logger
	taskType string
}

// NewWorker opens a job worker on the shared client.
func NewWorker(client zbc.Client, taskType string, cfg config.WorkerConfig, handler JobHandler, log Logger) *CamundaWorker {
	builder := client.NewJobWorker().
		JobType(taskType).
		Handler(func(client worker.JobClient, job entities.Job) {
			if err := handler.Handle(client, job); err != nil {
				log.Error("Handler returned error", map[string]interface{}{
					"taskType": taskType,
					"jobKey":   job.Key,
					"error":    err.Error(),
				})
			}
		}).
		MaxJobsActive(cfg.MaxJobsActive)

	if cfg.Timeout > 0 {
		builder = builder.Timeout(config.GetDuration(cfg.Timeout))
	}

	jobWorker := builder.Open()
	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": cfg.MaxJobsActive,
		"timeout":       config.GetDuration(cfg.Timeout).String(),
	})

	return &CamundaWorker{
		worker:   jobWorker,
		logger:   log,
		taskType: taskType,
	}
}

func (w *CamundaWorker) TaskType() string {
	return w.taskType
}

// Stop closes the worker and waits for in-flight jobs. The shared client stays open.
func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", map[string]interface{}{"taskType": w.taskType})
	start := time.Now()
	w.worker.Close()
	w.worker.AwaitClose()
	w.logger.Info("worker stopped", map[string]interface{}{
		"taskType":   w.taskType,
		"durationMs": time.Since(start).Milliseconds(),
	})
}
