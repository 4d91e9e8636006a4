package structured

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"ai-web-platform/internal/common/metrics"
	"ai-web-platform/internal/common/validation"
	"ai-web-platform/internal/genai"
)

const tracerName = "ai-web-platform/structured"

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

// Runner executes generation requests. It holds no per-request state and is safe for
// concurrent use.
type Runner struct {
	generator genai.Generator
	extractor Extractor
	logger    Logger
	tracer    trace.Tracer
}

// NewRunner builds a runner. A nil extractor means BestEffortExtractor.
func NewRunner(gen genai.Generator, ext Extractor, log Logger) *Runner {
	if ext == nil {
		ext = BestEffortExtractor{}
	}
	return &Runner{
		generator: gen,
		extractor: ext,
		logger:    log,
		tracer:    otel.Tracer(tracerName),
	}
}

// Run performs one structured round trip and decodes the validated object into T.
// Errors are the generator's error, *validation.ParseError or *validation.SchemaError.
func Run[T any](ctx context.Context, r *Runner, req Request) (T, error) {
	var out T

	ctx, span := r.tracer.Start(ctx, "agent."+req.UseCase, trace.WithAttributes(
		attribute.String("use_case", req.UseCase),
		attribute.Bool("structured", true),
	))
	defer span.End()
	start := time.Now()

	raw, err := r.generator.Generate(ctx, req.Prompt())
	if err != nil {
		r.finish(span, req.UseCase, start, metrics.OutcomeTransportError, err)
		return out, err
	}

	candidate := r.extractor.Extract(raw)
	doc, err := validation.ValidateRequired(candidate, req.RequiredFields)
	if err != nil {
		outcome := metrics.OutcomeParseError
		var schemaErr *validation.SchemaError
		if errors.As(err, &schemaErr) {
			outcome = metrics.OutcomeSchemaError
		}
		r.finish(span, req.UseCase, start, outcome, err)
		return out, err
	}

	if err := decode(doc, &out); err != nil {
		r.finish(span, req.UseCase, start, metrics.OutcomeParseError, err)
		return out, err
	}

	r.finish(span, req.UseCase, start, metrics.OutcomeSuccess, nil)
	return out, nil
}

// Text performs one plain-text round trip and returns the trimmed reply.
func (r *Runner) Text(ctx context.Context, req Request) (string, error) {
	ctx, span := r.tracer.Start(ctx, "agent."+req.UseCase, trace.WithAttributes(
		attribute.String("use_case", req.UseCase),
		attribute.Bool("structured", false),
	))
	defer span.End()
	start := time.Now()

	raw, err := r.generator.Generate(ctx, req.Prompt())
	if err != nil {
		r.finish(span, req.UseCase, start, metrics.OutcomeTransportError, err)
		return "", err
	}

	r.finish(span, req.UseCase, start, metrics.OutcomeSuccess, nil)
	return strings.TrimSpace(raw), nil
}

func (r *Runner) finish(span trace.Span, useCase string, start time.Time, outcome string, err error) {
	elapsed := time.Since(start)
	metrics.AgentRuns.WithLabelValues(useCase, outcome).Inc()
	metrics.AgentRunDuration.WithLabelValues(useCase).Observe(elapsed.Seconds())

	span.SetAttributes(attribute.String("outcome", outcome))
	fields := map[string]interface{}{
		"useCase":    useCase,
		"outcome":    outcome,
		"durationMs": elapsed.Milliseconds(),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		fields["error"] = err.Error()
		r.logger.Warn("agent run failed", fields)
		return
	}
	span.SetStatus(codes.Ok, "")
	r.logger.Info("agent run completed", fields)
}

// decode converts the validated document into T. A map target receives the document as is.
func decode[T any](doc map[string]interface{}, out *T) error {
	if m, ok := any(out).(*map[string]interface{}); ok {
		*m = doc
		return nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return &validation.ParseError{Err: err}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &validation.ParseError{Err: fmt.Errorf("decode %T: %w", *out, err)}
	}
	return nil
}
