package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type Logger interface {
	Debug(msg string, fields map[string]interface{})
}

// NewTracerProvider installs a global tracer provider. Finished spans are written to the
// debug log; there is no remote exporter.
func NewTracerProvider(serviceName string, sampleRatio float64, log Logger) *sdktrace.TracerProvider {
	res := resource.NewSchemaless(attribute.String("service.name", serviceName))

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
		sdktrace.WithSpanProcessor(&logSpanProcessor{logger: log}),
	)
	otel.SetTracerProvider(provider)
	return provider
}

// ShutdownTracerProvider flushes and stops the provider.
func ShutdownTracerProvider(provider *sdktrace.TracerProvider) {
	if provider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = provider.Shutdown(ctx)
}

type logSpanProcessor struct {
	logger Logger
}

func (p *logSpanProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p *logSpanProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	fields := map[string]interface{}{
		"traceId":    s.SpanContext().TraceID().String(),
		"spanId":     s.SpanContext().SpanID().String(),
		"durationMs": s.EndTime().Sub(s.StartTime()).Milliseconds(),
		"status":     s.Status().Code.String(),
	}
	for _, kv := range s.Attributes() {
		fields[string(kv.Key)] = kv.Value.Emit()
	}
	p.logger.Debug("span "+s.Name(), fields)
}

func (p *logSpanProcessor) Shutdown(context.Context) error   { return nil }
func (p *logSpanProcessor) ForceFlush(context.Context) error { return nil }
