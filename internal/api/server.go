// internal/api/server.go
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ai-web-platform/internal/agents"
	"ai-web-platform/internal/common/config"
	"ai-web-platform/pkg/registry"
)

// DefaultBodyLimit matches the 50 MB JSON limit of the agent routes.
const DefaultBodyLimit int64 = 50 << 20

type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

type Options struct {
	Server   config.ServerConfig
	App      config.AppConfig
	Agents   *agents.Set
	Registry *registry.ActivityRegistry
	Limiter  Limiter
	// Clients resolves rate limit keys. Nil keys requests by their remote address.
	Clients *ClientResolver
	// Checks run on GET /ready, keyed by dependency name.
	Checks map[string]ReadinessCheck
	Logger Logger
}

// Server exposes the agents over HTTP.
type Server struct {
	cfg       config.ServerConfig
	app       config.AppConfig
	agents    *agents.Set
	registry  *registry.ActivityRegistry
	limiter   Limiter
	clients   *ClientResolver
	checks    map[string]ReadinessCheck
	logger    Logger
	now       func() time.Time
	bodyLimit int64
	http      *http.Server
}

func NewServer(opts Options) *Server {
	reg := opts.Registry
	if reg == nil {
		reg = registry.Default()
	}
	limit := opts.Server.BodyLimitBytes
	if limit <= 0 {
		limit = DefaultBodyLimit
	}

	s := &Server{
		cfg:       opts.Server,
		app:       opts.App,
		agents:    opts.Agents,
		registry:  reg,
		limiter:   opts.Limiter,
		clients:   opts.Clients,
		checks:    opts.Checks,
		logger:    opts.Logger,
		now:       time.Now,
		bodyLimit: limit,
	}
	s.http = &http.Server{
		Addr:         opts.Server.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  config.GetDuration(opts.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(opts.Server.WriteTimeout),
	}
	return s
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	for _, activity := range s.registry.Activities {
		pattern := activity.Method + " " + activity.Path
		var h http.Handler
		if activity.ID == registry.IDHealth {
			h = http.HandlerFunc(s.handleHealth)
		} else {
			h = s.withRateLimit(s.agentHandler(activity))
		}
		mux.Handle(pattern, instrument(activity.Path, h))
	}

	mux.Handle("GET /{$}", instrument("/", http.HandlerFunc(s.handleIndex)))
	mux.Handle("GET /ready", instrument("/ready", http.HandlerFunc(s.handleReady)))
	mux.Handle("GET /metrics", promhttp.Handler())

	var h http.Handler = mux
	h = withCORS(s.cfg.AllowedOrigins, h)
	h = s.withAccessLog(h)
	h = withRequestID(h)
	h = s.withRecovery(h)
	return h
}

// ListenAndServe blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) ListenAndServe() error {
	s.logger.Info("HTTP server listening", map[string]interface{}{
		"addr":      s.http.Addr,
		"bodyLimit": s.bodyLimit,
	})
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	if timeout := config.GetDuration(s.cfg.ShutdownTimeout); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.http.Shutdown(ctx)
}
