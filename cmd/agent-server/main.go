// cmd/agent-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"ai-web-platform/internal/agents"
	"ai-web-platform/internal/api"
	"ai-web-platform/internal/common/camunda"
	"ai-web-platform/internal/common/config"
	"ai-web-platform/internal/common/database"
	"ai-web-platform/internal/common/logger"
	"ai-web-platform/internal/common/observability"
	"ai-web-platform/internal/genai"
	"ai-web-platform/internal/structured"
	agentjobs "ai-web-platform/internal/workers/agent-jobs"
	"ai-web-platform/pkg/registry"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "agent-server",
		Short:         "AI Web Platform agent service",
		Long:          "Serves the ideation, coding and documentation agents over HTTP and, optionally, as Zeebe job workers.",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a config file (default: configs/config.yaml)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the enabled job workers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	})
	rootCmd.AddCommand(newCheckCommand(&configPath))
	rootCmd.AddCommand(newIdeateCommand(&configPath))
	rootCmd.AddCommand(newRegistryCommand())

	return rootCmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func newLogger(cfg *config.Config) (*zap.Logger, logger.Logger) {
	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	return zapLog, logger.NewZapAdapter(zapLog)
}

// newAgents builds the Gemini-backed agent set shared by every command.
func newAgents(cfg *config.Config, log logger.Logger) (*genai.GeminiClient, *agents.Set) {
	gemini := genai.NewGeminiClient(genai.NewConfig(cfg.GenAI), nil, log)
	runner := structured.NewRunner(gemini, nil, log)
	return gemini, agents.NewSet(runner, log)
}

func runServe(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	zapLog, log := newLogger(cfg)
	defer zapLog.Sync()

	if _, err := maxprocs.Set(maxprocs.Logger(zapLog.Sugar().Infof)); err != nil {
		log.Warn("failed to set GOMAXPROCS", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Starting agent server...", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"model":       cfg.GenAI.Model,
	})

	if cfg.Observability.TracingEnabled {
		tp := observability.NewTracerProvider(cfg.Observability.ServiceName, cfg.Observability.TraceSampleRatio, log)
		defer observability.ShutdownTracerProvider(tp)
	}

	_, set := newAgents(cfg, log)
	reg := registry.Default()
	checks := map[string]api.ReadinessCheck{}

	// --- Redis (shared rate limit backend) ---
	var counter api.WindowCounter
	if cfg.Database.Redis.Address != "" {
		rc, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return fmt.Errorf("redis init failed: %w", err)
		}
		defer rc.Close()
		counter = rc
		checks["redis"] = rc.Ping
	}

	limiter, err := api.NewLimiter(cfg.RateLimit, counter)
	if err != nil {
		return fmt.Errorf("rate limiter init failed: %w", err)
	}
	clients, err := api.NewClientResolver(cfg.RateLimit.TrustedProxies)
	if err != nil {
		return fmt.Errorf("rate limiter init failed: %w", err)
	}

	// --- Zeebe job workers ---
	var workers []*camunda.CamundaWorker
	if cfg.Camunda.Enabled {
		zc, err := camunda.NewClientWithConfig(camunda.ConfigFrom(cfg.Camunda))
		if err != nil {
			return fmt.Errorf("zeebe client failed: %w", err)
		}
		defer zc.Close()
		checks["zeebe"] = zc.HealthCheck

		obs := observability.New(cfg.Observability.ServiceName)
		defer obs.Shutdown()

		handler := agentjobs.NewHandler(agentjobs.LoadConfig(cfg), set, reg, obs, &agentJobsLoggerAdapter{log})
		for _, taskType := range agentjobs.TaskTypes() {
			if !config.IsWorkerEnabled(cfg, taskType) {
				log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
				continue
			}
			workers = append(workers, camunda.NewWorker(zc.GetClient(), taskType, config.GetWorkerConfig(cfg, taskType), handler, log))
		}
		log.Info("job workers registered", map[string]interface{}{"count": len(workers)})
	}

	// --- HTTP API ---
	server := api.NewServer(api.Options{
		Server:   cfg.Server,
		App:      cfg.App,
		Agents:   set,
		Registry: reg,
		Limiter:  limiter,
		Clients:  clients,
		Checks:   checks,
		Logger:   log,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	// --- Graceful Shutdown ---
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received, stopping...", nil)
	}

	for _, w := range workers {
		w.Stop()
	}
	if err := server.Shutdown(context.Background()); err != nil {
		log.Error("HTTP server shutdown failed", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Agent server stopped gracefully", nil)
	return nil
}

// agentJobsLoggerAdapter narrows With to the job handler's Logger.
type agentJobsLoggerAdapter struct {
	logger.Logger
}

func (a *agentJobsLoggerAdapter) With(fields map[string]interface{}) agentjobs.Logger {
	return &agentJobsLoggerAdapter{a.Logger.With(fields)}
}

// withTimeout derives the deadline used by one-shot commands from the generation timeout.
func withTimeout(cfg *config.Config) (context.Context, context.CancelFunc) {
	timeout := config.GetDuration(cfg.GenAI.Timeout)
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return context.WithTimeout(context.Background(), timeout+5*time.Second)
}
