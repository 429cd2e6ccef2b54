package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/agent"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/google"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/instrumentation"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/llm"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/server"
	"github.com/akashs101199/Ai-Scheduler-Chat-Bot/internal/tools/schedule_tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

// ModelConfig holds the Ollama connection settings.
type ModelConfig struct {
	// Host is the Ollama base URL (e.g., "http://localhost:11434")
	Host string

	// Model is the model name passed on every completion call
	Model string

	// Timeout bounds a single completion call
	Timeout time.Duration
}

func newServeCmd() *cobra.Command {
	var (
		debugMode      bool
		httpAddr       string
		ollamaHost     string
		ollamaModel    string
		ollamaTimeout  time.Duration
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP chat API",
		Long: `Start the scheduling assistant's HTTP API.

Endpoints:
  POST /chat                  Chat with the assistant
  GET  /auth/google/start     Begin the Google Calendar connect flow
  GET  /auth/google/callback  OAuth redirect target
  GET  /healthz, /readyz      Health probes

Configuration:
  Google OAuth (required for calendar access):
    GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, GOOGLE_REDIRECT_URI env vars,
    loaded from .env when present.

  Ollama:
    --ollama-host / OLLAMA_HOST (default: http://localhost:11434)
    --ollama-model / OLLAMA_MODEL (default: mistral)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			modelConfig := ModelConfig{
				Host:    ollamaHost,
				Model:   ollamaModel,
				Timeout: ollamaTimeout,
			}
			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}
			return runServe(debugMode, httpAddr, modelConfig, metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&httpAddr, "http-addr", server.DefaultAddr, "HTTP server address for the chat API")
	cmd.Flags().StringVar(&ollamaHost, "ollama-host", "", "Ollama base URL. Can also use OLLAMA_HOST env var. Default: http://localhost:11434")
	cmd.Flags().StringVar(&ollamaModel, "ollama-model", "", "Ollama model name. Can also use OLLAMA_MODEL env var. Default: mistral")
	cmd.Flags().DurationVar(&ollamaTimeout, "ollama-timeout", 0, "Timeout for a single model call. Can also use OLLAMA_TIMEOUT_S env var. Default: 180s")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(debugMode bool, httpAddr string, modelConfig ModelConfig, metricsConfig MetricsConfig) error {
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := newLogger(debugMode)
	slog.SetDefault(logger)

	// Environment fallbacks for flags left at their defaults.
	if os.Getenv("METRICS_ENABLED") == "false" {
		metricsConfig.Enabled = false
	}
	if metricsConfig.Addr == "" || metricsConfig.Addr == server.DefaultMetricsAddr {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			metricsConfig.Addr = addr
		}
	}

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Error("instrumentation shutdown failed", "error", err)
		}
	}()

	var metricsServer *server.MetricsServer
	if metricsConfig.Enabled && provider.Enabled() && provider.PrometheusEnabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		select {
		case <-metricsReady:
			logger.Info("metrics server started", "addr", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}
	}

	if modelConfig.Timeout == 0 {
		if v := os.Getenv("OLLAMA_TIMEOUT_S"); v != "" {
			if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
				modelConfig.Timeout = time.Duration(secs) * time.Second
			}
		}
	}

	var modelOpts []llm.Option
	if modelConfig.Timeout > 0 {
		modelOpts = append(modelOpts, llm.WithTimeout(modelConfig.Timeout))
	}
	model := llm.NewClient(modelConfig.Host, modelConfig.Model, modelOpts...)
	logger.Info("using model", "host", model.Host(), "model", model.Model(), "timeout", model.Timeout())

	if err := google.ValidateOAuthConfig(); err != nil {
		// Calendar tools fail per-identity until users connect; the chat
		// endpoint itself works without Google config.
		logger.Warn("google oauth not configured, calendar tools unavailable", "error", err)
	}

	sc := server.NewServerContext(shutdownCtx, model, google.NewFileTokenProvider(), provider.Metrics(), logger)

	registry := agent.NewRegistry()
	schedule_tools.Register(registry, schedule_tools.Deps{
		Calendars: sc,
		Logger:    logger,
	})

	chat := agent.New(server.InstrumentModel(model, provider.Metrics()), registry, logger)

	httpServer := server.NewHTTPServer(httpAddr, sc, chat)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("chat server failed: %w", err)
		}
	case <-shutdownCtx.Done():
		logger.Info("shutting down")
	}

	shutdownTimeout, cancelShutdown := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownTimeout); err != nil {
		logger.Error("chat server shutdown failed", "error", err)
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownTimeout); err != nil {
			logger.Error("metrics server shutdown failed", "error", err)
		}
	}
	return nil
}

func newLogger(debugMode bool) *slog.Logger {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
