package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/config"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/logging"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/mcp"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/mcp/tools"
	"github.com/jkwjkw1020-bot/semiprocess-mcp/internal/metrics"
)

var (
	configPath    string
	transportType string
	httpAddr      string
	endpointPath  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server that exposes the
process analysis tools for AI assistants.

Supports two transport modes:
  - http: HTTP server mode (streamable, stateless sessions)
  - stdio: Standard input/output mode (for subprocess-based MCP clients)

HTTP mode includes /health and /metrics endpoints.`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", getEnv("SEMIPROCESS_CONFIG", ""), "Path to YAML configuration file")
	serveCmd.Flags().StringVar(&transportType, "transport", "", "Transport type: http or stdio (overrides config)")
	serveCmd.Flags().StringVar(&httpAddr, "http-addr", getEnv("SEMIPROCESS_HTTP_ADDR", ""), "HTTP server address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&endpointPath, "mcp-endpoint", getEnv("SEMIPROCESS_ENDPOINT", ""), "HTTP endpoint path for MCP requests (overrides config)")
}

func loadServeConfig() (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	// Flags beat file values.
	if transportType != "" {
		cfg.Transport = transportType
	}
	if httpAddr != "" {
		cfg.ListenAddr = httpAddr
	}
	if endpointPath != "" {
		cfg.EndpointPath = endpointPath
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := loadServeConfig()
	HandleError(err, "Invalid configuration")

	if err := setupLog(cfg.LogLevel); err != nil {
		HandleError(err, "Failed to setup logging")
	}
	if cfg.Transport == "stdio" {
		// Stdout carries the protocol stream; logs must not interleave.
		logging.ForceStderr()
	}
	logger := logging.GetLogger("serve")
	logger.Info("Starting SemiProcess MCP Server (transport: %s)", cfg.Transport)

	registry := prometheus.NewRegistry()
	srv := mcp.NewServer(mcp.ServerOptions{
		Version: Version,
		Tools: tools.Options{
			StableSlopeBelow:  cfg.StableSlopeBelow,
			MaxForecastPoints: cfg.MaxForecastPoints,
		},
		Metrics: metrics.NewMetrics(registry),
	})
	mcpServer := srv.GetMCPServer()
	logger.Info("Registered %d tools", len(srv.ToolNames()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal: %v, shutting down gracefully...", sig)
		cancel()
	}()

	switch cfg.Transport {
	case "http":
		logger.Info("Starting HTTP server on %s (endpoint: %s)", cfg.ListenAddr, cfg.EndpointPath)

		mux := http.NewServeMux()
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

		httpSrv := &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		// Stateless mode keeps compatibility with clients that do not
		// manage MCP sessions.
		streamableServer := server.NewStreamableHTTPServer(
			mcpServer,
			server.WithEndpointPath(cfg.EndpointPath),
			server.WithStateLess(true),
			server.WithStreamableHTTPServer(httpSrv),
		)
		mux.Handle(cfg.EndpointPath, streamableServer)

		errCh := make(chan error, 1)
		go func() {
			if err := streamableServer.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case <-ctx.Done():
			logger.Info("Shutting down HTTP server...")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()

			if err := streamableServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("Error during shutdown: %v", err)
				os.Exit(1)
			}
		case err := <-errCh:
			logger.Error("Server error: %v", err)
			os.Exit(1)
		}

	case "stdio":
		logger.Info("Starting stdio transport")
		if err := server.ServeStdio(mcpServer); err != nil {
			logger.Error("Stdio transport error: %v", err)
		}
	}
}
