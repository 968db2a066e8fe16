package mcp

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mycelian/dixa-mcp/client"
	"github.com/mycelian/dixa-mcp/mcp/internal/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

func registerHandler(s *server.MCPServer, handler toolRegisterer, name string) error {
	if err := handler.RegisterTools(s); err != nil {
		return fmt.Errorf("register %s tools: %w", name, err)
	}
	return nil
}

// newDixaClient builds the SDK client from configuration.
func newDixaClient(cfg *config) (*client.Client, error) {
	return client.New(cfg.DixaBaseURL,
		client.WithHTTPTimeout(cfg.DixaTimeout),
		client.WithMaxRetries(cfg.DixaMaxRetries),
	)
}

// newMCPServer creates the MCP server and registers every Dixa tool.
func newMCPServer(cfg *config, dixa *client.Client) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	registrations := []struct {
		name    string
		handler toolRegisterer
	}{
		{"info", handlers.NewInfoHandler(dixa)},
		{"conversation", handlers.NewConversationHandler(dixa)},
		{"tag", handlers.NewTagHandler(dixa)},
		{"user", handlers.NewUserHandler(dixa)},
		{"agent", handlers.NewAgentHandler(dixa)},
		{"analytics", handlers.NewAnalyticsHandler(dixa)},
	}
	for _, r := range registrations {
		if err := registerHandler(s, r.handler, r.name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// RunMCPServer starts the MCP server with configuration from the environment
// and command line.
func RunMCPServer() error {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}
	cfg.initLogger()

	log.Info().Str("dixa_base_url", cfg.DixaBaseURL).Int("max_retries", cfg.DixaMaxRetries).Msg("Creating Dixa client")
	dixa, err := newDixaClient(cfg)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to create client")
		return err
	}
	if _, err := dixa.APIKey(); err != nil {
		// Not fatal: get_api_info reports the problem to the caller.
		log.Warn().Err(err).Msg("Dixa API key not configured; tools will report an error until it is set")
	}

	s, err := newMCPServer(cfg, dixa)
	if err != nil {
		return err
	}

	if shouldUseStdio() {
		// Stdio transport (for desktop hosts and launched processes)
		log.Info().Msg("Starting Dixa MCP server (stdio transport)")
		return server.ServeStdio(s)
	}
	return serveHTTP(cfg, s)
}

// serveHTTP serves the Streamable HTTP transport plus /metrics until SIGINT
// or SIGTERM, then drains both servers.
func serveHTTP(cfg *config, s *server.MCPServer) error {
	log.Info().Str("addr", cfg.HTTPAddr).Msg("Starting Dixa MCP server (Streamable HTTP)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	shutdownComplete := make(chan struct{})

	streamSrv, handler := newHTTPHandler(cfg, s)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPReadTimeout, // Keep short for request parsing
		WriteTimeout: 0,                   // No deadline - required for SSE streaming
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		defer close(shutdownComplete)

		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down HTTP server...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}

		log.Info().Msg("Shutting down MCP streamable server...")
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during MCP server shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}

	<-shutdownComplete
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// newHTTPHandler routes /mcp to the streamable transport and /metrics to the
// Prometheus exporter.
func newHTTPHandler(cfg *config, s *server.MCPServer) (*server.StreamableHTTPServer, http.Handler) {
	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(cfg.HeartbeatPeriod),
	)

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamSrv)
	mux.Handle("/metrics", promhttp.Handler())
	return streamSrv, mux
}

// shouldUseStdio determines whether to use stdio transport based on environment
func shouldUseStdio() bool {
	if os.Getenv("MCP_STDIO") == "true" {
		return true
	}
	if os.Getenv("MCP_HTTP") == "true" {
		return false
	}

	// Auto-detect: Use stdio if stdin is not a terminal (launched by another process)
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}

	// Default to HTTP if detection fails
	return false
}
