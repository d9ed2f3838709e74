package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/sg-mcp/internal/mcp"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Start the Model Context Protocol (MCP) server that exposes ast-grep to
LLM-powered coding assistants.

The MCP server:
- Registers a single tool named ast_grep
- Runs ast-grep as a subprocess for every call
- Communicates via stdio (standard MCP transport)
- Optionally serves Prometheus metrics when metrics.addr is set

Example:
  sg-mcp serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, cleanup, err := newLogger(cfg.Log, verbose)
	if err != nil {
		return err
	}
	defer cleanup()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	p, err := buildPipeline(cfg, reg)
	if err != nil {
		return err
	}
	defer p.Close()

	// A missing engine is reported per call; at startup it is only a warning
	if version, err := p.prober.Probe(ctx); err != nil {
		logger.Warn().Err(err).Msg("ast-grep is not available; tool calls will fail until it is installed")
	} else {
		logger.Info().Str("engine", version).Str("root", cfg.Workspace.Root).Msg("ast-grep engine ready")
	}

	if cfg.Metrics.Addr != "" {
		srv, err := startMetricsServer(cfg.Metrics.Addr, reg, logger)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	server, err := mcp.NewMCPServer(&mcp.MCPServerConfig{
		Name:     "sg-mcp",
		Version:  Version,
		Searcher: p.provider,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	// Serve (blocks until shutdown)
	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}

// startMetricsServer exposes /metrics on addr in the background.
func startMetricsServer(addr string, gatherer prometheus.Gatherer, logger zerolog.Logger) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on metrics address %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", ln.Addr().String()).Msg("serving metrics")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server failed")
		}
	}()

	return srv, nil
}
