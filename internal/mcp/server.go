package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/mvp-joe/sg-mcp/internal/pattern"
)

// MCPServerConfig configures the MCP server.
type MCPServerConfig struct {
	Name     string
	Version  string
	Searcher pattern.Searcher
	Logger   zerolog.Logger
}

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	config *MCPServerConfig
	mcp    *server.MCPServer
}

// NewMCPServer creates a server with the ast_grep tool registered.
func NewMCPServer(config *MCPServerConfig) (*MCPServer, error) {
	if config == nil || config.Searcher == nil {
		return nil, fmt.Errorf("searcher is required")
	}
	if config.Name == "" {
		config.Name = "sg-mcp"
	}
	if config.Version == "" {
		config.Version = "dev"
	}

	mcpServer := server.NewMCPServer(
		config.Name,
		config.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	dispatcher := NewDispatcher(config.Searcher, config.Logger)
	if err := AddAstGrepTool(mcpServer, dispatcher); err != nil {
		return nil, err
	}

	return &MCPServer{config: config, mcp: mcpServer}, nil
}

// Server exposes the underlying mcp-go server.
func (s *MCPServer) Server() *server.MCPServer {
	return s.mcp
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *MCPServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	logger := s.config.Logger
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(logger, "", 0))

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("name", s.config.Name).Str("version", s.config.Version).Msg("starting MCP server on stdio")
		errCh <- stdio.Listen(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("received shutdown signal, stopping")
		cancel()
		return nil
	case err := <-errCh:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
