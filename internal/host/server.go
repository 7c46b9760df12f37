package host

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"mcpbridge/internal/config"
	"mcpbridge/pkg/logging"
)

// Server is the host side of the bridge: an MCP server the discovered tools
// are registered on, served over stdio or SSE.
type Server struct {
	cfg config.ServerConfig
	mcp *server.MCPServer

	mu          sync.Mutex
	shutdownFns []func()
}

// New creates a host server. Tools are added later, whenever the bridge
// finishes discovery; clients connected before that simply see an empty
// catalog plus a list_changed notification once registration lands.
func New(cfg config.ServerConfig, name, version string) *Server {
	mcpServer := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
	)

	return &Server{
		cfg: cfg,
		mcp: mcpServer,
	}
}

// Registry exposes the underlying MCP server, which satisfies
// bridge.ToolRegistry.
func (s *Server) Registry() *server.MCPServer {
	return s.mcp
}

// OnShutdown registers a callback to run after the serve loop ends. Hooks
// run in registration order; registering after shutdown is a no-op.
func (s *Server) OnShutdown(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdownFns = append(s.shutdownFns, fn)
}

// Serve blocks until the context is cancelled or the transport fails, then
// runs the shutdown hooks.
func (s *Server) Serve(ctx context.Context) error {
	defer s.runShutdownHooks()

	switch s.cfg.Transport {
	case config.TransportSSE:
		return s.serveSSE(ctx)
	default:
		return s.serveStdio(ctx)
	}
}

func (s *Server) serveStdio(ctx context.Context) error {
	logging.Info("Host", "Serving bridged tools over stdio")

	stdioServer := server.NewStdioServer(s.mcp)
	if err := stdioServer.Listen(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func (s *Server) serveSSE(ctx context.Context) error {
	baseURL := fmt.Sprintf("http://%s:%d", s.cfg.Host, s.cfg.Port)
	sseServer := server.NewSSEServer(
		s.mcp,
		server.WithBaseURL(baseURL),
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
		server.WithKeepAlive(true),
		server.WithKeepAliveInterval(30*time.Second),
	)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	logging.Info("Host", "Serving bridged tools on %s/sse", baseURL)

	errChan := make(chan error, 1)
	go func() {
		if err := sseServer.Start(addr); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("SSE server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn("Host", "Error shutting down SSE server: %v", err)
		}
		return nil
	}
}

func (s *Server) runShutdownHooks() {
	s.mu.Lock()
	fns := s.shutdownFns
	s.shutdownFns = nil
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
