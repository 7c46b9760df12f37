package bridge

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mcpbridge/internal/config"
	"mcpbridge/pkg/logging"
)

// Bridge discovers the provider's tool catalog and registers one host tool
// per remote operation. Discovery runs once per process: a reconnect after
// the provider dies re-establishes transport for the already-registered
// tools but does not re-run discovery. The remote catalog is assumed stable
// for the life of the host process.
type Bridge struct {
	cfg        config.Config
	conns      *ConnectionManager
	registry   ToolRegistry
	normalizer *Normalizer

	mu    sync.RWMutex
	ready bool
	tools []string // exposed names, in registration order
}

// New creates a bridge wired to the given connection manager and host
// registry.
func New(cfg config.Config, conns *ConnectionManager, registry ToolRegistry) *Bridge {
	return &Bridge{
		cfg:        cfg,
		conns:      conns,
		registry:   registry,
		normalizer: NewNormalizer(),
	}
}

// Start launches discovery and registration in the background. The caller's
// startup never blocks on the provider: registered tools become available
// whenever discovery completes. A configuration or discovery failure is
// reported once through the log and leaves the bridge inert, exposing no
// tools; it is never fatal to the host.
func (b *Bridge) Start(ctx context.Context) {
	if err := b.cfg.Validate(); err != nil {
		logging.Error("Bridge", err, "Invalid provider configuration, no tools will be registered")
		return
	}

	go func() {
		if err := b.bootstrap(ctx); err != nil {
			logging.Error("Bridge", err, "Tool discovery failed, no tools will be registered")
		}
	}()
}

// bootstrap connects, discovers the catalog, and registers every operation.
// Split out of Start so tests can drive it synchronously.
func (b *Bridge) bootstrap(ctx context.Context) error {
	client, err := b.conns.EnsureConnected(ctx)
	if err != nil {
		return err
	}

	remoteTools, err := client.ListTools(ctx)
	if err != nil {
		return &DiscoveryError{Err: err}
	}

	prefix := b.cfg.Provider.ToolPrefix
	if prefix == "" {
		prefix = config.DefaultToolPrefix
	}

	serverTools := make([]server.ServerTool, 0, len(remoteTools))
	names := make([]string, 0, len(remoteTools))
	for _, remote := range remoteTools {
		exposed := remote
		exposed.Name = fmt.Sprintf("%s_%s", prefix, remote.Name)
		serverTools = append(serverTools, server.ServerTool{
			Tool:    exposed,
			Handler: b.makeHandler(remote.Name),
		})
		names = append(names, exposed.Name)
		logging.Debug("Bridge", "Registering tool %s (remote: %s)", exposed.Name, remote.Name)
	}

	if len(serverTools) > 0 {
		b.registry.AddTools(serverTools...)
	}

	b.mu.Lock()
	b.ready = true
	b.tools = names
	b.mu.Unlock()

	logging.Info("Bridge", "Registered %d tools from provider %q with prefix %q",
		len(serverTools), b.cfg.Provider.Command, prefix)
	return nil
}

// makeHandler builds the execution path for one remote operation. Each call
// re-acquires the connection (reconnecting transparently if the provider
// died since the last call), invokes the operation under its original
// unprefixed name, and normalizes the response. Failures are returned as
// tool error results rather than protocol errors so a broken tool never
// faults the host session or affects other registered tools.
func (b *Bridge) makeHandler(remoteName string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callID := uuid.NewString()

		args := make(map[string]interface{})
		if req.Params.Arguments != nil {
			if argsMap, ok := req.Params.Arguments.(map[string]interface{}); ok {
				args = argsMap
			}
		}

		client, err := b.conns.EnsureConnected(ctx)
		if err != nil {
			logging.Error("Bridge", err, "Call %s to %s failed before invocation", callID, remoteName)
			return mcp.NewToolResultError(err.Error()), nil
		}

		logging.Debug("Bridge", "Call %s: invoking %s", callID, remoteName)
		result, err := client.CallTool(ctx, remoteName, args)
		if err != nil {
			invErr := &InvocationError{Tool: remoteName, Err: err}
			logging.Error("Bridge", invErr, "Call %s failed", callID)
			return mcp.NewToolResultError(invErr.Error()), nil
		}

		result.Content = b.normalizer.Normalize(result.Content)
		return result, nil
	}
}

// Ready reports whether discovery has completed and tools are registered.
func (b *Bridge) Ready() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ready
}

// Tools returns the exposed names of all registered tools.
func (b *Bridge) Tools() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.tools))
	copy(out, b.tools)
	return out
}

// Shutdown releases the provider connection. Safe to call even if the
// bridge never connected; it must not panic during host teardown.
func (b *Bridge) Shutdown() {
	if err := b.conns.Close(); err != nil {
		logging.Debug("Bridge", "Error during shutdown: %v", err)
	}
}
