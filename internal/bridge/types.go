package bridge

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mcpbridge/internal/config"
)

// RemoteToolClient defines the interface for talking to the remote tool
// provider. The production implementation lives in the provider package.
type RemoteToolClient interface {
	// Initialize performs the protocol handshake with the provider
	Initialize(ctx context.Context) error

	// Close cleanly shuts down the client connection and the child process
	Close() error

	// ListTools returns all operations the provider advertises
	ListTools(ctx context.Context) ([]mcp.Tool, error)

	// CallTool executes a specific operation and returns the raw result
	CallTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error)

	// Ping checks if the provider process is still responsive
	Ping(ctx context.Context) error
}

// ClientFactory creates a connected, initialized RemoteToolClient from a
// launch configuration. Injected so tests can substitute fakes.
type ClientFactory func(ctx context.Context, cfg config.ProviderConfig) (RemoteToolClient, error)

// ToolRegistry is the host capability the bridge registers discovered tools
// on. *server.MCPServer satisfies it directly.
type ToolRegistry interface {
	AddTools(tools ...server.ServerTool)
}
