package provider

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"

	"mcpbridge/internal/bridge"
	"mcpbridge/internal/config"
	"mcpbridge/pkg/logging"
)

// Client is the production RemoteToolClient: an MCP client speaking JSON-RPC
// over the stdin/stdout of a provider child process it spawned.
type Client struct {
	launch config.ProviderConfig
	client *client.Client
}

// NewStdioClient spawns the configured provider command and wires an MCP
// stdio client to it. The transport is started; Initialize must still be
// called to complete the protocol handshake.
func NewStdioClient(cfg config.ProviderConfig) (*Client, error) {
	c, err := client.NewStdioMCPClientWithOptions(
		cfg.Command,
		buildEnv(cfg.Env),
		cfg.Args,
		transport.WithCommandFunc(func(ctx context.Context, command string, env []string, args []string) (*exec.Cmd, error) {
			cmd := exec.CommandContext(ctx, command, args...)
			cmd.Env = env
			cmd.Dir = cfg.Dir
			// Own process group so any children the provider spawns terminate with it
			cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
			return cmd, nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("spawning provider %q: %w", cfg.Command, err)
	}

	logging.Debug("Provider", "Spawned provider process: %s %v", cfg.Command, cfg.Args)
	return &Client{launch: cfg, client: c}, nil
}

// Factory is a bridge.ClientFactory producing connected, initialized
// stdio-backed clients.
func Factory(ctx context.Context, cfg config.ProviderConfig) (bridge.RemoteToolClient, error) {
	c, err := NewStdioClient(cfg)
	if err != nil {
		return nil, err
	}
	if err := c.Initialize(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// Initialize performs the MCP protocol handshake with the provider.
func (c *Client) Initialize(ctx context.Context) error {
	req := mcp.InitializeRequest{
		Params: struct {
			ProtocolVersion string                 `json:"protocolVersion"`
			Capabilities    mcp.ClientCapabilities `json:"capabilities"`
			ClientInfo      mcp.Implementation     `json:"clientInfo"`
		}{
			ProtocolVersion: "2024-11-05",
			ClientInfo: mcp.Implementation{
				Name:    "mcpbridge",
				Version: "1.0.0",
			},
			Capabilities: mcp.ClientCapabilities{},
		},
	}

	result, err := c.client.Initialize(ctx, req)
	if err != nil {
		return fmt.Errorf("initialize handshake with %q: %w", c.launch.Command, err)
	}

	logging.Info("Provider", "Connected to %s %s (protocol %s)",
		result.ServerInfo.Name, result.ServerInfo.Version, result.ProtocolVersion)
	return nil
}

// ListTools returns all operations the provider advertises.
func (c *Client) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	result, err := c.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, err
	}
	return result.Tools, nil
}

// CallTool executes a specific provider operation and returns the raw result.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	req := mcp.CallToolRequest{
		Params: struct {
			Name      string    `json:"name"`
			Arguments any       `json:"arguments,omitempty"`
			Meta      *mcp.Meta `json:"_meta,omitempty"`
		}{
			Name:      name,
			Arguments: args,
		},
	}

	return c.client.CallTool(ctx, req)
}

// Ping checks if the provider process is still responsive.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx)
}

// Close shuts down the client and with it the provider child process.
func (c *Client) Close() error {
	return c.client.Close()
}

// buildEnv merges extra variables over the inherited environment, the same
// way the provider would see them if launched from the user's shell.
func buildEnv(extra map[string]string) []string {
	env := os.Environ()
	for k, v := range extra {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}
