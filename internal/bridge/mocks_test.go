package bridge

import (
	"context"
	"errors"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mcpbridge/internal/config"
)

// fakeClient is an in-memory RemoteToolClient standing in for a provider
// process. Kill marks it dead: pings fail and calls error, as they would
// once the child process exits.
type fakeClient struct {
	mu      sync.Mutex
	dead    bool
	closed  bool
	tools   []mcp.Tool
	listErr error
	callErr error
	// results maps tool name to the canned result returned by CallTool
	results map[string]*mcp.CallToolResult
	// calls records every (name, args) invocation in order
	calls []recordedCall
}

type recordedCall struct {
	name string
	args map[string]interface{}
}

var errProviderGone = errors.New("transport closed: provider process exited")

func (f *fakeClient) Initialize(ctx context.Context) error { return nil }

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeClient) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dead {
		return nil, errProviderGone
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tools, nil
}

func (f *fakeClient) CallTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dead {
		return nil, errProviderGone
	}
	f.calls = append(f.calls, recordedCall{name: name, args: args})
	if f.callErr != nil {
		return nil, f.callErr
	}
	if res, ok := f.results[name]; ok {
		return res, nil
	}
	return mcp.NewToolResultText("ok"), nil
}

func (f *fakeClient) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dead {
		return errProviderGone
	}
	return nil
}

func (f *fakeClient) kill() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dead = true
}

func (f *fakeClient) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeClient) recordedCalls() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// fakeFactory hands out successive clients and counts connect attempts.
type fakeFactory struct {
	mu       sync.Mutex
	clients  []*fakeClient
	errs     []error // consumed before clients; nil entries skipped
	attempts int
}

func (ff *fakeFactory) factory(ctx context.Context, cfg config.ProviderConfig) (RemoteToolClient, error) {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	ff.attempts++
	if len(ff.errs) > 0 {
		err := ff.errs[0]
		ff.errs = ff.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	if len(ff.clients) == 0 {
		return nil, errors.New("fakeFactory: no clients left")
	}
	c := ff.clients[0]
	if len(ff.clients) > 1 {
		ff.clients = ff.clients[1:]
	}
	return c, nil
}

func (ff *fakeFactory) connectAttempts() int {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	return ff.attempts
}

// fakeRegistry collects registered tools in place of an MCP server.
type fakeRegistry struct {
	mu    sync.Mutex
	tools []server.ServerTool
}

func (r *fakeRegistry) AddTools(tools ...server.ServerTool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools = append(r.tools, tools...)
}

func (r *fakeRegistry) registered() []server.ServerTool {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]server.ServerTool, len(r.tools))
	copy(out, r.tools)
	return out
}

func validConfig() config.Config {
	cfg := config.GetDefaultConfig()
	cfg.Provider.Command = "uv"
	cfg.Provider.Args = []string{"run", "learning-hub"}
	cfg.Provider.ToolPrefix = "learning_hub"
	return cfg
}
