package config

// Config is the top-level configuration structure for mcpbridge.
type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	Server   ServerConfig   `yaml:"server"`
	LogLevel string         `yaml:"logLevel,omitempty"` // "debug", "info", "warn", "error"
}

// ProviderConfig defines how to launch the remote tool provider process.
type ProviderConfig struct {
	Command    string            `yaml:"command"`              // Executable to spawn, e.g. "uv"
	Args       []string          `yaml:"args"`                 // Arguments, e.g. ["run", "learning-hub"]
	Dir        string            `yaml:"dir,omitempty"`        // Optional working directory for the child process
	Env        map[string]string `yaml:"env,omitempty"`        // Extra environment variables
	ToolPrefix string            `yaml:"toolPrefix,omitempty"` // Prefix for exposed tool names (default: "mcp")
}

const (
	// TransportStdio serves the bridged tools over standard I/O.
	TransportStdio = "stdio"
	// TransportSSE serves the bridged tools over Server-Sent Events.
	TransportSSE = "sse"
)

// ServerConfig defines how the bridge exposes the discovered tools.
type ServerConfig struct {
	Transport string `yaml:"transport,omitempty"` // "stdio" (default) or "sse"
	Host      string `yaml:"host,omitempty"`      // Host to bind to for SSE (default: localhost)
	Port      int    `yaml:"port,omitempty"`      // Port for the SSE endpoint (default: 8080)
}
