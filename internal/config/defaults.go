package config

// DefaultToolPrefix is prepended (with an underscore) to every remote
// operation name when no prefix is configured.
const DefaultToolPrefix = "mcp"

// GetDefaultConfig returns the default configuration for mcpbridge.
func GetDefaultConfig() Config {
	return Config{
		Provider: ProviderConfig{
			ToolPrefix: DefaultToolPrefix,
		},
		Server: ServerConfig{
			Transport: TransportStdio,
			Host:      "localhost",
			Port:      8080,
		},
		LogLevel: "info",
	}
}
