// Package config provides configuration management for mcpbridge.
//
// This package implements a layered configuration system. Configuration is
// loaded from multiple sources and merged in a specific order, with later
// sources overriding earlier ones:
//
//  1. Default Configuration (embedded in binary)
//     - Provides sensible defaults for all settings
//     - Ensures mcpbridge works out-of-the-box once a provider is set
//
//  2. User Configuration (~/.config/mcpbridge/config.yaml)
//     - User-specific settings that apply to all projects
//
//  3. Project Configuration (./.mcpbridge/config.yaml)
//     - Project-specific settings in the current directory
//     - Allows teams to share configuration via version control
//
// # Configuration Structure
//
// The configuration file uses YAML format:
//
//	provider:
//	  command: "uv"
//	  args: ["run", "learning-hub"]
//	  dir: "/path/to/provider"      # optional working directory
//	  toolPrefix: "learning_hub"    # optional, default "mcp"
//	  env:
//	    DATABASE_URL: "sqlite:///data.db"
//
//	server:
//	  transport: "stdio"            # or "sse"
//	  host: "localhost"             # SSE only
//	  port: 8080                    # SSE only
//
//	logLevel: "info"
//
// The provider section describes how to launch the remote tool provider
// process; command and args are mandatory. A configuration missing them is
// reported once at startup and the bridge stays inert (no tools registered,
// no crash).
package config
