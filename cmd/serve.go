package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mcpbridge/internal/bridge"
	"mcpbridge/internal/config"
	"mcpbridge/internal/host"
	"mcpbridge/internal/provider"
	"mcpbridge/pkg/logging"
)

// serveDebug enables verbose logging across the application.
var serveDebug bool

// serveLogFormat selects the log record encoding ("text" or "json").
var serveLogFormat string

// serveCmd defines the serve command structure. This is the main command of
// mcpbridge: it starts the host MCP server and bridges the provider's
// catalog onto it.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bridge: spawn the provider and expose its tools",
	Long: `Starts the mcpbridge host server and bridges the configured tool
provider onto it.

On startup the bridge spawns the provider process, discovers its tool
catalog, and registers one host tool per remote operation (named
<toolPrefix>_<operation>). Discovery runs in the background: host startup
never blocks on the provider, and a provider that fails to start leaves
the host running with an empty catalog.

Per call, the bridge reconnects transparently if the provider process
died since the last invocation. Responses that arrive as a fragmented
sequence of JSON text blocks are merged back into a single JSON array.

Configuration is loaded from ~/.config/mcpbridge/config.yaml and
./.mcpbridge/config.yaml (project overrides user).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// runServe is the main entry point for the serve command
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logging.Init(logLevelFromConfig(cfg, serveDebug), logging.Format(serveLogFormat), os.Stderr)

	// Stop on Ctrl+C / SIGTERM; the serve loop also ends when a stdio
	// client closes our stdin.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hostServer := host.New(cfg.Server, "mcpbridge", rootCmd.Version)

	conns := bridge.NewConnectionManager(cfg.Provider, provider.Factory)
	b := bridge.New(cfg, conns, hostServer.Registry())
	hostServer.OnShutdown(b.Shutdown)

	// Discovery and registration run in the background; a configuration or
	// provider failure is logged once and the host serves an empty catalog.
	b.Start(ctx)

	return hostServer.Serve(ctx)
}

// logLevelFromConfig resolves the effective log level, with --debug taking
// precedence over the configured value.
func logLevelFromConfig(cfg config.Config, debug bool) logging.LogLevel {
	if debug {
		return logging.LevelDebug
	}
	switch cfg.LogLevel {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().StringVar(&serveLogFormat, "log-format", "text", "Log format (text, json)")
}
