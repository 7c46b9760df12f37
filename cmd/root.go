package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mcpbridge",
	Short: "Expose a remote MCP tool provider as native tools",
	Long: `mcpbridge spawns an MCP tool provider as a child process, discovers
its tool catalog, and re-exposes every operation as a native tool on a
local MCP server (stdio or SSE).

The provider's catalog is opaque to the bridge: operation names and
argument schemas are discovered at runtime and proxied through unchanged,
with transparent reconnection if the provider process dies.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid configuration, failed connections)
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional .env next to the working directory; missing file is fine
		_ = godotenv.Load()
	},
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mcpbridge version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
