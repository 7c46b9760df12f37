package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"mcpbridge/internal/config"
	"mcpbridge/internal/provider"
	"mcpbridge/pkg/logging"
)

var toolsOutputFormat string

// toolsCmd represents the tools command
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect the remote provider's tool catalog",
	Long: `Inspect the tool catalog of the configured provider.

These commands spawn the provider process once, query it, and shut it
down again. They are useful to verify a provider configuration before
wiring the bridge into a host.`,
}

// toolsListCmd lists the provider's discovered operations
var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all operations the provider advertises",
	Long: `Spawn the configured provider, run the discovery handshake, and print
every operation it advertises together with the exposed name the bridge
would register for it.`,
	Args: cobra.NoArgs,
	RunE: runToolsList,
}

func runToolsList(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Init(logLevelFromConfig(cfg, false), logging.FormatText, os.Stderr)

	ctx := cmd.Context()
	client, err := provider.Factory(ctx, cfg.Provider)
	if err != nil {
		return err
	}
	defer client.Close()

	listCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tools, err := client.ListTools(listCtx)
	if err != nil {
		return fmt.Errorf("listing provider tools: %w", err)
	}

	prefix := cfg.Provider.ToolPrefix
	if prefix == "" {
		prefix = config.DefaultToolPrefix
	}

	if toolsOutputFormat == "json" {
		data, err := json.MarshalIndent(tools, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EXPOSED NAME\tREMOTE NAME\tDESCRIPTION")
	for _, tool := range tools {
		fmt.Fprintf(w, "%s_%s\t%s\t%s\n", prefix, tool.Name, tool.Name, tool.Description)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.AddCommand(toolsListCmd)

	toolsCmd.PersistentFlags().StringVarP(&toolsOutputFormat, "output", "o", "table", "Output format (table, json)")
}
