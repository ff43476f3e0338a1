// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/harperreed/nutri/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Logs go to stderr.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "nutri": {
        "command": "nutri",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_meal              Log a meal from a saved food or inline profile
  list_meals            List recent meals
  daily_analysis        One day against goals
  weekly_analysis       Seven daily analyses
  monthly_analysis      Thirty daily analyses
  trends                Full trends record for the trailing days
  recommendations       Personalized recommendations
  trend_insights        Insight sentences
  trend_metrics         Averages, trend labels and consistency
  consistency_analysis  Consistency with strict adherence
  goal_adherence        Adherence rate with the daily series

AVAILABLE RESOURCES:

  nutri://today     Today's analysis and meals
  nutri://trends    Trends and recommendations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo,
			mcp.WithDefaultUser(flagOrDefaultUser()),
			mcp.WithTrendDays(cfg.GetTrendDays()),
			mcp.WithLogger(logger),
		)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Debug("mcp server starting", "backend", cfg.GetBackend())
		return server.Serve(ctx)
	},
}

func flagOrDefaultUser() string {
	if flagUser != "" {
		return flagUser
	}
	return cfg.DefaultUser
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
