// ABOUTME: CLI commands for viewing and editing ~/.config/nutri/config.json.
// ABOUTME: Values are validated before the file is written.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long: `Show or change configuration.

KEYS:

  backend        sqlite (default) or charm
  data_dir       directory for the SQLite database
  db_path        explicit SQLite database path
  default_user   user picked when --user is not given
  trend_days     default window for trend reports (default 7)

EXAMPLES:

  nutri config show
  nutri config set backend charm
  nutri config set default_user ada`,
	Annotations: map[string]string{annotationNoStorage: "true"},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", faint.Sprint("file:        "), config.GetConfigPath())
		fmt.Fprintf(out, "%s %s\n", faint.Sprint("backend:     "), c.GetBackend())
		fmt.Fprintf(out, "%s %s\n", faint.Sprint("db_path:     "), c.GetDBPath())
		user := c.DefaultUser
		if user == "" {
			user = "(none)"
		}
		fmt.Fprintf(out, "%s %s\n", faint.Sprint("default_user:"), user)
		fmt.Fprintf(out, "%s %d\n", faint.Sprint("trend_days:  "), c.GetTrendDays())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}

		key, value := args[0], args[1]
		switch key {
		case "backend":
			c.Backend = value
		case "data_dir":
			c.DataDir = value
		case "db_path":
			c.DBPath = value
		case "default_user":
			c.DefaultUser = value
		case "trend_days":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid trend_days: %s", value)
			}
			c.TrendDays = n
		default:
			return fmt.Errorf("unknown key: %s", key)
		}

		if err := c.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Set %s = %s", key, value))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
