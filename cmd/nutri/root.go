// ABOUTME: Root Cobra command for nutri CLI.
// ABOUTME: Handles config, logging and storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/analytics"
	"github.com/harperreed/nutri/internal/config"
	"github.com/harperreed/nutri/internal/models"
	"github.com/harperreed/nutri/internal/storage"
	"github.com/spf13/cobra"
)

// annotationNoStorage marks commands that manage storage themselves.
const annotationNoStorage = "nutri/no-storage"

var (
	repo   storage.Repository
	cfg    *config.Config
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "nutri"})

	flagDB      string
	flagUser    string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "nutri",
	Short: "Personal nutrition tracker and analytics",
	Long: `Nutri is a CLI tool for logging meals and analysing nutrition against goals.

WHAT IT TRACKS:

  Users    daily goals for calories, protein, fat and carbohydrate
  Foods    saved foods with nutrients per 100 g
  Meals    portions in grams, tagged breakfast, lunch, dinner or snack

QUICK START:

  $ nutri user add ada --calories 2000 --protein 120
  $ nutri food add oats --kcal 389 --protein 17 --fat 7 --carbs 66
  $ nutri meal add oats 80 --slot breakfast
  $ nutri meal add apple 150 --kcal 52 --carbs 14
  $ nutri day                          # Today's analysis
  $ nutri trends --days 14             # Two-week trends
  $ nutri recommend                    # Personalized advice

USERS:

  Most commands act on one user. Pass --user, set default_user with
  'nutri config set default_user ada', or keep a single user.

MCP INTEGRATION:

  Run 'nutri mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants.

  {
    "mcpServers": {
      "nutri": { "command": "nutri", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  SQLite at ~/.local/share/nutri/nutri.db by default. Set backend to
  "charm" in ~/.config/nutri/config.json to sync through Charm Cloud.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		} else {
			logger.SetLevel(log.InfoLevel)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if flagDB != "" {
			cfg.Backend = "sqlite"
			cfg.DBPath = flagDB
		}

		if !needsStorage(cmd) {
			return nil
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
		}
		if cfg.GetBackend() == "sqlite" {
			logger.Debug("storage opened", "backend", "sqlite", "path", cfg.GetDBPath())
		} else {
			logger.Debug("storage opened", "backend", cfg.GetBackend())
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStorage()
	},
}

// Execute runs the root command and releases storage even on failure.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeStorage(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func closeStorage() error {
	if repo == nil {
		return nil
	}
	err := repo.Close()
	repo = nil
	return err
}

func needsStorage(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "completion":
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNoStorage] == "true" {
			return false
		}
	}
	return true
}

// resolveUser picks the --user flag, then default_user from config, then
// the only user when exactly one exists.
func resolveUser() (*models.User, error) {
	ref := flagUser
	if ref == "" && cfg != nil {
		ref = cfg.DefaultUser
	}
	if ref != "" {
		u, err := repo.GetUser(ref)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", ref, err)
		}
		return u, nil
	}

	users, err := repo.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	switch len(users) {
	case 0:
		return nil, fmt.Errorf("no users yet: create one with 'nutri user add <name>'")
	case 1:
		return users[0], nil
	default:
		return nil, fmt.Errorf("%d users exist: pass --user or set default_user", len(users))
	}
}

func newEngine() *analytics.Engine {
	return analytics.NewEngine(repo, repo, analytics.WithLogger(logger))
}

// trendDays uses the flag when given; negative values reach the engine and fail there.
func trendDays(flag int) int {
	if flag != 0 {
		return flag
	}
	if cfg != nil {
		return cfg.GetTrendDays()
	}
	return config.DefaultTrendDays
}

var faint = color.New(color.Faint)

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (implies the sqlite backend)")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "user name or ID")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging to stderr")
}
