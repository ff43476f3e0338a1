// ABOUTME: CLI command for migrating data between storage backends.
// ABOUTME: Copies users, foods and meals between SQLite and Charm KV.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/config"
	"github.com/harperreed/nutri/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate data between storage backends",
	Long: `Copy all users, foods and meals from one backend to another.

BACKENDS:

  sqlite   Local database (default ~/.local/share/nutri/nutri.db, or --db)
  charm    Charm KV, synced through Charm Cloud

IMPORTANT:

  - Existing destination data is not overwritten; migrating into a
    non-empty destination needs --force and fails on duplicate IDs
  - Run with --dry-run first to see what would be migrated
  - Switch backends afterwards with 'nutri config set backend <name>'

USAGE:

  nutri migrate --from charm --to sqlite --dry-run
  nutri migrate --from sqlite --to charm`,
	Annotations: map[string]string{annotationNoStorage: "true"},
	Args:        cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are both %s", migrateFrom)
		}
		for _, b := range []string{migrateFrom, migrateTo} {
			if b != "sqlite" && b != "charm" {
				return fmt.Errorf("unknown backend: %s (use sqlite or charm)", b)
			}
		}
		out := cmd.OutOrStdout()

		if migrateFrom == "charm" {
			dir := filepath.Join(filepath.Dir(storage.DataDir()), "charm", "kv", "nutri")
			if ok, err := storage.IsDirNonEmpty(dir); err == nil && !ok {
				logger.Warn("no local charm data, relying on cloud sync", "dir", dir)
			}
		}

		src, err := config.OpenBackend(migrateFrom, cfg.GetDBPath())
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", migrateFrom, err)
		}
		defer func() { _ = src.Close() }()

		data, err := src.GetAllData()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", migrateFrom, err)
		}

		if migrateDryRun {
			fmt.Fprintln(out, color.YellowString("Dry run mode - no changes will be made"))
			fmt.Fprintf(out, "  Users: %d\n  Foods: %d\n  Meals: %d\n", len(data.Users), len(data.Foods), len(data.Meals))
			return nil
		}

		dst, err := config.OpenBackend(migrateTo, cfg.GetDBPath())
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", migrateTo, err)
		}
		defer func() { _ = dst.Close() }()

		existing, err := dst.GetAllData()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", migrateTo, err)
		}
		if n := len(existing.Users) + len(existing.Foods) + len(existing.Meals); n > 0 && !migrateForce {
			return fmt.Errorf("%s already holds %d records (use --force to migrate anyway)", migrateTo, n)
		}

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		fmt.Fprintln(out, color.GreenString("✓ Migrated %s to %s", migrateFrom, migrateTo))
		fmt.Fprintf(out, "  Users: %d\n  Foods: %d\n  Meals: %d\n", summary.Users, summary.Foods, summary.Meals)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "charm", "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "sqlite", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "migrate into a non-empty destination")
	rootCmd.AddCommand(migrateCmd)
}
