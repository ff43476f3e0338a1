// ABOUTME: CLI commands for Charm-based sync.
// ABOUTME: Supports link, unlink, status, repair, reset, and wipe operations.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/charm"
	"github.com/spf13/cobra"
)

const kvName = "nutri"

var syncRepairForce bool

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync nutrition data across devices",
	Long: `Sync nutrition data across devices using Charm Cloud.

Applies to the charm backend ('nutri config set backend charm').
Your data is E2E encrypted with your SSH key before upload.

GETTING STARTED:

  1. Link your device (creates/uses SSH key automatically):
     nutri sync link

  2. On other devices, link with the same Charm account:
     nutri sync link

  3. Check sync status:
     nutri sync status

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show sync status and account info
  repair      Repair database corruption (checkpoints WAL, removes SHM, vacuums)
  reset       Reset local data and restore from cloud (destructive)
  wipe        Delete cloud and local data (destructive)

Data syncs automatically after each write.`,
	Annotations: map[string]string{annotationNoStorage: "true"},
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("link"); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("\n✓ Device linked to Charm"))

		c, err := charm.InitClient()
		if err != nil {
			fmt.Fprintln(out, color.YellowString("⚠ Initial sync skipped: %v", err))
			return nil
		}
		defer func() { _ = c.Close() }()
		if err := c.Sync(); err != nil {
			fmt.Fprintln(out, color.YellowString("⚠ Initial sync failed: %v", err))
		} else {
			fmt.Fprintln(out, color.GreenString("✓ Initial sync complete"))
		}
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm",
	Long: `Disconnect this device from Charm.

This does not delete your local nutrition data.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("unlink"); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Device unlinked from Charm"))
		fmt.Fprintln(out, "Your local nutrition data is preserved.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		c, err := charm.InitClient()
		if err != nil {
			fmt.Fprintln(out, color.YellowString("Charm client not initialized: %v", err))
			fmt.Fprintln(out, "\nRun 'nutri sync link' to connect to Charm.")
			return nil
		}
		defer func() { _ = c.Close() }()

		id, err := c.ID()
		if err != nil {
			fmt.Fprintln(out, color.YellowString("Not linked to Charm"))
			fmt.Fprintln(out, "\nRun 'nutri sync link' to connect to Charm.")
			return nil
		}

		fmt.Fprintln(out, "Charm ID:", id)
		if c.IsReadOnly() {
			fmt.Fprintln(out, color.YellowString("Read-only: another process holds the database"))
		}
		fmt.Fprintln(out)

		data, err := c.GetAllData()
		if err != nil {
			return fmt.Errorf("failed to read local data: %w", err)
		}
		fmt.Fprintln(out, color.GreenString("✓ Connected to Charm"))
		fmt.Fprintf(out, "  Users: %d\n  Foods: %d\n  Meals: %d\n", len(data.Users), len(data.Foods), len(data.Meals))
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair database corruption",
	Long: `Repair database corruption by checkpointing WAL, removing SHM files,
checking integrity, and vacuuming.

Run with --force to attempt recovery even if integrity checks fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Repairing nutri database...")
		result, err := kv.Repair(kvName, syncRepairForce)

		if result.WalCheckpointed {
			fmt.Fprintln(out, color.GreenString("  ✓ WAL checkpointed"))
		}
		if result.ShmRemoved {
			fmt.Fprintln(out, color.GreenString("  ✓ SHM file removed"))
		}
		if result.IntegrityOK {
			fmt.Fprintln(out, color.GreenString("  ✓ Integrity check passed"))
		} else {
			fmt.Fprintln(out, color.RedString("  ✗ Integrity check failed"))
		}
		if result.Vacuumed {
			fmt.Fprintln(out, color.GreenString("  ✓ Database vacuumed"))
		}

		if err != nil {
			if !syncRepairForce {
				fmt.Fprintln(out, color.YellowString("\nRun with --force to attempt recovery."))
			}
			return fmt.Errorf("repair failed: %w", err)
		}
		fmt.Fprintln(out, color.GreenString("\n✓ Repair complete"))
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local data and restore from cloud",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "This will DELETE all local nutrition data and restore from cloud.")
		fmt.Fprint(out, "Continue? [y/N]: ")
		if answer := readAnswer(cmd.InOrStdin()); answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Canceled.")
			return nil
		}

		if err := kv.Reset(kvName); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		fmt.Fprintln(out, color.GreenString("✓ Local data reset and restored from cloud"))
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all cloud and local data",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "This will PERMANENTLY DELETE all cloud backups and local nutrition data.")
		fmt.Fprint(out, "Type 'wipe' to confirm: ")
		if readAnswer(cmd.InOrStdin()) != "wipe" {
			fmt.Fprintln(out, "Canceled.")
			return nil
		}

		result, err := kv.Wipe(kvName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}
		fmt.Fprintln(out, color.GreenString("✓ Data wiped successfully"))
		fmt.Fprintf(out, "  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Fprintf(out, "  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

func runCharm(arg string) error {
	c := exec.Command("charm", arg)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// readAnswer reads one line and lowercases it; read errors count as no answer.
func readAnswer(in io.Reader) string {
	line, _ := bufio.NewReader(in).ReadString('\n')
	return strings.ToLower(strings.TrimSpace(line))
}

func init() {
	syncRepairCmd.Flags().BoolVar(&syncRepairForce, "force", false, "attempt recovery even if integrity checks fail")

	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncUnlinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncRepairCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
