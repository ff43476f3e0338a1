// ABOUTME: CLI commands for the saved food catalogue.
// ABOUTME: Foods carry nutrients per 100 g and can be logged by name.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/models"
	"github.com/spf13/cobra"
)

var (
	profileKcal    float64
	profileProtein float64
	profileFat     float64
	profileCarbs   float64
)

var foodCmd = &cobra.Command{
	Use:     "food",
	Aliases: []string{"foods", "f"},
	Short:   "Manage saved foods",
	Long: `Manage saved foods. Nutrient values are per 100 g.

Meals logged from a saved food follow the food: deleting the food leaves
its meals in place but without nutrient data.

EXAMPLES:

  nutri food add oats --kcal 389 --protein 17 --fat 7 --carbs 66
  nutri food list
  nutri food delete oats`,
}

var foodAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Save a food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := models.NewFood(args[0], profileFromFlags())
		if err := repo.CreateFood(f); err != nil {
			return fmt.Errorf("failed to create food: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Added food %s", f.Name))
		fmt.Fprintf(out, "  %s %s\n", faint.Sprint(shortID(f.ID)), profileSummary(f.Profile))
		return nil
	},
}

var foodListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		foods, err := repo.ListFoods()
		if err != nil {
			return fmt.Errorf("failed to list foods: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(foods) == 0 {
			fmt.Fprintln(out, "No foods found.")
			return nil
		}
		for _, f := range foods {
			fmt.Fprintf(out, "%s %s %s\n",
				faint.Sprint(shortID(f.ID)),
				padRight(truncate(f.Name, 24), 24),
				profileSummary(f.Profile))
		}
		return nil
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:     "delete <name-or-id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a saved food",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := repo.GetFood(args[0])
		if err != nil {
			return fmt.Errorf("food not found: %s", args[0])
		}
		if err := repo.DeleteFood(f.ID.String()); err != nil {
			return fmt.Errorf("failed to delete food: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.YellowString("✗ Deleted food %s", f.Name))
		fmt.Fprintf(out, "  %s\n", faint.Sprint(shortID(f.ID)))
		return nil
	},
}

func profileFromFlags() models.NutrientProfile {
	return models.NutrientProfile{
		Calories:     profileKcal,
		Protein:      profileProtein,
		Fat:          profileFat,
		Carbohydrate: profileCarbs,
	}
}

func profileFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"kcal", "protein", "fat", "carbs"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func profileSummary(p models.NutrientProfile) string {
	return fmt.Sprintf("%.0f kcal  P %.1f  F %.1f  C %.1f %s",
		p.Calories, p.Protein, p.Fat, p.Carbohydrate, faint.Sprint("/100g"))
}

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&profileKcal, "kcal", 0, "kcal per 100 g")
	cmd.Flags().Float64Var(&profileProtein, "protein", 0, "protein g per 100 g")
	cmd.Flags().Float64Var(&profileFat, "fat", 0, "fat g per 100 g")
	cmd.Flags().Float64Var(&profileCarbs, "carbs", 0, "carbohydrate g per 100 g")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	addProfileFlags(foodAddCmd)

	foodCmd.AddCommand(foodAddCmd)
	foodCmd.AddCommand(foodListCmd)
	foodCmd.AddCommand(foodDeleteCmd)
	rootCmd.AddCommand(foodCmd)
}
