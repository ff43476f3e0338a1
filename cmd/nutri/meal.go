// ABOUTME: CLI commands for logging, listing and deleting meals.
// ABOUTME: Meals come from a saved food or carry an inline per-100g profile.
package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/models"
	"github.com/spf13/cobra"
)

var (
	mealSlot  string
	mealAt    string
	mealLimit int
)

var mealCmd = &cobra.Command{
	Use:     "meal",
	Aliases: []string{"meals", "m"},
	Short:   "Log and manage meals",
	Long: `Log and manage meals.

A meal is a portion in grams of a saved food, or of an ad-hoc food
described with per-100g flags.

SLOTS:

  breakfast, lunch, dinner, snack. Without --slot the slot follows the
  time of the meal: before 11:00 breakfast, before 15:00 lunch, before
  21:00 dinner, otherwise snack.

EXAMPLES:

  nutri meal add oats 80                             # saved food
  nutri meal add apple 150 --kcal 52 --carbs 14      # ad-hoc food
  nutri meal add rice 200 --slot dinner --at "2026-06-01 19:30"
  nutri meal list -n 50
  nutri meal delete abc12345`,
}

var mealAddCmd = &cobra.Command{
	Use:   "add <food> <grams>",
	Short: "Log a meal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := resolveUser()
		if err != nil {
			return err
		}

		grams, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid grams: %s", args[1])
		}

		at := time.Now()
		if mealAt != "" {
			at, err = parseTime(mealAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", mealAt)
			}
		}

		slot := slotForTime(at)
		if mealSlot != "" {
			slot, err = models.ParseMealSlot(mealSlot)
			if err != nil {
				return err
			}
		}

		m := models.NewMealRecord(u.ID, args[0], slot, grams).WithConsumedAt(at)
		if profileFlagsChanged(cmd) {
			m.WithProfile(profileFromFlags())
		} else {
			f, err := repo.GetFood(args[0])
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					return fmt.Errorf("unknown food %q: save it with 'nutri food add' or pass --kcal/--protein/--fat/--carbs", args[0])
				}
				return fmt.Errorf("failed to look up food: %w", err)
			}
			m.WithFood(f)
		}

		if err := repo.CreateMeal(m); err != nil {
			return fmt.Errorf("failed to log meal: %w", err)
		}

		v, _ := m.Nutrients()
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Logged %s", m.Slot))
		fmt.Fprintf(out, "  %s %.0f g %s  %.0f kcal\n",
			faint.Sprint(shortID(m.ID)), m.Grams, m.FoodName, v.Calories)
		return nil
	},
}

var mealListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List recent meals",
	Long: `List recent meals for the current user, most recent first.

OUTPUT FORMAT:

  Each line shows: ID  TIMESTAMP  SLOT  GRAMS  FOOD  KCAL

  The ID is an 8-character prefix you can use with 'nutri meal delete'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := resolveUser()
		if err != nil {
			return err
		}

		meals, err := repo.ListMeals(&u.ID, mealLimit)
		if err != nil {
			return fmt.Errorf("failed to list meals: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(meals) == 0 {
			fmt.Fprintln(out, "No meals found.")
			return nil
		}
		for _, m := range meals {
			kcal := faint.Sprint("    -")
			if v, ok := m.Nutrients(); ok {
				kcal = fmt.Sprintf("%5.0f", v.Calories)
			}
			fmt.Fprintf(out, "%s %s %s %6.0f g  %s %s kcal\n",
				faint.Sprint(shortID(m.ID)),
				faint.Sprint(m.ConsumedAt.Local().Format("2006-01-02 15:04")),
				padRight(string(m.Slot), 9),
				m.Grams,
				padRight(truncate(m.FoodName, 24), 24),
				kcal)
		}
		return nil
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a meal",
	Long: `Delete a meal by its ID or ID prefix.

If the prefix matches multiple meals, an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := repo.GetMeal(args[0])
		if err != nil {
			return fmt.Errorf("meal not found: %s", args[0])
		}
		if err := repo.DeleteMeal(m.ID.String()); err != nil {
			return fmt.Errorf("failed to delete meal: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.YellowString("✗ Deleted %s", m.Slot))
		fmt.Fprintf(out, "  %s %.0f g %s\n", faint.Sprint(shortID(m.ID)), m.Grams, m.FoodName)
		return nil
	},
}

// slotForTime picks a meal slot from the local hour of t.
func slotForTime(t time.Time) models.MealSlot {
	switch h := t.Local().Hour(); {
	case h < 11:
		return models.SlotBreakfast
	case h < 15:
		return models.SlotLunch
	case h < 21:
		return models.SlotDinner
	default:
		return models.SlotSnack
	}
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func init() {
	mealAddCmd.Flags().StringVarP(&mealSlot, "slot", "s", "", "breakfast, lunch, dinner or snack")
	mealAddCmd.Flags().StringVar(&mealAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	addProfileFlags(mealAddCmd)
	mealListCmd.Flags().IntVarP(&mealLimit, "limit", "n", 20, "max number of results")

	mealCmd.AddCommand(mealAddCmd)
	mealCmd.AddCommand(mealListCmd)
	mealCmd.AddCommand(mealDeleteCmd)
	rootCmd.AddCommand(mealCmd)
}
