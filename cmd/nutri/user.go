// ABOUTME: CLI commands for managing users and their nutrition goals.
// ABOUTME: Supports add, list, show, and goals subcommands.
package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/models"
	"github.com/spf13/cobra"
)

var (
	goalCalories float64
	goalProtein  float64
	goalFat      float64
	goalCarbs    float64
	goalFitness  string
)

// goalFlags maps flag names to the nutrient they set.
var goalFlags = []struct {
	name     string
	nutrient models.Nutrient
	value    *float64
}{
	{"calories", models.Calories, &goalCalories},
	{"protein", models.Protein, &goalProtein},
	{"fat", models.Fat, &goalFat},
	{"carbs", models.Carbohydrate, &goalCarbs},
}

var userCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"users"},
	Short:   "Manage users and goals",
	Long: `Manage users and their daily nutrition goals.

Goals are optional and independent: set only the ones you care about.
Setting a goal to 0 clears it.

COMMANDS:

  add      Create a user
  list     List users
  show     Show a user's goals
  goals    Change a user's goals

EXAMPLES:

  nutri user add ada --calories 2000 --protein 120 --fitness lose
  nutri user goals ada --fat 70
  nutri user goals ada --protein 0     # clear the protein goal`,
}

var userAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u := models.NewUser(args[0])
		if err := applyGoalFlags(cmd, u); err != nil {
			return err
		}
		if err := repo.CreateUser(u); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Added user %s", u.Name))
		fmt.Fprintf(out, "  %s %s\n", faint.Sprint(shortID(u.ID)), goalSummary(u))
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := repo.ListUsers()
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(users) == 0 {
			fmt.Fprintln(out, "No users found.")
			return nil
		}
		for _, u := range users {
			fmt.Fprintf(out, "%s %s %s\n",
				faint.Sprint(shortID(u.ID)),
				padRight(u.Name, 16),
				goalSummary(u))
		}
		return nil
	},
}

var userShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a user's goals",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := userFromArgs(args)
		if err != nil {
			return err
		}
		printUser(cmd.OutOrStdout(), u)
		return nil
	},
}

var userGoalsCmd = &cobra.Command{
	Use:   "goals [name]",
	Short: "Change a user's goals",
	Long: `Change a user's goals. Only the flags you pass are changed.

EXAMPLES:

  nutri user goals --calories 1800
  nutri user goals ada --carbs 200 --fitness maintain`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := userFromArgs(args)
		if err != nil {
			return err
		}
		if err := applyGoalFlags(cmd, u); err != nil {
			return err
		}
		u.Touch(time.Now())
		if err := repo.UpdateUser(u); err != nil {
			return fmt.Errorf("failed to update goals: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Updated goals for %s", u.Name))
		fmt.Fprintf(out, "  %s %s\n", faint.Sprint(shortID(u.ID)), goalSummary(u))
		return nil
	},
}

// userFromArgs resolves an optional positional user reference.
func userFromArgs(args []string) (*models.User, error) {
	if len(args) == 1 {
		u, err := repo.GetUser(args[0])
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", args[0], err)
		}
		return u, nil
	}
	return resolveUser()
}

// applyGoalFlags copies only explicitly passed goal flags onto u.
func applyGoalFlags(cmd *cobra.Command, u *models.User) error {
	for _, g := range goalFlags {
		if !cmd.Flags().Changed(g.name) {
			continue
		}
		if *g.value < 0 {
			return fmt.Errorf("invalid %s goal: %v (must be >= 0)", g.name, *g.value)
		}
		u.Goals.Set(g.nutrient, *g.value)
	}
	if cmd.Flags().Changed("fitness") {
		fg, err := models.ParseFitnessGoal(goalFitness)
		if err != nil {
			return err
		}
		u.FitnessGoal = fg
	}
	return nil
}

func goalSummary(u *models.User) string {
	if u.Goals.Configured() == 0 {
		return faint.Sprint("no goals")
	}
	s := ""
	for _, n := range models.AllNutrients {
		if v, ok := u.Goals.Get(n); ok {
			if s != "" {
				s += ", "
			}
			s += fmt.Sprintf("%s %.0f %s", n, v, n.Unit())
		}
	}
	if u.FitnessGoal != models.FitnessNone {
		s += faint.Sprintf(" (%s)", u.FitnessGoal)
	}
	return s
}

func printUser(out io.Writer, u *models.User) {
	fmt.Fprintf(out, "%s %s\n", color.New(color.Bold).Sprint(u.Name), faint.Sprint(u.ID.String()))
	fmt.Fprintf(out, "  created  %s\n", u.CreatedAt.Local().Format("2006-01-02"))
	fitness := string(u.FitnessGoal)
	if fitness == "" {
		fitness = "none"
	}
	fmt.Fprintf(out, "  fitness  %s\n", fitness)
	for _, n := range models.AllNutrients {
		if v, ok := u.Goals.Get(n); ok {
			fmt.Fprintf(out, "  %s %.0f %s\n", padRight(n.String(), 13), v, n.Unit())
		} else {
			fmt.Fprintf(out, "  %s %s\n", padRight(n.String(), 13), faint.Sprint("not set"))
		}
	}
}

func addGoalFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&goalCalories, "calories", 0, "daily calorie goal (kcal)")
	cmd.Flags().Float64Var(&goalProtein, "protein", 0, "daily protein goal (g)")
	cmd.Flags().Float64Var(&goalFat, "fat", 0, "daily fat goal (g)")
	cmd.Flags().Float64Var(&goalCarbs, "carbs", 0, "daily carbohydrate goal (g)")
	cmd.Flags().StringVar(&goalFitness, "fitness", "", "fitness goal: lose, gain, maintain or none")
}

func init() {
	addGoalFlags(userAddCmd)
	addGoalFlags(userGoalsCmd)

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userShowCmd)
	userCmd.AddCommand(userGoalsCmd)
	rootCmd.AddCommand(userCmd)
}
