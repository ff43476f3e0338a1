// ABOUTME: CLI commands for nutrition analytics reports.
// ABOUTME: Daily, weekly, monthly analyses plus trends, advice and adherence views.
package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
	"github.com/spf13/cobra"
)

var (
	reportDays  int
	reportStart string
)

var dayCmd = &cobra.Command{
	Use:   "day [YYYY-MM-DD]",
	Short: "Analyse one day against goals",
	Long: `Compare one day's intake with the user's goals.

A goal is met at 80% of target. Calories over 110% of target count as
missed and are flagged over limit.

EXAMPLES:

  nutri day                 # today
  nutri day 2026-06-01
  nutri day --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := resolveUser()
		if err != nil {
			return err
		}
		date := today()
		if len(args) == 1 {
			if date, err = parseDay(args[0]); err != nil {
				return err
			}
		}

		a, err := newEngine().GenerateDailyAnalysis(cmd.Context(), u.ID, date)
		if err != nil {
			return fmt.Errorf("daily analysis failed: %w", err)
		}
		return render(cmd.OutOrStdout(), a, func(w io.Writer) { printDay(w, a) })
	},
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Daily analyses for a week",
	Long: `Show seven daily analyses, ending today unless --start is given.
Days before the account was created are left out.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPeriod(cmd, 7, newEngine().GenerateWeeklyAnalysis)
	},
}

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Daily analyses for thirty days",
	Long: `Show thirty daily analyses, ending today unless --start is given.
Days before the account was created are left out.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPeriod(cmd, 30, newEngine().GenerateMonthlyAnalysis)
	},
}

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Trends over the trailing days",
	Long: `Averages, trend direction, consistency, goal adherence, meal patterns
and insights over the trailing days (default from config, 7 if unset).

EXAMPLES:

  nutri trends
  nutri trends --days 30 --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := resolveUser()
		if err != nil {
			return err
		}
		t, err := newEngine().GenerateTrends(cmd.Context(), u.ID, trendDays(reportDays))
		if err != nil {
			return fmt.Errorf("trends failed: %w", err)
		}
		return render(cmd.OutOrStdout(), t, func(w io.Writer) { printTrends(w, t) })
	},
}

var recommendCmd = &cobra.Command{
	Use:     "recommend",
	Aliases: []string{"recommendations", "advice"},
	Short:   "Personalized recommendations",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := resolveUser()
		if err != nil {
			return err
		}
		recs, err := newEngine().GetPersonalizedRecommendations(cmd.Context(), u.ID, trendDays(reportDays))
		if err != nil {
			return fmt.Errorf("recommendations failed: %w", err)
		}
		return render(cmd.OutOrStdout(), recs, func(w io.Writer) {
			printList(w, "Recommendations", recs, "No recommendations right now.")
		})
	},
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Insights from the trailing days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := resolveUser()
		if err != nil {
			return err
		}
		insights, err := newEngine().GetTrendInsights(cmd.Context(), u.ID, trendDays(reportDays))
		if err != nil {
			return fmt.Errorf("insights failed: %w", err)
		}
		return render(cmd.OutOrStdout(), insights, func(w io.Writer) {
			printList(w, "Insights", insights, "No insights yet.")
		})
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Averages, trend labels and consistency",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := resolveUser()
		if err != nil {
			return err
		}
		m, err := newEngine().GetTrendMetrics(cmd.Context(), u.ID, trendDays(reportDays))
		if err != nil {
			return fmt.Errorf("trend metrics failed: %w", err)
		}
		return render(cmd.OutOrStdout(), m, func(w io.Writer) { printMetrics(w, m) })
	},
}

var consistencyCmd = &cobra.Command{
	Use:   "consistency",
	Short: "Consistency scores with strict adherence",
	Long: `Show how steady daily intake is (100 is perfectly steady, 10 is the floor)
and on how many days every configured goal was met.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := resolveUser()
		if err != nil {
			return err
		}
		c, err := newEngine().GetConsistencyAnalysis(cmd.Context(), u.ID, trendDays(reportDays))
		if err != nil {
			return fmt.Errorf("consistency analysis failed: %w", err)
		}
		return render(cmd.OutOrStdout(), c, func(w io.Writer) { printConsistency(w, c) })
	},
}

var adherenceCmd = &cobra.Command{
	Use:   "adherence",
	Short: "Goal adherence with the daily series",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := resolveUser()
		if err != nil {
			return err
		}
		g, err := newEngine().GetGoalAdherenceTrend(cmd.Context(), u.ID, trendDays(reportDays))
		if err != nil {
			return fmt.Errorf("goal adherence failed: %w", err)
		}
		return render(cmd.OutOrStdout(), g, func(w io.Writer) { printAdherence(w, g) })
	},
}

type periodGenerator func(ctx context.Context, userID uuid.UUID, start time.Time) ([]*models.DailyNutritionalAnalysis, error)

func runPeriod(cmd *cobra.Command, span int, gen periodGenerator) error {
	u, err := resolveUser()
	if err != nil {
		return err
	}
	start := today().AddDate(0, 0, -(span - 1))
	if reportStart != "" {
		if start, err = parseDay(reportStart); err != nil {
			return err
		}
	}

	days, err := gen(cmd.Context(), u.ID, start)
	if err != nil {
		return fmt.Errorf("period analysis failed: %w", err)
	}
	if days == nil {
		days = []*models.DailyNutritionalAnalysis{}
	}
	return render(cmd.OutOrStdout(), days, func(w io.Writer) { printDays(w, days) })
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", s)
	}
	return t, nil
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&reportDays, "days", "d", 0, "trailing window in days (default from config)")
	addFormatFlag(cmd)
}

func init() {
	addFormatFlag(dayCmd)
	for _, c := range []*cobra.Command{weekCmd, monthCmd} {
		c.Flags().StringVar(&reportStart, "start", "", "first day (YYYY-MM-DD)")
		addFormatFlag(c)
	}
	for _, c := range []*cobra.Command{trendsCmd, recommendCmd, insightsCmd, metricsCmd, consistencyCmd, adherenceCmd} {
		addWindowFlags(c)
	}

	rootCmd.AddCommand(dayCmd, weekCmd, monthCmd, trendsCmd, recommendCmd,
		insightsCmd, metricsCmd, consistencyCmd, adherenceCmd)
}
