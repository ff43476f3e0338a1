// ABOUTME: Output rendering for analytics reports in text, JSON or YAML.
// ABOUTME: Text output is colored; JSON and YAML emit the records as-is.
package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harperreed/nutri/internal/analytics"
	"github.com/harperreed/nutri/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var outputFormat string

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format: text, json or yaml")
}

// render writes v in the selected format, or calls text for plain output.
func render(out io.Writer, v any, text func(io.Writer)) error {
	switch outputFormat {
	case "", "text":
		text(out)
		return nil
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format: %s (use text, json, or yaml)", outputFormat)
	}
}

func statusColor(status string) *color.Color {
	switch status {
	case models.StatusExcellent, models.StatusGood:
		return color.New(color.FgGreen)
	case models.StatusFair:
		return color.New(color.FgYellow)
	case models.StatusNeedsImprovement, models.StatusPoor:
		return color.New(color.FgRed)
	default:
		return faint
	}
}

func trendColor(label string) *color.Color {
	switch label {
	case models.TrendImproving, models.OverallStronglyImproving, models.OverallSlightlyImproving:
		return color.New(color.FgGreen)
	case models.TrendDeclining:
		return color.New(color.FgRed)
	case models.TrendStable:
		return color.New(color.FgCyan)
	default:
		return faint
	}
}

func printDay(out io.Writer, a *models.DailyNutritionalAnalysis) {
	fmt.Fprintf(out, "%s  %s  %s\n",
		color.New(color.Bold).Sprint(a.Date.Format("2006-01-02 Mon")),
		statusColor(a.OverallStatus).Sprint(a.OverallStatus),
		faint.Sprintf("(%d/%d goals, %d meals)", a.GoalsMet(), a.Goals.Configured(), a.EntryCount))

	for _, n := range models.AllNutrients {
		total := a.Totals.Get(n)
		goal, ok := a.Goals.Get(n)
		if !ok {
			fmt.Fprintf(out, "  %s %8.1f %s\n", padRight(n.String(), 13), total, n.Unit())
			continue
		}
		mark := color.RedString("✗")
		if a.GoalMet.Get(n) {
			mark = color.GreenString("✓")
		}
		if a.OverLimit.Get(n) {
			mark += color.RedString(" over")
		}
		fmt.Fprintf(out, "  %s %8.1f / %.0f %s  %5.1f%%  %s\n",
			padRight(n.String(), 13), total, goal, n.Unit(), a.Progress.Get(n), mark)
	}
}

func printDays(out io.Writer, days []*models.DailyNutritionalAnalysis) {
	if len(days) == 0 {
		fmt.Fprintln(out, "No days in range since the account was created.")
		return
	}
	for _, a := range days {
		fmt.Fprintf(out, "%s %7.0f kcal  %s  %s\n",
			a.Date.Format("2006-01-02 Mon"),
			a.Totals.Calories,
			faint.Sprintf("%d/%d goals, %d meals", a.GoalsMet(), a.Goals.Configured(), a.EntryCount),
			statusColor(a.OverallStatus).Sprint(a.OverallStatus))
	}
}

func printTrends(out io.Writer, t *models.NutritionalTrends) {
	fmt.Fprintf(out, "%s %s\n",
		color.New(color.Bold).Sprintf("Trends %s to %s", t.StartDate.Format("2006-01-02"), t.EndDate.Format("2006-01-02")),
		faint.Sprintf("(%d days)", t.Days))
	if t.Days == 0 {
		fmt.Fprintln(out, "  No days since the account was created.")
		return
	}
	fmt.Fprintf(out, "Overall: %s\n\n", trendColor(t.OverallTrend).Sprint(t.OverallTrend))

	fmt.Fprintf(out, "  %s %14s  %s %11s %10s\n", padRight("nutrient", 13), "average", padRight("trend", 18), "consistency", "adherence")
	for _, n := range models.AllNutrients {
		label := t.Trends.Get(n)
		fmt.Fprintf(out, "  %s %9.1f %-4s  %s %11.1f %9.1f%%\n",
			padRight(n.String(), 13),
			t.Averages.Get(n), n.Unit(),
			trendColor(label).Sprint(padRight(label, 18)),
			t.Consistency.Get(n),
			t.NutrientAdherence.Get(n))
	}

	fmt.Fprintf(out, "\nAdherence %.1f%%, %d of %d days with a goal met\n", t.AdherenceRate, t.DaysWithAnyGoalMet, t.Days)
	if t.AverageMealsPerDay > 0 {
		fmt.Fprintf(out, "Meals %.1f per day, most often %s, least often %s\n",
			t.AverageMealsPerDay, t.MostCommonMealSlot, t.LeastCommonMealSlot)
	}
	if len(t.Insights) > 0 {
		fmt.Fprintln(out)
		printList(out, "Insights", t.Insights, "")
	}
}

func printList(out io.Writer, title string, items []string, empty string) {
	if len(items) == 0 {
		fmt.Fprintln(out, empty)
		return
	}
	fmt.Fprintln(out, color.New(color.Bold).Sprint(title))
	for _, s := range items {
		fmt.Fprintf(out, "  • %s\n", s)
	}
}

func printMetrics(out io.Writer, m *analytics.TrendMetrics) {
	fmt.Fprintf(out, "%s %s\n", color.New(color.Bold).Sprint("Trend metrics"), faint.Sprintf("(%d days)", m.Days))
	for _, n := range models.AllNutrients {
		label := m.Trends.Get(n)
		fmt.Fprintf(out, "  %s %9.1f %-4s  %s %5.1f\n",
			padRight(n.String(), 13), m.Averages.Get(n), n.Unit(),
			trendColor(label).Sprint(padRight(label, 18)), m.Consistency.Get(n))
	}
	fmt.Fprintf(out, "Overall: %s\n", trendColor(m.OverallTrend).Sprint(m.OverallTrend))
}

func printConsistency(out io.Writer, c *analytics.ConsistencyAnalysis) {
	fmt.Fprintf(out, "%s %s\n", color.New(color.Bold).Sprint("Consistency"), faint.Sprintf("(%d days)", c.Days))
	for _, n := range models.AllNutrients {
		fmt.Fprintf(out, "  %s %5.1f\n", padRight(n.String(), 13), c.Consistency.Get(n))
	}
	if c.IsConsistent {
		fmt.Fprintln(out, color.GreenString("✓ Consistent"))
	} else {
		fmt.Fprintln(out, color.YellowString("✗ Inconsistent"))
	}
	fmt.Fprintf(out, "All goals met on %d of %d days (%.1f%%)\n", c.Strict.DaysAllGoalsMet, c.Strict.Days, c.Strict.Rate)
}

func printAdherence(out io.Writer, g *analytics.GoalAdherenceTrend) {
	fmt.Fprintf(out, "%s %.1f%% %s\n",
		color.New(color.Bold).Sprint("Goal adherence"), g.AdherenceRate,
		faint.Sprintf("(%d of %d days with a goal met)", g.DaysWithAnyGoalMet, g.Days))
	for _, n := range models.AllNutrients {
		fmt.Fprintf(out, "  %s %5.1f%%\n", padRight(n.String(), 13), g.NutrientAdherence.Get(n))
	}
	if len(g.Daily) > 0 {
		fmt.Fprintln(out)
	}
	for _, d := range g.Daily {
		fmt.Fprintf(out, "  %s  %d/%d  %s\n",
			d.Date.Format("2006-01-02 Mon"), d.GoalsMet, d.GoalsConfigured,
			statusColor(d.Status).Sprint(d.Status))
	}
}
