// ABOUTME: Composes trend, consistency, adherence and meal patterns into one record.
// ABOUTME: Per-nutrient statistics are computed concurrently and joined.
package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/nutri/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	consistentScore   = 70.0
	lowMealsPerDay    = 3.0
	improvingStrongly = 75.0
	improvingMostly   = 50.0
	improvingSlightly = 25.0
)

// nutrientStats holds the independent per-nutrient results.
type nutrientStats struct {
	trends      [models.NutrientCount]string
	consistency [models.NutrientCount]float64
}

// computeNutrientStats runs every trend and consistency computation on its
// own goroutine. Each writes only its own slot.
func computeNutrientStats(ctx context.Context, series [models.NutrientCount][]float64) (nutrientStats, error) {
	var st nutrientStats
	g, ctx := errgroup.WithContext(ctx)
	for i := range models.AllNutrients {
		values := series[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			st.trends[i] = CalculateTrend(values)
			return nil
		})
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			st.consistency[i] = CalculateConsistency(values)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nutrientStats{}, fmt.Errorf("compute nutrient statistics: %w", err)
	}
	return st, nil
}

// DeriveOverallTrend bands the share of trended nutrients that are improving.
// Nutrients with insufficient data are left out of the denominator.
func DeriveOverallTrend(trends models.NutrientLabels) string {
	trended, improving := 0, 0
	for _, n := range models.AllNutrients {
		label := trends.Get(n)
		if label == "" || label == models.TrendInsufficientData {
			continue
		}
		trended++
		if label == models.TrendImproving {
			improving++
		}
	}
	if trended == 0 {
		return models.OverallNoData
	}

	pct := float64(improving) / float64(trended) * 100
	switch {
	case pct >= improvingStrongly:
		return models.OverallStronglyImproving
	case pct >= improvingMostly:
		return models.OverallImproving
	case pct >= improvingSlightly:
		return models.OverallSlightlyImproving
	case pct >= 0:
		return models.OverallDeclining
	default:
		return models.OverallNoClearTrend
	}
}

// buildTrends turns a period into a trends record.
func buildTrends(ctx context.Context, p *period) (*models.NutritionalTrends, Adherence, error) {
	var series [models.NutrientCount][]float64
	for i, n := range models.AllNutrients {
		series[i] = p.series(n)
	}

	st, err := computeNutrientStats(ctx, series)
	if err != nil {
		return nil, Adherence{}, err
	}

	adherence := CalculateAdherence(p.analyses, p.goals.Goals)
	patterns := AnalyzeMealPatterns(p.meals, p.loc)

	t := &models.NutritionalTrends{
		UserID:              p.userID,
		StartDate:           p.window.Start,
		EndDate:             p.window.End(),
		Days:                p.window.Days,
		AdherenceRate:       adherence.Rate,
		DaysWithAnyGoalMet:  adherence.DaysWithAnyGoalMet,
		NutrientAdherence:   adherence.Nutrient,
		AverageMealsPerDay:  patterns.AverageMealsPerDay,
		MostCommonMealSlot:  patterns.MostCommonSlot,
		LeastCommonMealSlot: patterns.LeastCommonSlot,
	}

	t.IsConsistent = true
	for i, n := range models.AllNutrients {
		t.Averages.Set(n, models.Round1(mean(series[i])))
		t.Trends.Set(n, st.trends[i])
		t.Consistency.Set(n, st.consistency[i])
		if st.consistency[i] < consistentScore {
			t.IsConsistent = false
		}
	}

	t.OverallTrend = DeriveOverallTrend(t.Trends)
	t.IsImproving = strings.Contains(t.OverallTrend, models.OverallImproving)
	t.Insights = buildInsights(t, adherence)
	return t, adherence, nil
}

// buildInsights runs the fixed battery of checks in order.
func buildInsights(t *models.NutritionalTrends, adherence Adherence) []string {
	insights := []string{}

	if adherence.Configured.Count() == 0 {
		insights = append(insights, "Set daily nutrition goals to start tracking your adherence.")
	} else {
		switch {
		case t.AdherenceRate >= 80:
			insights = append(insights, fmt.Sprintf("Excellent goal adherence: you met %.0f%% of your daily targets.", t.AdherenceRate))
		case t.AdherenceRate >= 60:
			insights = append(insights, fmt.Sprintf("Good goal adherence: you met %.0f%% of your daily targets.", t.AdherenceRate))
		case t.AdherenceRate >= 40:
			insights = append(insights, fmt.Sprintf("Moderate goal adherence: you met %.0f%% of your daily targets. There is room to improve.", t.AdherenceRate))
		default:
			insights = append(insights, fmt.Sprintf("Low goal adherence: you met only %.0f%% of your daily targets.", t.AdherenceRate))
		}
	}

	if t.Days > 0 {
		share := float64(t.DaysWithAnyGoalMet) / float64(t.Days) * 100
		switch {
		case t.DaysWithAnyGoalMet == t.Days:
			insights = append(insights, "You met at least one goal every day in this period.")
		case share >= 50:
			insights = append(insights, fmt.Sprintf("You met at least one goal on %d of %d days.", t.DaysWithAnyGoalMet, t.Days))
		case t.DaysWithAnyGoalMet > 0:
			insights = append(insights, fmt.Sprintf("You met a goal on only %d of %d days. Aim for at least one goal every day.", t.DaysWithAnyGoalMet, t.Days))
		case adherence.Configured.Count() > 0:
			insights = append(insights, "You did not meet any of your goals in this period.")
		}
	}

	// Consistency of an empty period is 100 by convention; say nothing.
	switch cal := t.Consistency.Calories; {
	case t.AverageMealsPerDay == 0:
	case cal >= 80:
		insights = append(insights, "Your calorie intake is very consistent from day to day.")
	case cal >= 60:
		insights = append(insights, "Your calorie intake is fairly consistent, with some variation between days.")
	default:
		insights = append(insights, "Your calorie intake varies a lot between days.")
	}

	if t.AverageMealsPerDay < lowMealsPerDay {
		insights = append(insights, fmt.Sprintf("You log %.1f meals per day on average. Regular meals help keep energy levels steady.", t.AverageMealsPerDay))
	}

	return insights
}
