// ABOUTME: Nutrient aggregation of one day's meal records.
// ABOUTME: Records without a resolvable profile count as zero.
package analytics

import (
	"time"

	"github.com/harperreed/nutri/internal/models"
)

// DayTotals is the sum of one day's meals.
type DayTotals struct {
	Totals     models.NutrientValues
	EntryCount int
	// Unresolved counts records whose nutrient profile was missing.
	Unresolved int
}

// AggregateDay sums the nutrients of meals, rounded to one decimal.
func AggregateDay(meals []*models.MealRecord) DayTotals {
	var out DayTotals
	var sum models.NutrientValues
	for _, m := range meals {
		if m == nil {
			continue
		}
		out.EntryCount++
		v, ok := m.Nutrients()
		if !ok {
			out.Unresolved++
			continue
		}
		sum = sum.Add(v)
	}
	out.Totals = sum.Round1()
	return out
}

// dayStart truncates t to local midnight in loc.
func dayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// daysBetween counts calendar days from a to b (b later gives a positive result).
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// groupByDay buckets meals by calendar day in loc.
func groupByDay(meals []*models.MealRecord, loc *time.Location) map[string][]*models.MealRecord {
	out := make(map[string][]*models.MealRecord)
	for _, m := range meals {
		if m == nil {
			continue
		}
		k := dayKey(m.ConsumedAt, loc)
		out[k] = append(out[k], m)
	}
	return out
}
