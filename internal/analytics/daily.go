// ABOUTME: Builds the per-day analysis from day totals and a goal snapshot.
// ABOUTME: Goal met is >=80% of target, over limit is >110%.
package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
)

const (
	goalMetRatio   = 0.8
	overLimitRatio = 1.1

	// ratioTolerance absorbs float error in goal*ratio so a one-decimal
	// total sitting exactly on a threshold lands on the inclusive side.
	ratioTolerance = 1e-9
)

// BuildDailyAnalysis compares one day's totals with goals.
// The goals value is copied into the result and never re-read.
func BuildDailyAnalysis(userID uuid.UUID, date time.Time, day DayTotals, goals models.Goals) *models.DailyNutritionalAnalysis {
	a := &models.DailyNutritionalAnalysis{
		UserID:     userID,
		Date:       date,
		Totals:     day.Totals,
		EntryCount: day.EntryCount,
		Goals:      copyGoals(goals),
	}

	for _, n := range models.AllNutrients {
		total := day.Totals.Get(n)
		goal, ok := goals.Get(n)
		if !ok {
			continue
		}
		a.Progress.Set(n, models.Round1(total/goal*100))

		over := total > goal*overLimitRatio+ratioTolerance
		met := total >= goal*goalMetRatio-ratioTolerance
		// Only calories treat overshooting as a miss.
		if n == models.Calories && over {
			met = false
		}
		a.GoalMet.Set(n, met)
		a.OverLimit.Set(n, over)
	}

	a.OverallStatus = ClassifyStatus(a.GoalMet.Count(), goals.Configured())
	return a
}

// copyGoals detaches the snapshot from the caller's pointers.
func copyGoals(g models.Goals) models.Goals {
	var out models.Goals
	for _, n := range models.AllNutrients {
		if v, ok := g.Get(n); ok {
			out.Set(n, v)
		}
	}
	return out
}
