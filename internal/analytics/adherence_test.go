// ABOUTME: Tests for flexible and strict goal adherence and meal patterns.
// ABOUTME: Partial days earn proportional credit in the flexible rate.
package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
	"github.com/stretchr/testify/assert"
)

func analysisWithMet(met ...models.Nutrient) *models.DailyNutritionalAnalysis {
	a := &models.DailyNutritionalAnalysis{}
	for _, n := range met {
		a.GoalMet.Set(n, true)
	}
	return a
}

func allGoals(t *testing.T) models.Goals {
	return goalsOf(t, map[models.Nutrient]float64{
		models.Calories:     2000,
		models.Protein:      120,
		models.Fat:          70,
		models.Carbohydrate: 250,
	})
}

func TestFlexibleAdherencePartialCredit(t *testing.T) {
	analyses := []*models.DailyNutritionalAnalysis{
		analysisWithMet(models.Calories, models.Protein),
		analysisWithMet(),
	}

	got := CalculateAdherence(analyses, allGoals(t))

	// 2 of 8 (day, goal) pairs.
	assert.Equal(t, 25.0, got.Rate)
	assert.Equal(t, 1, got.DaysWithAnyGoalMet)
	assert.Equal(t, 50.0, got.Nutrient.Calories)
	assert.Equal(t, 0.0, got.Nutrient.Fat)
	assert.Equal(t, 2, got.Days)
}

func TestAdherenceIgnoresUnsetGoals(t *testing.T) {
	goals := goalsOf(t, map[models.Nutrient]float64{models.Calories: 2000})
	analyses := []*models.DailyNutritionalAnalysis{
		analysisWithMet(models.Calories, models.Protein),
		analysisWithMet(models.Calories),
	}

	got := CalculateAdherence(analyses, goals)
	assert.Equal(t, 100.0, got.Rate)
	assert.Equal(t, 0.0, got.Nutrient.Protein)
	assert.False(t, got.Configured.Protein)
}

func TestAdherenceNoGoalsOrDays(t *testing.T) {
	assert.Equal(t, 0.0, CalculateAdherence(nil, allGoals(t)).Rate)
	got := CalculateAdherence([]*models.DailyNutritionalAnalysis{analysisWithMet()}, models.Goals{})
	assert.Equal(t, 0.0, got.Rate)
	assert.Equal(t, 0, got.DaysWithAnyGoalMet)
}

func TestStrictAdherence(t *testing.T) {
	analyses := []*models.DailyNutritionalAnalysis{
		analysisWithMet(models.Calories, models.Protein, models.Fat, models.Carbohydrate),
		analysisWithMet(models.Calories, models.Protein, models.Fat),
		analysisWithMet(models.Calories, models.Protein, models.Fat, models.Carbohydrate),
		analysisWithMet(),
	}

	strict := CalculateStrictAdherence(analyses, allGoals(t))
	flexible := CalculateAdherence(analyses, allGoals(t))

	assert.Equal(t, 2, strict.DaysAllGoalsMet)
	assert.Equal(t, 50.0, strict.Rate)
	// 11 of 16 pairs.
	assert.Equal(t, 68.8, flexible.Rate)
	assert.Equal(t, 3, flexible.DaysWithAnyGoalMet)
}

func TestAnalyzeMealPatterns(t *testing.T) {
	uid := uuid.New()
	at := func(d, h int) time.Time { return time.Date(2026, 7, d, h, 0, 0, 0, time.UTC) }
	meal := func(tm time.Time, s models.MealSlot) *models.MealRecord {
		return models.NewMealRecord(uid, "x", s, 100).WithConsumedAt(tm)
	}
	meals := []*models.MealRecord{
		meal(at(1, 8), models.SlotBreakfast),
		meal(at(1, 13), models.SlotLunch),
		meal(at(1, 19), models.SlotDinner),
		meal(at(2, 8), models.SlotBreakfast),
		meal(at(2, 13), models.SlotLunch),
		meal(at(2, 16), models.SlotSnack),
		meal(at(3, 8), models.SlotBreakfast),
		meal(at(3, 20), models.SlotDinner),
	}

	got := AnalyzeMealPatterns(meals, time.UTC)

	assert.Equal(t, 2.7, got.AverageMealsPerDay)
	assert.Equal(t, "Breakfast", got.MostCommonSlot)
	assert.Equal(t, "Snack", got.LeastCommonSlot)
	assert.Equal(t, 3, got.SlotCounts[models.SlotBreakfast])
}

func TestAnalyzeMealPatternsTieBreak(t *testing.T) {
	uid := uuid.New()
	tm := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	meals := []*models.MealRecord{
		models.NewMealRecord(uid, "x", models.SlotSnack, 100).WithConsumedAt(tm),
		models.NewMealRecord(uid, "x", models.SlotLunch, 100).WithConsumedAt(tm),
	}
	got := AnalyzeMealPatterns(meals, time.UTC)
	assert.Equal(t, "Lunch", got.MostCommonSlot)
	assert.Equal(t, "Lunch", got.LeastCommonSlot)
}

func TestAnalyzeMealPatternsEmpty(t *testing.T) {
	got := AnalyzeMealPatterns(nil, time.UTC)
	assert.Equal(t, 0.0, got.AverageMealsPerDay)
	assert.Equal(t, "", got.MostCommonSlot)
	assert.Equal(t, "", got.LeastCommonSlot)
}
