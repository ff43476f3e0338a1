// ABOUTME: Tests for recommendation rule families and their isolation.
// ABOUTME: Duplicate sentences across families collapse to the first.
package analytics

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func steadyTrends(days int) *models.NutritionalTrends {
	return &models.NutritionalTrends{
		Days: days,
		Trends: labels(models.TrendStable, models.TrendStable,
			models.TrendStable, models.TrendStable),
		Consistency: models.NutrientValues{Calories: 100, Protein: 100, Fat: 100, Carbohydrate: 100},
	}
}

func userGoals(t *testing.T, fg models.FitnessGoal, kv map[models.Nutrient]float64) *models.UserGoals {
	return &models.UserGoals{UserID: uuid.New(), Goals: goalsOf(t, kv), FitnessGoal: fg}
}

func TestRecommendationsDeduplicateAcrossFamilies(t *testing.T) {
	goals := userGoals(t, models.FitnessLose, map[models.Nutrient]float64{
		models.Calories: 2000,
		models.Protein:  120,
	})
	tr := steadyTrends(7)
	tr.Averages = models.NutrientValues{Calories: 2100, Protein: 60}
	adh := Adherence{Days: 7}
	adh.Configured.Set(models.Calories, true)
	adh.Configured.Set(models.Protein, true)
	adh.Nutrient = models.NutrientValues{Calories: 100, Protein: 0}

	got := GenerateRecommendations(log.New(&bytes.Buffer{}),
		RecommendationInput{Goals: goals, Trends: tr, Adherence: adh}, DefaultFamilies)

	require.Len(t, got, 2)
	assert.Equal(t, proteinEveryMeal, got[0], "first occurrence from the goal family wins")
	assert.Contains(t, got[1], "reduce your daily intake by about 100 kcal")
}

func TestFailingFamiliesContributeNothing(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	families := []RuleFamily{
		{Name: "ok", Rules: func(RecommendationInput) ([]string, error) { return []string{"drink water"}, nil }},
		{Name: "broken", Rules: func(RecommendationInput) ([]string, error) { return []string{"half"}, errors.New("boom") }},
		{Name: "panicky", Rules: func(RecommendationInput) ([]string, error) { panic("oh no") }},
		{Name: "late", Rules: func(RecommendationInput) ([]string, error) { return []string{"sleep"}, nil }},
	}

	got := GenerateRecommendations(logger, RecommendationInput{}, families)

	assert.Equal(t, []string{"drink water", "sleep"}, got)
	assert.Contains(t, buf.String(), "broken")
	assert.Contains(t, buf.String(), "panicky")
}

func TestDefaultFamiliesWithoutDataDoNotFail(t *testing.T) {
	got := GenerateRecommendations(log.New(&bytes.Buffer{}), RecommendationInput{}, DefaultFamilies)
	assert.Empty(t, got)
}

func TestTrendRecommendations(t *testing.T) {
	tr := steadyTrends(7)
	tr.Trends.Protein = models.TrendDeclining
	tr.Trends.Fat = models.TrendImproving

	got, err := trendRecommendations(RecommendationInput{Trends: tr})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "protein intake is trending down")
}

func TestConsistencyRecommendations(t *testing.T) {
	tr := steadyTrends(7)
	tr.Consistency.Fat = 40
	tr.Consistency.Carbohydrate = 65

	got, err := consistencyRecommendations(RecommendationInput{Trends: tr})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Contains(t, got[0], "fat intake varies a lot")
	assert.Contains(t, got[1], "carbohydrate intake is somewhat inconsistent")

	tr.Days = 1
	got, err = consistencyRecommendations(RecommendationInput{Trends: tr})
	require.NoError(t, err)
	assert.Empty(t, got, "a single day has no consistency to judge")
}

func TestGoalRecommendationsSkipUnsetGoals(t *testing.T) {
	adh := Adherence{Days: 7}
	adh.Configured.Set(models.Fat, true)
	adh.Nutrient = models.NutrientValues{Fat: 60, Protein: 0}

	got, err := goalRecommendations(RecommendationInput{Adherence: adh})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "fat intake meets your goal on some days")
}

func TestFitnessRecommendations(t *testing.T) {
	tests := []struct {
		name    string
		fg      models.FitnessGoal
		goals   map[models.Nutrient]float64
		avgCal  float64
		want    string
		wantLen int
	}{
		{"none", models.FitnessNone, nil, 1800, "", 0},
		{"no calorie goal", models.FitnessGain, nil, 1800, "Set a daily calorie goal", 1},
		{"gain short", models.FitnessGain, map[models.Nutrient]float64{models.Calories: 2500}, 2200, "add about 300 kcal", 1},
		{"gain met", models.FitnessGain, map[models.Nutrient]float64{models.Calories: 2500}, 2600, "supports your weight-gain goal", 1},
		{"lose on track", models.FitnessLose, map[models.Nutrient]float64{models.Calories: 2000}, 1900, "supports your weight-loss goal", 1},
		{"maintain inside band", models.FitnessMaintain, map[models.Nutrient]float64{models.Calories: 2000}, 2050, "within 100 kcal", 1},
		{"maintain edge", models.FitnessMaintain, map[models.Nutrient]float64{models.Calories: 2000}, 1900, "within 100 kcal", 1},
		{"maintain above", models.FitnessMaintain, map[models.Nutrient]float64{models.Calories: 2000}, 2150, "150 kcal above", 1},
		{"maintain below", models.FitnessMaintain, map[models.Nutrient]float64{models.Calories: 2000}, 1700, "300 kcal below", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := steadyTrends(7)
			tr.Averages.Calories = tt.avgCal
			got, err := fitnessRecommendations(RecommendationInput{
				Goals:  userGoals(t, tt.fg, tt.goals),
				Trends: tr,
			})
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
			if tt.wantLen > 0 {
				assert.True(t, strings.Contains(got[0], tt.want), "got %q", got[0])
			}
		})
	}
}

func TestFitnessRecommendationsUnknownGoal(t *testing.T) {
	_, err := fitnessRecommendations(RecommendationInput{
		Goals:  userGoals(t, models.FitnessGoal("bulk"), map[models.Nutrient]float64{models.Calories: 2000}),
		Trends: steadyTrends(7),
	})
	assert.Error(t, err)
}
