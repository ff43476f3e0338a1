// ABOUTME: Computed analytics records: per-day analysis and per-period trends.
// ABOUTME: Both are built fresh on every request and never mutated afterwards.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Overall status labels for a day.
const (
	StatusExcellent        = "Excellent"
	StatusGood             = "Good"
	StatusFair             = "Fair"
	StatusNeedsImprovement = "Needs Improvement"
	StatusPoor             = "Poor"
	StatusNoGoals          = "No goals set"
)

// Trend labels for a single nutrient series.
const (
	TrendInsufficientData = "Insufficient data"
	TrendStable           = "Stable"
	TrendImproving        = "Improving"
	TrendDeclining        = "Declining"
)

// Overall trend labels across nutrients.
const (
	OverallStronglyImproving = "Strongly Improving"
	OverallImproving         = "Improving"
	OverallSlightlyImproving = "Slightly Improving"
	OverallDeclining         = "Declining"
	OverallNoClearTrend      = "No clear trend"
	OverallNoData            = "No data"
)

// DailyNutritionalAnalysis compares one day's intake with the user's goals.
type DailyNutritionalAnalysis struct {
	UserID        uuid.UUID      `json:"user_id" yaml:"user_id"`
	Date          time.Time      `json:"date" yaml:"date"`
	Totals        NutrientValues `json:"totals" yaml:"totals"`
	EntryCount    int            `json:"entry_count" yaml:"entry_count"`
	Goals         Goals          `json:"goals" yaml:"goals"`
	Progress      NutrientValues `json:"progress_percent" yaml:"progress_percent"`
	GoalMet       NutrientFlags  `json:"goal_met" yaml:"goal_met"`
	OverLimit     NutrientFlags  `json:"over_limit" yaml:"over_limit"`
	OverallStatus string         `json:"overall_status" yaml:"overall_status"`
}

// GoalsMet returns how many configured goals were met on the day.
func (a *DailyNutritionalAnalysis) GoalsMet() int {
	return a.GoalMet.Count()
}

// NutritionalTrends summarises a period of daily analyses.
type NutritionalTrends struct {
	UserID              uuid.UUID      `json:"user_id" yaml:"user_id"`
	StartDate           time.Time      `json:"start_date" yaml:"start_date"`
	EndDate             time.Time      `json:"end_date" yaml:"end_date"`
	Days                int            `json:"days" yaml:"days"`
	Averages            NutrientValues `json:"averages" yaml:"averages"`
	Trends              NutrientLabels `json:"trends" yaml:"trends"`
	Consistency         NutrientValues `json:"consistency" yaml:"consistency"`
	AdherenceRate       float64        `json:"adherence_rate" yaml:"adherence_rate"`
	DaysWithAnyGoalMet  int            `json:"days_with_any_goal_met" yaml:"days_with_any_goal_met"`
	NutrientAdherence   NutrientValues `json:"nutrient_adherence" yaml:"nutrient_adherence"`
	AverageMealsPerDay  float64        `json:"average_meals_per_day" yaml:"average_meals_per_day"`
	MostCommonMealSlot  string         `json:"most_common_meal_slot" yaml:"most_common_meal_slot"`
	LeastCommonMealSlot string         `json:"least_common_meal_slot" yaml:"least_common_meal_slot"`
	OverallTrend        string         `json:"overall_trend" yaml:"overall_trend"`
	Insights            []string       `json:"insights" yaml:"insights"`
	IsConsistent        bool           `json:"is_consistent" yaml:"is_consistent"`
	IsImproving         bool           `json:"is_improving" yaml:"is_improving"`
}
