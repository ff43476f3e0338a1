// ABOUTME: Rule-based recommendation text from trends, consistency and goals.
// ABOUTME: A failing rule family contributes nothing; the call never fails.
package analytics

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/harperreed/nutri/internal/models"
)

const (
	consistencyLow      = 50.0
	consistencyModerate = 70.0
	adherenceLow        = 50.0
	adherenceModerate   = 70.0
	maintenanceBand     = 100.0
)

// proteinEveryMeal is shared by the goal and fitness families.
const proteinEveryMeal = "Add a source of protein to every meal to reach your protein target."

// RecommendationInput is everything the rule families read.
type RecommendationInput struct {
	Goals     *models.UserGoals
	Trends    *models.NutritionalTrends
	Adherence Adherence
}

// RuleFamily produces zero or more sentences from the input.
type RuleFamily struct {
	Name  string
	Rules func(in RecommendationInput) ([]string, error)
}

// DefaultFamilies are evaluated in this order.
var DefaultFamilies = []RuleFamily{
	{Name: "trend", Rules: trendRecommendations},
	{Name: "consistency", Rules: consistencyRecommendations},
	{Name: "goal", Rules: goalRecommendations},
	{Name: "fitness", Rules: fitnessRecommendations},
}

// GenerateRecommendations evaluates every family and removes exact duplicates,
// keeping the first occurrence.
func GenerateRecommendations(logger *log.Logger, in RecommendationInput, families []RuleFamily) []string {
	var all []string
	for _, f := range families {
		all = append(all, runFamily(logger, f, in)...)
	}
	return dedupe(all)
}

// runFamily isolates one family. Errors and panics are logged and yield nil.
func runFamily(logger *log.Logger, f RuleFamily, in RecommendationInput) (out []string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("recommendation rules panicked", "family", f.Name, "panic", r)
			out = nil
		}
	}()

	recs, err := f.Rules(in)
	if err != nil {
		logger.Warn("recommendation rules failed", "family", f.Name, "err", err)
		return nil
	}
	return recs
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

var errNoTrends = errors.New("no trends computed")

func trendRecommendations(in RecommendationInput) ([]string, error) {
	if in.Trends == nil {
		return nil, errNoTrends
	}
	var recs []string
	for _, n := range models.AllNutrients {
		if in.Trends.Trends.Get(n) != models.TrendDeclining {
			continue
		}
		switch n {
		case models.Calories:
			recs = append(recs, "Your calorie intake has been declining. Make sure you are eating enough to fuel your day.")
		case models.Protein:
			recs = append(recs, "Your protein intake is trending down. Include lean meat, fish, eggs, legumes or dairy in your meals.")
		case models.Fat:
			recs = append(recs, "Your fat intake is declining. Include healthy fats such as nuts, seeds, avocado or olive oil.")
		case models.Carbohydrate:
			recs = append(recs, "Your carbohydrate intake is declining. Whole grains, fruit and vegetables are good sources of energy.")
		}
	}
	return recs, nil
}

func consistencyRecommendations(in RecommendationInput) ([]string, error) {
	if in.Trends == nil {
		return nil, errNoTrends
	}
	if in.Trends.Days < 2 {
		return nil, nil
	}
	var recs []string
	for _, n := range models.AllNutrients {
		score := in.Trends.Consistency.Get(n)
		switch {
		case score < consistencyLow:
			recs = append(recs, fmt.Sprintf("Your %s intake varies a lot from day to day. Planning meals ahead can help keep it steady.", n))
		case score < consistencyModerate:
			recs = append(recs, fmt.Sprintf("Your %s intake is somewhat inconsistent. Try to keep portions similar across days.", n))
		}
	}
	return recs, nil
}

func goalRecommendations(in RecommendationInput) ([]string, error) {
	if in.Adherence.Days == 0 {
		return nil, nil
	}
	var recs []string
	for _, n := range models.AllNutrients {
		if !in.Adherence.Configured.Get(n) {
			continue
		}
		rate := in.Adherence.Nutrient.Get(n)
		switch {
		case rate < adherenceLow:
			recs = append(recs, lowAdherenceText(n))
		case rate < adherenceModerate:
			recs = append(recs, moderateAdherenceText(n))
		}
	}
	return recs, nil
}

func lowAdherenceText(n models.Nutrient) string {
	switch n {
	case models.Calories:
		return "You rarely hit your calorie target. Review portion sizes and log every meal to stay on track."
	case models.Protein:
		return proteinEveryMeal
	case models.Fat:
		return "Your fat intake is often off target. Choose nuts, seeds and oily fish to balance it."
	default:
		return "Your carbohydrate intake often misses your goal. Base meals on whole grains, fruit and vegetables."
	}
}

func moderateAdherenceText(n models.Nutrient) string {
	switch n {
	case models.Calories:
		return "You meet your calorie target on some days. Small, regular adjustments can make it a habit."
	case models.Protein:
		return "Your protein target is met only part of the time. A protein-rich snack can close the gap."
	case models.Fat:
		return "Your fat intake meets your goal on some days. Keep an eye on cooking oils and spreads."
	default:
		return "Your carbohydrate intake is on target only part of the time. Plan carbohydrate portions around your activity."
	}
}

func fitnessRecommendations(in RecommendationInput) ([]string, error) {
	if in.Goals == nil {
		return nil, errors.New("no goals loaded")
	}
	fg := in.Goals.FitnessGoal
	if fg == models.FitnessNone {
		return nil, nil
	}
	if in.Trends == nil {
		return nil, errNoTrends
	}
	if in.Trends.Days == 0 {
		return nil, nil
	}

	calGoal, hasCal := in.Goals.Goals.Get(models.Calories)
	if !hasCal {
		return []string{"Set a daily calorie goal so recommendations can support your fitness goal."}, nil
	}
	avgCal := in.Trends.Averages.Calories
	protGoal, hasProt := in.Goals.Goals.Get(models.Protein)
	lowProtein := hasProt && in.Trends.Averages.Protein < protGoal

	var recs []string
	switch fg {
	case models.FitnessLose:
		if avgCal > calGoal {
			recs = append(recs, fmt.Sprintf("To support weight loss, reduce your daily intake by about %.0f kcal to reach your calorie goal.", avgCal-calGoal))
		} else {
			recs = append(recs, "Your calorie intake supports your weight-loss goal. Keep it up.")
		}
		if lowProtein {
			recs = append(recs, proteinEveryMeal)
		}
	case models.FitnessGain:
		if avgCal < calGoal {
			recs = append(recs, fmt.Sprintf("To support weight gain, add about %.0f kcal per day, for example with an extra snack.", calGoal-avgCal))
		} else {
			recs = append(recs, "Your calorie intake supports your weight-gain goal.")
		}
		if lowProtein {
			recs = append(recs, proteinEveryMeal)
		}
	case models.FitnessMaintain:
		diff := avgCal - calGoal
		if math.Abs(diff) > maintenanceBand {
			dir := "above"
			if diff < 0 {
				dir = "below"
			}
			recs = append(recs, fmt.Sprintf("Your average intake is %.0f kcal %s your maintenance target. Adjust portions to stay within %.0f kcal.", math.Abs(diff), dir, maintenanceBand))
		} else {
			recs = append(recs, fmt.Sprintf("Great job staying within %.0f kcal of your maintenance target.", maintenanceBand))
		}
	default:
		return nil, fmt.Errorf("unknown fitness goal %q", fg)
	}
	return recs, nil
}
