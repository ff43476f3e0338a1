// ABOUTME: Goal adherence over a period of daily analyses.
// ABOUTME: Flexible rate credits partial days; strict rate needs every goal met.
package analytics

import "github.com/harperreed/nutri/internal/models"

// Adherence is the flexible, partial-credit view of goal attainment.
type Adherence struct {
	Days int `json:"days" yaml:"days"`
	// Rate is the percentage of (day, configured goal) pairs that were met.
	Rate               float64                   `json:"rate" yaml:"rate"`
	DaysWithAnyGoalMet int                       `json:"days_with_any_goal_met" yaml:"days_with_any_goal_met"`
	DaysMet            [models.NutrientCount]int `json:"-" yaml:"-"`
	Nutrient           models.NutrientValues     `json:"nutrient" yaml:"nutrient"`
	Configured         models.NutrientFlags      `json:"configured" yaml:"configured"`
}

// CalculateAdherence counts, per configured nutrient, the days its goal was
// met and divides the sum by days × configured goals.
func CalculateAdherence(analyses []*models.DailyNutritionalAnalysis, goals models.Goals) Adherence {
	out := Adherence{Days: len(analyses)}
	configured := 0
	for _, n := range models.AllNutrients {
		if _, ok := goals.Get(n); ok {
			out.Configured.Set(n, true)
			configured++
		}
	}

	for _, a := range analyses {
		anyMet := false
		for i, n := range models.AllNutrients {
			if out.Configured.Get(n) && a.GoalMet.Get(n) {
				out.DaysMet[i]++
				anyMet = true
			}
		}
		if anyMet {
			out.DaysWithAnyGoalMet++
		}
	}

	if out.Days == 0 || configured == 0 {
		return out
	}

	total := 0
	for i, n := range models.AllNutrients {
		if !out.Configured.Get(n) {
			continue
		}
		total += out.DaysMet[i]
		out.Nutrient.Set(n, models.Round1(float64(out.DaysMet[i])/float64(out.Days)*100))
	}
	out.Rate = models.Round1(float64(total) / float64(out.Days*configured) * 100)
	return out
}

// StrictAdherence counts days on which every configured goal was met.
type StrictAdherence struct {
	Days            int     `json:"days" yaml:"days"`
	DaysAllGoalsMet int     `json:"days_all_goals_met" yaml:"days_all_goals_met"`
	Rate            float64 `json:"rate" yaml:"rate"`
}

// CalculateStrictAdherence is the all-or-nothing variant. It is only used
// for the consistency summary.
func CalculateStrictAdherence(analyses []*models.DailyNutritionalAnalysis, goals models.Goals) StrictAdherence {
	out := StrictAdherence{Days: len(analyses)}
	configured := goals.Configured()
	if configured == 0 || out.Days == 0 {
		return out
	}
	for _, a := range analyses {
		allMet := true
		for _, n := range models.AllNutrients {
			if _, ok := goals.Get(n); ok && !a.GoalMet.Get(n) {
				allMet = false
				break
			}
		}
		if allMet {
			out.DaysAllGoalsMet++
		}
	}
	out.Rate = models.Round1(float64(out.DaysAllGoalsMet) / float64(out.Days) * 100)
	return out
}
