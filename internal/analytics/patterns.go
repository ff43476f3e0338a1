// ABOUTME: Meal frequency and meal slot patterns over raw meal records.
// ABOUTME: Empty input yields zero average and empty slot labels.
package analytics

import (
	"sort"
	"time"

	"github.com/harperreed/nutri/internal/models"
)

// MealPatterns describes how often and when a user eats.
type MealPatterns struct {
	AverageMealsPerDay float64                 `json:"average_meals_per_day" yaml:"average_meals_per_day"`
	MostCommonSlot     string                  `json:"most_common_slot" yaml:"most_common_slot"`
	LeastCommonSlot    string                  `json:"least_common_slot" yaml:"least_common_slot"`
	SlotCounts         map[models.MealSlot]int `json:"slot_counts" yaml:"slot_counts"`
}

// AnalyzeMealPatterns averages meals over the days that have any meal and
// ranks slots by frequency. Ties go to the earlier slot of the day.
func AnalyzeMealPatterns(meals []*models.MealRecord, loc *time.Location) MealPatterns {
	out := MealPatterns{SlotCounts: map[models.MealSlot]int{}}
	byDay := groupByDay(meals, loc)
	if len(byDay) == 0 {
		return out
	}

	total := 0
	for _, dayMeals := range byDay {
		total += len(dayMeals)
		for _, m := range dayMeals {
			out.SlotCounts[m.Slot]++
		}
	}
	out.AverageMealsPerDay = models.Round1(float64(total) / float64(len(byDay)))

	slots := make([]models.MealSlot, 0, len(out.SlotCounts))
	for s := range out.SlotCounts {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool {
		ci, cj := out.SlotCounts[slots[i]], out.SlotCounts[slots[j]]
		if ci != cj {
			return ci > cj
		}
		return SlotLess(slots[i], slots[j])
	})
	out.MostCommonSlot = string(slots[0])

	sort.Slice(slots, func(i, j int) bool {
		ci, cj := out.SlotCounts[slots[i]], out.SlotCounts[slots[j]]
		if ci != cj {
			return ci < cj
		}
		return SlotLess(slots[i], slots[j])
	})
	out.LeastCommonSlot = string(slots[0])

	return out
}

// SlotLess orders slots by time of day, unknown slots last by name.
func SlotLess(a, b models.MealSlot) bool {
	oa, ob := models.SlotOrder(a), models.SlotOrder(b)
	if oa != ob {
		return oa < ob
	}
	return a < b
}
