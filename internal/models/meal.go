// ABOUTME: MealRecord, MealSlot and per-100g NutrientProfile models.
// ABOUTME: A meal's nutrients are its profile scaled by grams/100.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MealSlot is the categorical time-of-day tag of a meal.
type MealSlot string

const (
	SlotBreakfast MealSlot = "Breakfast"
	SlotLunch     MealSlot = "Lunch"
	SlotDinner    MealSlot = "Dinner"
	SlotSnack     MealSlot = "Snack"
)

// AllMealSlots lists slots in canonical order, also used for tie-breaking.
var AllMealSlots = []MealSlot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}

// ParseMealSlot accepts any casing of a slot name.
func ParseMealSlot(s string) (MealSlot, error) {
	for _, slot := range AllMealSlots {
		if strings.EqualFold(string(slot), s) {
			return slot, nil
		}
	}
	return "", fmt.Errorf("unknown meal slot: %s (use breakfast, lunch, dinner or snack)", s)
}

// SlotOrder returns the position of s in AllMealSlots, or len(AllMealSlots).
func SlotOrder(s MealSlot) int {
	for i, slot := range AllMealSlots {
		if slot == s {
			return i
		}
	}
	return len(AllMealSlots)
}

// NutrientProfile is nutrient content per 100 g of a food.
type NutrientProfile struct {
	Calories     float64 `json:"calories" yaml:"calories" validate:"gte=0"`
	Protein      float64 `json:"protein" yaml:"protein" validate:"gte=0"`
	Fat          float64 `json:"fat" yaml:"fat" validate:"gte=0"`
	Carbohydrate float64 `json:"carbohydrate" yaml:"carbohydrate" validate:"gte=0"`
}

// Values returns the profile as NutrientValues.
func (p NutrientProfile) Values() NutrientValues {
	return NutrientValues{
		Calories:     p.Calories,
		Protein:      p.Protein,
		Fat:          p.Fat,
		Carbohydrate: p.Carbohydrate,
	}
}

// MealRecord is one consumed portion of a food.
type MealRecord struct {
	ID         uuid.UUID        `json:"id" yaml:"id"`
	UserID     uuid.UUID        `json:"user_id" yaml:"user_id" validate:"required"`
	FoodID     *uuid.UUID       `json:"food_id,omitempty" yaml:"food_id,omitempty"`
	FoodName   string           `json:"food_name" yaml:"food_name" validate:"required"`
	Slot       MealSlot         `json:"slot" yaml:"slot" validate:"oneof=Breakfast Lunch Dinner Snack"`
	Grams      float64          `json:"grams" yaml:"grams" validate:"gt=0"`
	Profile    *NutrientProfile `json:"profile,omitempty" yaml:"profile,omitempty"`
	ConsumedAt time.Time        `json:"consumed_at" yaml:"consumed_at"`
	CreatedAt  time.Time        `json:"created_at" yaml:"created_at"`
}

// NewMealRecord creates a meal consumed now with a generated UUID.
func NewMealRecord(userID uuid.UUID, foodName string, slot MealSlot, grams float64) *MealRecord {
	now := time.Now()
	return &MealRecord{
		ID:         uuid.New(),
		UserID:     userID,
		FoodName:   foodName,
		Slot:       slot,
		Grams:      grams,
		ConsumedAt: now,
		CreatedAt:  now,
	}
}

// WithConsumedAt sets a custom consumption timestamp.
func (m *MealRecord) WithConsumedAt(t time.Time) *MealRecord {
	m.ConsumedAt = t
	return m
}

// WithProfile sets the per-100g nutrient profile.
func (m *MealRecord) WithProfile(p NutrientProfile) *MealRecord {
	m.Profile = &p
	return m
}

// WithFood links the meal to a saved food and copies its profile.
func (m *MealRecord) WithFood(f *Food) *MealRecord {
	id := f.ID
	m.FoodID = &id
	m.FoodName = f.Name
	return m.WithProfile(f.Profile)
}

// Nutrients returns the nutrient content of the consumed portion.
// ok is false when the record has no resolvable profile.
func (m *MealRecord) Nutrients() (v NutrientValues, ok bool) {
	if m.Profile == nil {
		return NutrientValues{}, false
	}
	return m.Profile.Values().Scale(m.Grams / 100), true
}

// Validate checks field constraints before the meal is stored.
func (m *MealRecord) Validate() error {
	return wrapValidation(validate.Struct(m))
}
