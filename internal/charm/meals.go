// ABOUTME: Meal CRUD operations and the analytics meal readers for Charm KV.
// ABOUTME: Profiles of food-linked meals are resolved against the catalogue on read.
package charm

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
	"github.com/harperreed/nutri/internal/storage"
)

// CreateMeal stores a new meal. A food-linked meal does not keep a copy of
// the food's profile.
func (c *Client) CreateMeal(m *models.MealRecord) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("create meal: %w", err)
	}
	stored := *m
	if stored.FoodID != nil {
		stored.Profile = nil
	}
	data, err := marshalJSON(&stored)
	if err != nil {
		return fmt.Errorf("marshal meal: %w", err)
	}
	return c.set(MealPrefix+m.ID.String(), data)
}

// GetMeal retrieves a meal by ID or ID prefix.
func (c *Client) GetMeal(idOrPrefix string) (*models.MealRecord, error) {
	data, err := c.getByIDPrefix(MealPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get meal: %w", err)
	}
	m, err := unmarshalJSON[models.MealRecord](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal meal: %w", err)
	}
	foods, err := c.foodIndex()
	if err != nil {
		return nil, fmt.Errorf("get meal: %w", err)
	}
	resolveProfiles([]*models.MealRecord{m}, foods)
	return m, nil
}

// ListMeals retrieves meals, optionally for one user.
// Results are sorted by ConsumedAt descending (most recent first).
func (c *Client) ListMeals(userID *uuid.UUID, limit int) ([]*models.MealRecord, error) {
	meals, err := c.loadMeals()
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	var out []*models.MealRecord
	for _, m := range meals {
		if userID != nil && m.UserID != *userID {
			continue
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ConsumedAt.After(out[j].ConsumedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DeleteMeal removes a meal by ID or prefix.
func (c *Client) DeleteMeal(idOrPrefix string) error {
	m, err := c.GetMeal(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	if err := c.delete(MealPrefix + m.ID.String()); err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	return nil
}

// GetMealsForDate returns the user's meals on the calendar day of date in
// date's location.
func (c *Client) GetMealsForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*models.MealRecord, error) {
	return c.GetMealsForPeriod(ctx, userID, date, date)
}

// GetMealsForPeriod returns the user's meals from the start day through the
// end day inclusive, oldest first.
func (c *Client) GetMealsForPeriod(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.MealRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	meals, err := c.loadMeals()
	if err != nil {
		return nil, fmt.Errorf("get meals for period: %w", err)
	}
	from, to := storage.DayBounds(start, end)
	return filterPeriod(meals, userID, from, to), nil
}

// loadMeals reads every meal and resolves food-linked profiles.
func (c *Client) loadMeals() ([]*models.MealRecord, error) {
	allData, err := c.listByPrefix(MealPrefix)
	if err != nil {
		return nil, err
	}
	var meals []*models.MealRecord
	for _, data := range allData {
		m, err := unmarshalJSON[models.MealRecord](data)
		if err != nil {
			continue
		}
		meals = append(meals, m)
	}

	foods, err := c.foodIndex()
	if err != nil {
		return nil, err
	}
	resolveProfiles(meals, foods)
	return meals, nil
}

// resolveProfiles fills food-linked meals from the catalogue. A meal whose
// food is gone loses both the link and the profile.
func resolveProfiles(meals []*models.MealRecord, foods map[uuid.UUID]*models.Food) {
	for _, m := range meals {
		if m.FoodID == nil {
			continue
		}
		f, ok := foods[*m.FoodID]
		if !ok {
			m.FoodID = nil
			m.Profile = nil
			continue
		}
		p := f.Profile
		m.Profile = &p
	}
}

// filterPeriod keeps one user's meals in [from, to), oldest first.
func filterPeriod(meals []*models.MealRecord, userID uuid.UUID, from, to time.Time) []*models.MealRecord {
	var out []*models.MealRecord
	for _, m := range meals {
		if m.UserID != userID {
			continue
		}
		if m.ConsumedAt.Before(from) || !m.ConsumedAt.Before(to) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ConsumedAt.Before(out[j].ConsumedAt)
	})
	return out
}
