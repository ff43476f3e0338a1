// ABOUTME: Shared test fixtures for analytics tests.
// ABOUTME: memStore is an in-memory MealReader and GoalReader.
package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
)

type memStore struct {
	users      map[uuid.UUID]*models.UserGoals
	meals      []*models.MealRecord
	periodErr  error
	periodHits int
}

func newMemStore() *memStore {
	return &memStore{users: map[uuid.UUID]*models.UserGoals{}}
}

func (s *memStore) addUser(created time.Time, goals models.Goals, fg models.FitnessGoal) uuid.UUID {
	id := uuid.New()
	s.users[id] = &models.UserGoals{
		UserID:              id,
		Goals:               goals,
		FitnessGoal:         fg,
		AccountCreatedAtUTC: created.UTC(),
	}
	return id
}

// addMeal logs a meal whose profile makes grams=100 yield exactly v.
func (s *memStore) addMeal(userID uuid.UUID, at time.Time, slot models.MealSlot, v models.NutrientValues) *models.MealRecord {
	m := models.NewMealRecord(userID, "food", slot, 100).
		WithConsumedAt(at).
		WithProfile(models.NutrientProfile{
			Calories:     v.Calories,
			Protein:      v.Protein,
			Fat:          v.Fat,
			Carbohydrate: v.Carbohydrate,
		})
	s.meals = append(s.meals, m)
	return m
}

func (s *memStore) GetMealsForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*models.MealRecord, error) {
	return s.GetMealsForPeriod(ctx, userID, date, date)
}

func (s *memStore) GetMealsForPeriod(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*models.MealRecord, error) {
	s.periodHits++
	if s.periodErr != nil {
		return nil, s.periodErr
	}
	loc := start.Location()
	from := dayStart(start, loc)
	to := dayStart(end, loc).AddDate(0, 0, 1)
	var out []*models.MealRecord
	for _, m := range s.meals {
		if m.UserID != userID {
			continue
		}
		if m.ConsumedAt.Before(from) || !m.ConsumedAt.Before(to) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *memStore) GetUserGoalsAndCreationDate(_ context.Context, userID uuid.UUID) (*models.UserGoals, error) {
	g, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, userID)
	}
	return g, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func goalsOf(t *testing.T, kv map[models.Nutrient]float64) models.Goals {
	t.Helper()
	var g models.Goals
	for n, v := range kv {
		g.Set(n, v)
	}
	return g
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
