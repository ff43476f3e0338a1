// ABOUTME: Tests for window clamping and multi-day analyses.
// ABOUTME: No analysed day may predate the account creation date.
package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harperreed/nutri/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampWindow(t *testing.T) {
	created := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	tests := []struct {
		name      string
		start     time.Time
		days      int
		wantStart time.Time
		wantDays  int
	}{
		{"after creation", date(2026, 3, 12), 7, date(2026, 3, 12), 7},
		{"same day", date(2026, 3, 10), 7, date(2026, 3, 10), 7},
		{"three days early", date(2026, 3, 7), 7, date(2026, 3, 10), 4},
		{"entirely before", date(2026, 2, 1), 7, date(2026, 3, 10), 0},
		{"time of day ignored", time.Date(2026, 3, 12, 22, 0, 0, 0, time.UTC), 7, date(2026, 3, 12), 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ClampWindow(tt.start, tt.days, created)
			assert.True(t, tt.wantStart.Equal(w.Start), "start = %v, want %v", w.Start, tt.wantStart)
			assert.Equal(t, tt.wantDays, w.Days)
		})
	}
}

func TestClampWindowAcrossMonth(t *testing.T) {
	created := date(2026, 3, 2)
	w := ClampWindow(date(2026, 2, 27), 30, created)
	// Feb 2026 has 28 days: 27, 28, Mar 1 are dropped.
	assert.Equal(t, 27, w.Days)
	assert.True(t, created.Equal(w.Start))
}

func TestWeeklyAnalysisClampedToCreation(t *testing.T) {
	store := newMemStore()
	created := date(2026, 4, 4)
	uid := store.addUser(created, goalsOf(t, map[models.Nutrient]float64{models.Calories: 2000}), models.FitnessNone)
	// A meal before the account existed must never show up.
	store.addMeal(uid, date(2026, 4, 2).Add(9*time.Hour), models.SlotBreakfast, models.NutrientValues{Calories: 500})
	store.addMeal(uid, date(2026, 4, 5).Add(9*time.Hour), models.SlotBreakfast, models.NutrientValues{Calories: 600})

	e := NewEngine(store, store)
	got, err := e.GenerateWeeklyAnalysis(context.Background(), uid, date(2026, 4, 1))
	require.NoError(t, err)

	assert.Len(t, got, 4)
	for _, a := range got {
		assert.False(t, a.Date.Before(created), "day %v predates creation", a.Date)
	}
	assert.True(t, got[0].Date.Equal(created))
	assert.Equal(t, 0.0, got[0].Totals.Calories)
	assert.Equal(t, 600.0, got[1].Totals.Calories)
	assert.Equal(t, 1, got[1].EntryCount)
}

func TestMonthlyAnalysisOrderedOldestFirst(t *testing.T) {
	store := newMemStore()
	uid := store.addUser(date(2026, 1, 1), models.Goals{}, models.FitnessNone)
	for i := 0; i < 30; i++ {
		store.addMeal(uid, date(2026, 6, 1).AddDate(0, 0, i).Add(12*time.Hour), models.SlotLunch,
			models.NutrientValues{Calories: float64(1000 + i)})
	}

	e := NewEngine(store, store)
	got, err := e.GenerateMonthlyAnalysis(context.Background(), uid, date(2026, 6, 1))
	require.NoError(t, err)
	require.Len(t, got, 30)
	for i, a := range got {
		assert.Equal(t, float64(1000+i), a.Totals.Calories)
		assert.Equal(t, models.StatusNoGoals, a.OverallStatus)
	}
	assert.Equal(t, 1, store.periodHits, "meals are fetched once for the whole window")
}

func TestPeriodEntirelyBeforeCreationSkipsFetch(t *testing.T) {
	store := newMemStore()
	uid := store.addUser(date(2026, 5, 1), models.Goals{}, models.FitnessNone)

	e := NewEngine(store, store)
	got, err := e.GenerateWeeklyAnalysis(context.Background(), uid, date(2026, 1, 1))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, store.periodHits)
}

func TestPeriodFetchErrorReturnsNoPartialResult(t *testing.T) {
	store := newMemStore()
	uid := store.addUser(date(2026, 1, 1), models.Goals{}, models.FitnessNone)
	store.periodErr = errors.New("disk on fire")

	e := NewEngine(store, store)
	got, err := e.GenerateWeeklyAnalysis(context.Background(), uid, date(2026, 2, 1))
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestAnalysisLocalDayBoundaries(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	store := newMemStore()
	uid := store.addUser(date(2026, 1, 1), models.Goals{}, models.FitnessNone)
	// 02:00 UTC on the 11th is still the 10th at UTC-5.
	store.addMeal(uid, time.Date(2026, 2, 11, 2, 0, 0, 0, time.UTC), models.SlotDinner, models.NutrientValues{Calories: 700})

	e := NewEngine(store, store)
	got, err := e.GenerateDailyAnalysis(context.Background(), uid, time.Date(2026, 2, 10, 8, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, 700.0, got.Totals.Calories)
	assert.Equal(t, 10, got.Date.Day())
}
