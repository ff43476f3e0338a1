// ABOUTME: Tests for the meal and goal readers the analytics engine consumes.
// ABOUTME: Day windows are computed in the caller's location and stored in UTC.
package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	from, to := DayBounds(
		time.Date(2026, 5, 10, 15, 0, 0, 0, loc),
		time.Date(2026, 5, 11, 1, 0, 0, 0, loc),
	)
	assert.True(t, time.Date(2026, 5, 9, 22, 0, 0, 0, time.UTC).Equal(from))
	assert.True(t, time.Date(2026, 5, 11, 22, 0, 0, 0, time.UTC).Equal(to))
}

func TestGetMealsForPeriod(t *testing.T) {
	db := setupTestDB(t)
	u := createUser(t, db, "Ada")
	other := createUser(t, db, "Bob")
	at := func(d, h int) time.Time { return time.Date(2026, 5, d, h, 0, 0, 0, time.UTC) }

	for _, tm := range []time.Time{at(9, 23), at(10, 0), at(10, 12), at(11, 23), at(12, 0)} {
		require.NoError(t, db.CreateMeal(models.NewMealRecord(u.ID, "Bread", models.SlotSnack, 30).WithConsumedAt(tm)))
	}
	require.NoError(t, db.CreateMeal(models.NewMealRecord(other.ID, "Bread", models.SlotSnack, 30).WithConsumedAt(at(10, 12))))

	got, err := db.GetMealsForPeriod(context.Background(), u.ID, at(10, 9), at(11, 9))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, at(10, 0).Equal(got[0].ConsumedAt))
	assert.True(t, at(11, 23).Equal(got[2].ConsumedAt))
}

func TestGetMealsForDateLocal(t *testing.T) {
	db := setupTestDB(t)
	u := createUser(t, db, "Ada")
	loc := time.FixedZone("UTC-5", -5*3600)
	// 03:00 UTC on the 11th is the evening of the 10th at UTC-5.
	require.NoError(t, db.CreateMeal(models.NewMealRecord(u.ID, "Pasta", models.SlotDinner, 250).
		WithConsumedAt(time.Date(2026, 5, 11, 3, 0, 0, 0, time.UTC))))

	got, err := db.GetMealsForDate(context.Background(), u.ID, time.Date(2026, 5, 10, 12, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = db.GetMealsForDate(context.Background(), u.ID, time.Date(2026, 5, 11, 12, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetMealsHonoursContext(t *testing.T) {
	db := setupTestDB(t)
	u := createUser(t, db, "Ada")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := db.GetMealsForPeriod(ctx, u.ID, time.Now(), time.Now())
	assert.Error(t, err)
}

func TestGetUserGoalsAndCreationDate(t *testing.T) {
	db := setupTestDB(t)
	created := time.Date(2026, 1, 15, 9, 30, 0, 0, time.FixedZone("UTC+1", 3600))
	u := models.NewUser("Ada").
		WithCreatedAt(created).
		WithGoals(models.Goals{Protein: ptr(100)}).
		WithFitnessGoal(models.FitnessGain)
	require.NoError(t, db.CreateUser(u))

	got, err := db.GetUserGoalsAndCreationDate(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.UserID)
	assert.Equal(t, models.FitnessGain, got.FitnessGoal)
	assert.True(t, created.Equal(got.AccountCreatedAtUTC))
	assert.Equal(t, time.UTC, got.AccountCreatedAtUTC.Location())
	assert.Equal(t, 1, got.Goals.Configured())
}

func TestGetUserGoalsUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.GetUserGoalsAndCreationDate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
