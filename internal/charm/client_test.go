// ABOUTME: Tests for the Charm-backed Repository over an in-memory KV.
// ABOUTME: Covers prefixed keys, name lookup, profile resolution and readers.
package charm

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
	"github.com/harperreed/nutri/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	data     map[string][]byte
	readOnly bool
	syncs    int
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Set(key, value []byte) error {
	m.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Get(key []byte) ([]byte, error) {
	v, ok := m.data[string(key)]
	if !ok {
		return nil, errors.New("key not found")
	}
	return v, nil
}

func (m *memKV) Delete(key []byte) error {
	delete(m.data, string(key))
	return nil
}

func (m *memKV) Keys() ([][]byte, error) {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = []byte(k)
	}
	return out, nil
}

func (m *memKV) Sync() error      { m.syncs++; return nil }
func (m *memKV) Reset() error     { m.data = map[string][]byte{}; return nil }
func (m *memKV) IsReadOnly() bool { return m.readOnly }
func (m *memKV) Close() error     { return nil }

func setupTestClient(t *testing.T) (*Client, *memKV) {
	t.Helper()
	store := newMemKV()
	return newClient(store, false), store
}

func goal(v float64) *float64 { return &v }

func TestKeyPrefixes(t *testing.T) {
	c, store := setupTestClient(t)
	u := models.NewUser("Ada")
	require.NoError(t, c.CreateUser(u))
	f := models.NewFood("Oats", models.NutrientProfile{Calories: 389})
	require.NoError(t, c.CreateFood(f))
	m := models.NewMealRecord(u.ID, "", models.SlotBreakfast, 80).WithFood(f)
	require.NoError(t, c.CreateMeal(m))

	assert.Contains(t, store.data, "user:"+u.ID.String())
	assert.Contains(t, store.data, "food:"+f.ID.String())
	assert.Contains(t, store.data, "meal:"+m.ID.String())
}

func TestUserLookup(t *testing.T) {
	c, _ := setupTestClient(t)
	u := models.NewUser("Ada").WithGoals(models.Goals{Calories: goal(2100)})
	require.NoError(t, c.CreateUser(u))

	for _, ref := range []string{"ada", u.ID.String(), u.ID.String()[:8]} {
		got, err := c.GetUser(ref)
		require.NoError(t, err, "ref %q", ref)
		assert.Equal(t, u.ID, got.ID)
	}

	_, err := c.GetUser("nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateUser(t *testing.T) {
	c, _ := setupTestClient(t)
	u := models.NewUser("Ada")
	require.NoError(t, c.CreateUser(u))

	u.Goals.Set(models.Protein, 110)
	require.NoError(t, c.UpdateUser(u))
	got, err := c.GetUser(u.ID.String())
	require.NoError(t, err)
	require.NotNil(t, got.Goals.Protein)
	assert.Equal(t, 110.0, *got.Goals.Protein)

	assert.ErrorIs(t, c.UpdateUser(models.NewUser("ghost")), storage.ErrNotFound)
}

func TestMealProfileResolution(t *testing.T) {
	c, store := setupTestClient(t)
	u := models.NewUser("Ada")
	require.NoError(t, c.CreateUser(u))
	f := models.NewFood("Rice", models.NutrientProfile{Calories: 130, Carbohydrate: 28})
	require.NoError(t, c.CreateFood(f))
	linked := models.NewMealRecord(u.ID, "", models.SlotDinner, 200).WithFood(f)
	require.NoError(t, c.CreateMeal(linked))

	raw := string(store.data["meal:"+linked.ID.String()])
	assert.NotContains(t, raw, `"profile"`, "linked meals do not copy the profile")

	got, err := c.GetMeal(linked.ID.String()[:8])
	require.NoError(t, err)
	require.NotNil(t, got.Profile)
	assert.Equal(t, 130.0, got.Profile.Calories)

	require.NoError(t, c.DeleteFood("rice"))
	got, err = c.GetMeal(linked.ID.String())
	require.NoError(t, err)
	assert.Nil(t, got.FoodID)
	assert.Nil(t, got.Profile)
	assert.Equal(t, "Rice", got.FoodName)
}

func TestGetMealsForPeriod(t *testing.T) {
	c, _ := setupTestClient(t)
	u := models.NewUser("Ada")
	require.NoError(t, c.CreateUser(u))
	other := uuid.New()
	at := func(d, h int) time.Time { return time.Date(2026, 5, d, h, 0, 0, 0, time.UTC) }

	for _, tm := range []time.Time{at(11, 23), at(9, 23), at(10, 0), at(12, 0)} {
		require.NoError(t, c.CreateMeal(models.NewMealRecord(u.ID, "Egg", models.SlotBreakfast, 60).WithConsumedAt(tm)))
	}
	require.NoError(t, c.CreateMeal(models.NewMealRecord(other, "Egg", models.SlotBreakfast, 60).WithConsumedAt(at(10, 8))))

	got, err := c.GetMealsForPeriod(context.Background(), u.ID, at(10, 6), at(11, 6))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, at(10, 0).Equal(got[0].ConsumedAt), "oldest first")

	day, err := c.GetMealsForDate(context.Background(), u.ID, at(12, 9))
	require.NoError(t, err)
	assert.Len(t, day, 1)
}

func TestGetUserGoalsAndCreationDate(t *testing.T) {
	c, _ := setupTestClient(t)
	u := models.NewUser("Ada").WithFitnessGoal(models.FitnessLose)
	require.NoError(t, c.CreateUser(u))

	got, err := c.GetUserGoalsAndCreationDate(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FitnessLose, got.FitnessGoal)

	_, err = c.GetUserGoalsAndCreationDate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	c, store := setupTestClient(t)
	store.readOnly = true
	err := c.CreateUser(models.NewUser("Ada"))
	assert.ErrorIs(t, err, errReadOnly)
}

func TestAutoSyncAfterWrite(t *testing.T) {
	store := newMemKV()
	c := newClient(store, true)
	require.NoError(t, c.CreateUser(models.NewUser("Ada")))
	assert.Equal(t, 1, store.syncs)
}

func TestImportSyncsOnce(t *testing.T) {
	store := newMemKV()
	c := newClient(store, true)
	u := models.NewUser("Ada")
	f := models.NewFood("Tea", models.NutrientProfile{Calories: 1})
	m := models.NewMealRecord(u.ID, "", models.SlotSnack, 250).WithFood(f)

	require.NoError(t, c.ImportData(storage.NewExportData(
		[]*models.User{u}, []*models.Food{f}, []*models.MealRecord{m})))
	assert.Equal(t, 1, store.syncs)

	data, err := c.GetAllData()
	require.NoError(t, err)
	assert.Len(t, data.Users, 1)
	assert.Len(t, data.Foods, 1)
	assert.Len(t, data.Meals, 1)
}

func TestMigrateFromCharmToSQLite(t *testing.T) {
	c, _ := setupTestClient(t)
	u := models.NewUser("Ada")
	require.NoError(t, c.CreateUser(u))
	require.NoError(t, c.CreateMeal(models.NewMealRecord(u.ID, "Apple", models.SlotSnack, 150).
		WithProfile(models.NutrientProfile{Calories: 52})))

	dst, err := storage.Open(t.TempDir() + "/nutri.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = dst.Close() })

	summary, err := storage.MigrateData(c, dst)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Users)
	assert.Equal(t, 1, summary.Meals)
}
