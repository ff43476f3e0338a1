// ABOUTME: Repository interface for nutrition data storage.
// ABOUTME: Defines contract for users, foods, meals and the analytics readers.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = models.ErrNotFound

// Repository defines the storage interface for nutrition data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// User operations. ref is a name, full ID or ID prefix.
	CreateUser(u *models.User) error
	GetUser(ref string) (*models.User, error)
	ListUsers() ([]*models.User, error)
	UpdateUser(u *models.User) error

	// Food operations. ref is a name, full ID or ID prefix.
	CreateFood(f *models.Food) error
	GetFood(ref string) (*models.Food, error)
	ListFoods() ([]*models.Food, error)
	DeleteFood(ref string) error

	// Meal operations
	CreateMeal(m *models.MealRecord) error
	GetMeal(idOrPrefix string) (*models.MealRecord, error)
	ListMeals(userID *uuid.UUID, limit int) ([]*models.MealRecord, error)
	DeleteMeal(idOrPrefix string) error

	// Analytics readers
	GetMealsForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*models.MealRecord, error)
	GetMealsForPeriod(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.MealRecord, error)
	GetUserGoalsAndCreationDate(ctx context.Context, userID uuid.UUID) (*models.UserGoals, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

// Compile-time check that DB implements Repository.
var _ Repository = (*DB)(nil)

// DayBounds returns the UTC instants bounding the calendar days from start
// through end in start's location, end exclusive.
func DayBounds(start, end time.Time) (from, to time.Time) {
	loc := start.Location()
	s := start.In(loc)
	e := end.In(loc)
	from = time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, loc)
	to = time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	return from.UTC(), to.UTC()
}
