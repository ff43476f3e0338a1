// ABOUTME: Data migration between nutrition storage backends.
// ABOUTME: Copies users, foods, and meals from source to destination.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Users int
	Foods int
	Meals int
}

// MigrateData copies all data from src to dst storage.
// Users and foods go first so meals can reference them. The destination
// should be empty before calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	users, err := src.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("list source users: %w", err)
	}
	for _, u := range users {
		if err := dst.CreateUser(u); err != nil {
			return nil, fmt.Errorf("create user %s: %w", u.ID, err)
		}
		summary.Users++
	}

	foods, err := src.ListFoods()
	if err != nil {
		return nil, fmt.Errorf("list source foods: %w", err)
	}
	for _, f := range foods {
		if err := dst.CreateFood(f); err != nil {
			return nil, fmt.Errorf("create food %s: %w", f.ID, err)
		}
		summary.Foods++
	}

	meals, err := src.ListMeals(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list source meals: %w", err)
	}
	for _, m := range meals {
		if err := dst.CreateMeal(m); err != nil {
			return nil, fmt.Errorf("create meal %s: %w", m.ID, err)
		}
		summary.Meals++
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
