// ABOUTME: Export and import for Charm KV storage.
// ABOUTME: Writes are batched with auto-sync paused and one sync at the end.
package charm

import (
	"fmt"

	"github.com/harperreed/nutri/internal/storage"
)

// GetAllData retrieves all data for export.
func (c *Client) GetAllData() (*storage.ExportData, error) {
	users, err := c.ListUsers()
	if err != nil {
		return nil, err
	}
	foods, err := c.ListFoods()
	if err != nil {
		return nil, err
	}
	meals, err := c.ListMeals(nil, 0)
	if err != nil {
		return nil, err
	}
	return storage.NewExportData(users, foods, meals), nil
}

// ImportData imports data from an export, users and foods before meals.
func (c *Client) ImportData(data *storage.ExportData) error {
	c.mu.RLock()
	prev := c.autoSync
	c.mu.RUnlock()
	c.SetAutoSync(false)
	defer c.SetAutoSync(prev)

	for _, u := range data.Users {
		if err := c.CreateUser(u); err != nil {
			return fmt.Errorf("import user %s: %w", u.ID, err)
		}
	}
	for _, f := range data.Foods {
		if err := c.CreateFood(f); err != nil {
			return fmt.Errorf("import food %s: %w", f.ID, err)
		}
	}
	for _, m := range data.Meals {
		if err := c.CreateMeal(m); err != nil {
			return fmt.Errorf("import meal %s: %w", m.ID, err)
		}
	}

	if prev {
		return c.Sync()
	}
	return nil
}
