// ABOUTME: Food catalogue CRUD operations for Charm KV storage.
// ABOUTME: Deleting a food leaves meals pointing at a missing key.
package charm

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
)

// CreateFood stores a new food in the KV store.
func (c *Client) CreateFood(f *models.Food) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("create food: %w", err)
	}
	data, err := marshalJSON(f)
	if err != nil {
		return fmt.Errorf("marshal food: %w", err)
	}
	return c.set(FoodPrefix+f.ID.String(), data)
}

// GetFood retrieves a food by name, ID or ID prefix.
func (c *Client) GetFood(ref string) (*models.Food, error) {
	foods, err := c.ListFoods()
	if err != nil {
		return nil, fmt.Errorf("get food: %w", err)
	}
	f, ok, err := findByName(foods, func(f *models.Food) string { return f.Name }, ref)
	if err != nil {
		return nil, fmt.Errorf("get food: %w", err)
	}
	if ok {
		return f, nil
	}

	data, err := c.getByIDPrefix(FoodPrefix, ref)
	if err != nil {
		return nil, fmt.Errorf("get food: %w", err)
	}
	f, err = unmarshalJSON[models.Food](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal food: %w", err)
	}
	return f, nil
}

// ListFoods returns the whole catalogue ordered by name.
func (c *Client) ListFoods() ([]*models.Food, error) {
	allData, err := c.listByPrefix(FoodPrefix)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}

	var foods []*models.Food
	for _, data := range allData {
		f, err := unmarshalJSON[models.Food](data)
		if err != nil {
			continue
		}
		foods = append(foods, f)
	}
	sort.Slice(foods, func(i, j int) bool { return foods[i].Name < foods[j].Name })
	return foods, nil
}

// DeleteFood removes a food. Meals that referenced it resolve to no
// profile from then on.
func (c *Client) DeleteFood(ref string) error {
	f, err := c.GetFood(ref)
	if err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	if err := c.delete(FoodPrefix + f.ID.String()); err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	return nil
}

// foodIndex loads every food keyed by ID.
func (c *Client) foodIndex() (map[uuid.UUID]*models.Food, error) {
	foods, err := c.ListFoods()
	if err != nil {
		return nil, err
	}
	idx := make(map[uuid.UUID]*models.Food, len(foods))
	for _, f := range foods {
		idx[f.ID] = f
	}
	return idx, nil
}
