// ABOUTME: User CRUD operations and the goals reader for Charm KV storage.
// ABOUTME: Users resolve by name first, then by ID prefix.
package charm

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
	"github.com/harperreed/nutri/internal/storage"
)

// CreateUser stores a new user in the KV store.
func (c *Client) CreateUser(u *models.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return c.putUser(u)
}

func (c *Client) putUser(u *models.User) error {
	data, err := marshalJSON(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return c.set(UserPrefix+u.ID.String(), data)
}

// GetUser retrieves a user by name, ID or ID prefix.
func (c *Client) GetUser(ref string) (*models.User, error) {
	users, err := c.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	u, ok, err := findByName(users, func(u *models.User) string { return u.Name }, ref)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if ok {
		return u, nil
	}

	data, err := c.getByIDPrefix(UserPrefix, ref)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	u, err = unmarshalJSON[models.User](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return u, nil
}

// ListUsers returns all users ordered by name.
func (c *Client) ListUsers() ([]*models.User, error) {
	allData, err := c.listByPrefix(UserPrefix)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	var users []*models.User
	for _, data := range allData {
		u, err := unmarshalJSON[models.User](data)
		if err != nil {
			continue // Skip invalid entries
		}
		users = append(users, u)
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// UpdateUser overwrites an existing user.
func (c *Client) UpdateUser(u *models.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if _, err := c.getByIDPrefix(UserPrefix, u.ID.String()); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return c.putUser(u)
}

// GetUserGoalsAndCreationDate returns the goals snapshot the analytics
// engine works from.
func (c *Client) GetUserGoalsAndCreationDate(ctx context.Context, userID uuid.UUID) (*models.UserGoals, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := c.getByIDPrefix(UserPrefix, userID.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", storage.ErrNotFound, userID)
		}
		return nil, err
	}
	u, err := unmarshalJSON[models.User](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return u.GoalsSnapshot(), nil
}
