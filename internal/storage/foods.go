// ABOUTME: Food catalogue CRUD operations for SQLite storage.
// ABOUTME: Each food carries a per-100g nutrient profile.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
)

const foodColumns = `id, name, calories, protein, fat, carbohydrate, created_at`

// CreateFood stores a new food in the database.
func (d *DB) CreateFood(f *models.Food) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("create food: %w", err)
	}
	_, err := d.db.Exec(`INSERT INTO foods (`+foodColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.ID.String(),
		f.Name,
		f.Profile.Calories,
		f.Profile.Protein,
		f.Profile.Fat,
		f.Profile.Carbohydrate,
		formatTime(f.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create food: %w", err)
	}
	return nil
}

// GetFood retrieves a food by name, ID or ID prefix.
func (d *DB) GetFood(ref string) (*models.Food, error) {
	id, err := d.resolveIDOrName("foods", ref)
	if err != nil {
		return nil, fmt.Errorf("get food: %w", err)
	}

	f, err := scanFood(d.db.QueryRow(`SELECT `+foodColumns+` FROM foods WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get food: %w: %s", ErrNotFound, ref)
		}
		return nil, err
	}
	return f, nil
}

// ListFoods returns the whole catalogue ordered by name.
func (d *DB) ListFoods() ([]*models.Food, error) {
	rows, err := d.db.Query(`SELECT ` + foodColumns + ` FROM foods ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	defer rows.Close()

	var foods []*models.Food
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}

// DeleteFood removes a food. Meals that referenced it keep their name and
// grams but lose their nutrient profile.
func (d *DB) DeleteFood(ref string) error {
	id, err := d.resolveIDOrName("foods", ref)
	if err != nil {
		return fmt.Errorf("delete food: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM foods WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete food: %w: %s", ErrNotFound, ref)
	}
	return nil
}

func scanFood(row rowScanner) (*models.Food, error) {
	var f models.Food
	var idStr, createdAt string
	err := row.Scan(&idStr, &f.Name,
		&f.Profile.Calories, &f.Profile.Protein, &f.Profile.Fat, &f.Profile.Carbohydrate,
		&createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan food: %w", err)
	}
	f.ID, _ = uuid.Parse(idStr)
	f.CreatedAt = parseTime(createdAt)
	return &f, nil
}
