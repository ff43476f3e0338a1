// ABOUTME: Meal CRUD operations and the analytics meal readers for SQLite.
// ABOUTME: Profiles resolve from the referenced food, else the inline columns.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutri/internal/models"
)

const mealSelect = `
	SELECT m.id, m.user_id, m.food_id, m.food_name, m.slot, m.grams,
		COALESCE(f.calories, m.calories),
		COALESCE(f.protein, m.protein),
		COALESCE(f.fat, m.fat),
		COALESCE(f.carbohydrate, m.carbohydrate),
		m.consumed_at, m.created_at
	FROM meals m
	LEFT JOIN foods f ON f.id = m.food_id
`

// CreateMeal stores a new meal. When FoodID is set the profile is read
// from the food on every load and is not copied into the meal row.
func (d *DB) CreateMeal(m *models.MealRecord) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("create meal: %w", err)
	}

	var foodID sql.NullString
	var cal, prot, fat, carb sql.NullFloat64
	if m.FoodID != nil {
		foodID = sql.NullString{String: m.FoodID.String(), Valid: true}
	} else if m.Profile != nil {
		cal = sql.NullFloat64{Float64: m.Profile.Calories, Valid: true}
		prot = sql.NullFloat64{Float64: m.Profile.Protein, Valid: true}
		fat = sql.NullFloat64{Float64: m.Profile.Fat, Valid: true}
		carb = sql.NullFloat64{Float64: m.Profile.Carbohydrate, Valid: true}
	}

	_, err := d.db.Exec(`
		INSERT INTO meals (id, user_id, food_id, food_name, slot, grams,
			calories, protein, fat, carbohydrate, consumed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID.String(),
		m.UserID.String(),
		foodID,
		m.FoodName,
		string(m.Slot),
		m.Grams,
		cal, prot, fat, carb,
		formatTime(m.ConsumedAt),
		formatTime(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create meal: %w", err)
	}
	return nil
}

// GetMeal retrieves a meal by ID or ID prefix.
func (d *DB) GetMeal(idOrPrefix string) (*models.MealRecord, error) {
	id, err := d.resolveID("meals", idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get meal: %w", err)
	}

	m, err := scanMeal(d.db.QueryRow(mealSelect+` WHERE m.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get meal: %w: %s", ErrNotFound, idOrPrefix)
		}
		return nil, err
	}
	return m, nil
}

// ListMeals retrieves meals, optionally for one user.
// Results are sorted by ConsumedAt descending (most recent first).
func (d *DB) ListMeals(userID *uuid.UUID, limit int) ([]*models.MealRecord, error) {
	query := mealSelect
	var args []any
	if userID != nil {
		query += ` WHERE m.user_id = ?`
		args = append(args, userID.String())
	}
	query += ` ORDER BY m.consumed_at DESC`
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()
	return scanMeals(rows)
}

// DeleteMeal removes a meal by ID or prefix.
func (d *DB) DeleteMeal(idOrPrefix string) error {
	id, err := d.resolveID("meals", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM meals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete meal: %w: %s", ErrNotFound, idOrPrefix)
	}
	return nil
}

// GetMealsForDate returns the user's meals on the calendar day of date in
// date's location.
func (d *DB) GetMealsForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*models.MealRecord, error) {
	return d.GetMealsForPeriod(ctx, userID, date, date)
}

// GetMealsForPeriod returns the user's meals from the start day through the
// end day inclusive, oldest first.
func (d *DB) GetMealsForPeriod(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*models.MealRecord, error) {
	from, to := DayBounds(start, end)
	rows, err := d.db.QueryContext(ctx, mealSelect+`
		WHERE m.user_id = ? AND m.consumed_at >= ? AND m.consumed_at < ?
		ORDER BY m.consumed_at ASC`,
		userID.String(), formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("get meals for period: %w", err)
	}
	defer rows.Close()
	return scanMeals(rows)
}

func scanMeal(row rowScanner) (*models.MealRecord, error) {
	var m models.MealRecord
	var idStr, userIDStr, slot, consumedAt, createdAt string
	var foodID sql.NullString
	var cal, prot, fat, carb sql.NullFloat64

	err := row.Scan(&idStr, &userIDStr, &foodID, &m.FoodName, &slot, &m.Grams,
		&cal, &prot, &fat, &carb, &consumedAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan meal: %w", err)
	}

	m.ID, _ = uuid.Parse(idStr)
	m.UserID, _ = uuid.Parse(userIDStr)
	if foodID.Valid {
		if id, err := uuid.Parse(foodID.String); err == nil {
			m.FoodID = &id
		}
	}
	m.Slot = models.MealSlot(slot)
	if cal.Valid {
		m.Profile = &models.NutrientProfile{
			Calories:     cal.Float64,
			Protein:      prot.Float64,
			Fat:          fat.Float64,
			Carbohydrate: carb.Float64,
		}
	}
	m.ConsumedAt = parseTime(consumedAt)
	m.CreatedAt = parseTime(createdAt)
	return &m, nil
}

func scanMeals(rows *sql.Rows) ([]*models.MealRecord, error) {
	var meals []*models.MealRecord
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, err
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}
