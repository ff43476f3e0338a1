// ABOUTME: User CRUD operations for SQLite storage.
// ABOUTME: Goals are stored as nullable columns, one per nutrient.
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

const userColumns = `id, name, goal_calories, goal_protein, goal_fat, goal_carbohydrate, fitness_goal, created_at, updated_at`

// CreateUser stores a new user in the database.
func (d *DB) CreateUser(u *models.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := d.db.Exec(query,
		u.ID.String(),
		u.Name,
		nullGoal(u.Goals.Calories),
		nullGoal(u.Goals.Protein),
		nullGoal(u.Goals.Fat),
		nullGoal(u.Goals.Carbohydrate),
		string(u.FitnessGoal),
		formatTime(u.CreatedAt),
		formatTime(u.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by name, ID or ID prefix.
func (d *DB) GetUser(ref string) (*models.User, error) {
	id, err := d.resolveIDOrName("users", ref)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return d.getUser(context.Background(), id)
}

func (d *DB) getUser(ctx context.Context, id string) (*models.User, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return nil, err
	}
	return u, nil
}

// ListUsers returns all users ordered by name.
func (d *DB) ListUsers() ([]*models.User, error) {
	rows, err := d.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY name ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser overwrites name, goals and fitness goal of an existing user.
func (d *DB) UpdateUser(u *models.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	result, err := d.db.Exec(`
		UPDATE users SET name = ?, goal_calories = ?, goal_protein = ?, goal_fat = ?,
			goal_carbohydrate = ?, fitness_goal = ?, updated_at = ?
		WHERE id = ?`,
		u.Name,
		nullGoal(u.Goals.Calories),
		nullGoal(u.Goals.Protein),
		nullGoal(u.Goals.Fat),
		nullGoal(u.Goals.Carbohydrate),
		string(u.FitnessGoal),
		formatTime(u.UpdatedAt),
		u.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update user: %w: %s", ErrNotFound, u.ID)
	}
	return nil
}

// GetUserGoalsAndCreationDate returns the goals snapshot the analytics
// engine works from.
func (d *DB) GetUserGoalsAndCreationDate(ctx context.Context, userID uuid.UUID) (*models.UserGoals, error) {
	u, err := d.getUser(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	return u.GoalsSnapshot(), nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var idStr, fitness, createdAt, updatedAt string
	var cal, prot, fat, carb sql.NullFloat64

	if err := row.Scan(&idStr, &u.Name, &cal, &prot, &fat, &carb, &fitness, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	u.ID, _ = uuid.Parse(idStr)
	u.Goals = models.Goals{
		Calories:     fromNullGoal(cal),
		Protein:      fromNullGoal(prot),
		Fat:          fromNullGoal(fat),
		Carbohydrate: fromNullGoal(carb),
	}
	u.FitnessGoal = models.FitnessGoal(fitness)
	u.CreatedAt = parseTime(createdAt)
	u.UpdatedAt = parseTime(updatedAt)
	return &u, nil
}

func nullGoal(p *float64) sql.NullFloat64 {
	if p == nil || *p <= 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func fromNullGoal(n sql.NullFloat64) *float64 {
	if !n.Valid || n.Float64 <= 0 {
		return nil
	}
	v := n.Float64
	return &v
}

// formatTime stores instants as UTC RFC3339 so string order is time order.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
