// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for users, foods, and meals.
package storage

// initSchema creates or updates the database schema.
//
// A meal either references a food (food_id set, inline profile NULL) or
// carries its own per-100g profile. Deleting a food nulls food_id, leaving
// the meal with no resolvable profile.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		goal_calories REAL,
		goal_protein REAL,
		goal_fat REAL,
		goal_carbohydrate REAL,
		fitness_goal TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS foods (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		calories REAL NOT NULL,
		protein REAL NOT NULL,
		fat REAL NOT NULL,
		carbohydrate REAL NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meals (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		food_id TEXT,
		food_name TEXT NOT NULL,
		slot TEXT NOT NULL,
		grams REAL NOT NULL,
		calories REAL,
		protein REAL,
		fat REAL,
		carbohydrate REAL,
		consumed_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (food_id) REFERENCES foods(id) ON DELETE SET NULL
	);

	CREATE INDEX IF NOT EXISTS idx_users_name ON users(name);
	CREATE INDEX IF NOT EXISTS idx_foods_name ON foods(name);
	CREATE INDEX IF NOT EXISTS idx_meals_user_consumed ON meals(user_id, consumed_at);
	CREATE INDEX IF NOT EXISTS idx_meals_food ON meals(food_id);
	`

	_, err := d.db.Exec(schema)
	return err
}
