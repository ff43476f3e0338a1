// ABOUTME: User model with optional daily nutrient goals and fitness goal.
// ABOUTME: UserGoals is the read-only snapshot the analytics engine consumes.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FitnessGoal is the user's body-weight objective.
type FitnessGoal string

const (
	FitnessNone     FitnessGoal = ""
	FitnessLose     FitnessGoal = "lose_weight"
	FitnessGain     FitnessGoal = "gain_weight"
	FitnessMaintain FitnessGoal = "maintain_weight"
)

// ParseFitnessGoal accepts the stored names plus short aliases.
func ParseFitnessGoal(s string) (FitnessGoal, error) {
	switch s {
	case "", "none":
		return FitnessNone, nil
	case "lose", "lose_weight":
		return FitnessLose, nil
	case "gain", "gain_weight":
		return FitnessGain, nil
	case "maintain", "maintain_weight":
		return FitnessMaintain, nil
	}
	return "", fmt.Errorf("unknown fitness goal: %s (use lose, gain, maintain or none)", s)
}

// Goals are independently optional daily targets.
// A nil or non-positive target counts as not set.
type Goals struct {
	Calories     *float64 `json:"calories,omitempty" yaml:"calories,omitempty" validate:"omitempty,gt=0"`
	Protein      *float64 `json:"protein,omitempty" yaml:"protein,omitempty" validate:"omitempty,gt=0"`
	Fat          *float64 `json:"fat,omitempty" yaml:"fat,omitempty" validate:"omitempty,gt=0"`
	Carbohydrate *float64 `json:"carbohydrate,omitempty" yaml:"carbohydrate,omitempty" validate:"omitempty,gt=0"`
}

// Get returns the target for n and whether it is set.
func (g Goals) Get(n Nutrient) (float64, bool) {
	var p *float64
	switch n {
	case Calories:
		p = g.Calories
	case Protein:
		p = g.Protein
	case Fat:
		p = g.Fat
	case Carbohydrate:
		p = g.Carbohydrate
	}
	if p == nil || *p <= 0 {
		return 0, false
	}
	return *p, true
}

// Set stores a target for n. A non-positive value clears it.
func (g *Goals) Set(n Nutrient, v float64) {
	var p *float64
	if v > 0 {
		p = &v
	}
	switch n {
	case Calories:
		g.Calories = p
	case Protein:
		g.Protein = p
	case Fat:
		g.Fat = p
	case Carbohydrate:
		g.Carbohydrate = p
	}
}

// Configured returns how many targets are set.
func (g Goals) Configured() int {
	c := 0
	for _, n := range AllNutrients {
		if _, ok := g.Get(n); ok {
			c++
		}
	}
	return c
}

// User owns goals and meals.
type User struct {
	ID          uuid.UUID   `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name" validate:"required"`
	Goals       Goals       `json:"goals" yaml:"goals"`
	FitnessGoal FitnessGoal `json:"fitness_goal,omitempty" yaml:"fitness_goal,omitempty" validate:"omitempty,oneof=lose_weight gain_weight maintain_weight"`
	CreatedAt   time.Time   `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" yaml:"updated_at"`
}

// NewUser creates a user with a generated UUID, created now.
func NewUser(name string) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// WithCreatedAt backdates the account creation time.
func (u *User) WithCreatedAt(t time.Time) *User {
	u.CreatedAt = t
	if u.UpdatedAt.Before(t) {
		u.UpdatedAt = t
	}
	return u
}

// WithGoals replaces the user's nutrient goals.
func (u *User) WithGoals(g Goals) *User {
	u.Goals = g
	return u
}

// WithFitnessGoal sets the fitness goal.
func (u *User) WithFitnessGoal(fg FitnessGoal) *User {
	u.FitnessGoal = fg
	return u
}

// Touch records a modification at now.
func (u *User) Touch(now time.Time) {
	u.UpdatedAt = now
}

// Validate checks field constraints before the user is stored.
func (u *User) Validate() error {
	return wrapValidation(validate.Struct(u))
}

// GoalsSnapshot returns the engine-facing view of the user.
func (u *User) GoalsSnapshot() *UserGoals {
	return &UserGoals{
		UserID:              u.ID,
		Goals:               u.Goals,
		FitnessGoal:         u.FitnessGoal,
		AccountCreatedAtUTC: u.CreatedAt.UTC(),
	}
}

// UserGoals is what the analytics engine reads about a user.
type UserGoals struct {
	UserID              uuid.UUID   `json:"user_id" yaml:"user_id"`
	Goals               Goals       `json:"goals" yaml:"goals"`
	FitnessGoal         FitnessGoal `json:"fitness_goal,omitempty" yaml:"fitness_goal,omitempty"`
	AccountCreatedAtUTC time.Time   `json:"account_created_at_utc" yaml:"account_created_at_utc"`
}
