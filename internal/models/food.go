// ABOUTME: Food model for the saved food catalogue.
// ABOUTME: Foods carry a per-100g profile that meals copy when logged.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Food is a saved product with known nutrient content.
type Food struct {
	ID        uuid.UUID       `json:"id" yaml:"id"`
	Name      string          `json:"name" yaml:"name" validate:"required"`
	Profile   NutrientProfile `json:"profile" yaml:"profile"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at"`
}

// NewFood creates a food with a generated UUID.
func NewFood(name string, profile NutrientProfile) *Food {
	return &Food{
		ID:        uuid.New(),
		Name:      name,
		Profile:   profile,
		CreatedAt: time.Now(),
	}
}

// Validate checks field constraints before the food is stored.
func (f *Food) Validate() error {
	return wrapValidation(validate.Struct(f))
}
