// ABOUTME: Export and import functionality for nutrition data.
// ABOUTME: Supports JSON and YAML for any Repository implementation.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/nutri/internal/models"
	"gopkg.in/yaml.v3"
)

const exportVersion = "1.0"

// ExportData represents the full export format for nutrition data.
type ExportData struct {
	Version    string               `json:"version" yaml:"version"`
	ExportedAt time.Time            `json:"exported_at" yaml:"exported_at"`
	Tool       string               `json:"tool" yaml:"tool"`
	Users      []*models.User       `json:"users" yaml:"users"`
	Foods      []*models.Food       `json:"foods" yaml:"foods"`
	Meals      []*models.MealRecord `json:"meals" yaml:"meals"`
}

// NewExportData stamps a set of records with version and time.
func NewExportData(users []*models.User, foods []*models.Food, meals []*models.MealRecord) *ExportData {
	return &ExportData{
		Version:    exportVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       "nutri",
		Users:      users,
		Foods:      foods,
		Meals:      meals,
	}
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	users, err := d.ListUsers()
	if err != nil {
		return nil, err
	}
	foods, err := d.ListFoods()
	if err != nil {
		return nil, err
	}
	meals, err := d.ListMeals(nil, 0)
	if err != nil {
		return nil, err
	}
	return NewExportData(users, foods, meals), nil
}

// ImportData imports data from an export, users and foods before meals.
func (d *DB) ImportData(data *ExportData) error {
	for _, u := range data.Users {
		if err := d.CreateUser(u); err != nil {
			return fmt.Errorf("import user %s: %w", u.ID, err)
		}
	}
	for _, f := range data.Foods {
		if err := d.CreateFood(f); err != nil {
			return fmt.Errorf("import food %s: %w", f.ID, err)
		}
	}
	for _, m := range data.Meals {
		if err := d.CreateMeal(m); err != nil {
			return fmt.Errorf("import meal %s: %w", m.ID, err)
		}
	}
	return nil
}

// ExportJSON exports all data as indented JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(repo Repository, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return repo.ImportData(&data)
}

// ImportYAML imports data from YAML bytes.
func ImportYAML(repo Repository, raw []byte) error {
	var data ExportData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal YAML: %w", err)
	}
	return repo.ImportData(&data)
}
