// ABOUTME: Tests for User, Goals and FitnessGoal.
// ABOUTME: Covers optional goal semantics and the Touch audit method.
package models

import (
	"testing"
	"time"
)

func TestGoalsGetAndSet(t *testing.T) {
	var g Goals
	if g.Configured() != 0 {
		t.Fatalf("empty goals configured = %d", g.Configured())
	}

	g.Set(Calories, 2000)
	g.Set(Protein, 120)
	g.Set(Fat, 0)

	if v, ok := g.Get(Calories); !ok || v != 2000 {
		t.Errorf("Get(Calories) = %v, %v", v, ok)
	}
	if _, ok := g.Get(Fat); ok {
		t.Error("zero fat goal should count as unset")
	}
	if g.Configured() != 2 {
		t.Errorf("Configured() = %d, want 2", g.Configured())
	}

	g.Set(Calories, -5)
	if _, ok := g.Get(Calories); ok {
		t.Error("negative value should clear the goal")
	}
}

func TestGoalsIndependentPointers(t *testing.T) {
	var g Goals
	g.Set(Calories, 1800)
	g.Set(Protein, 90)
	if *g.Calories == *g.Protein {
		t.Error("goal pointers should not alias")
	}
}

func TestParseFitnessGoal(t *testing.T) {
	tests := []struct {
		input   string
		want    FitnessGoal
		wantErr bool
	}{
		{"lose", FitnessLose, false},
		{"gain_weight", FitnessGain, false},
		{"maintain", FitnessMaintain, false},
		{"none", FitnessNone, false},
		{"", FitnessNone, false},
		{"bulk", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFitnessGoal(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFitnessGoal(%q) err = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFitnessGoal(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUserTouch(t *testing.T) {
	u := NewUser("ana")
	later := u.UpdatedAt.Add(time.Hour)
	u.Touch(later)
	if !u.UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want %v", u.UpdatedAt, later)
	}
	if u.CreatedAt.Equal(later) {
		t.Error("Touch must not change CreatedAt")
	}
}

func TestUserValidate(t *testing.T) {
	u := NewUser("ana").WithFitnessGoal(FitnessLose)
	if err := u.Validate(); err != nil {
		t.Fatalf("valid user rejected: %v", err)
	}

	u.FitnessGoal = "bulk"
	if err := u.Validate(); err == nil {
		t.Error("expected error for unknown fitness goal")
	}

	if err := NewUser("").Validate(); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestGoalsSnapshot(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.FixedZone("X", 3600))
	var g Goals
	g.Set(Calories, 2000)
	u := NewUser("ana").WithCreatedAt(created).WithGoals(g)

	snap := u.GoalsSnapshot()
	if snap.UserID != u.ID {
		t.Error("snapshot user ID mismatch")
	}
	if snap.AccountCreatedAtUTC.Location() != time.UTC {
		t.Error("creation time should be UTC")
	}
	if !snap.AccountCreatedAtUTC.Equal(created) {
		t.Error("creation instant changed")
	}
	if v, _ := snap.Goals.Get(Calories); v != 2000 {
		t.Errorf("snapshot calorie goal = %v", v)
	}
}
