// ABOUTME: Tests for the install-skill command.
// ABOUTME: Validates skill installation, confirmation handling, and embedded content.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSkillFSReadEmbeddedContent(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill/SKILL.md: %v", err)
	}
	contentStr := string(content)

	if !strings.HasPrefix(contentStr, "---") {
		t.Error("Expected SKILL.md to start with YAML frontmatter (---)")
	}
	for _, marker := range []string{"name: nutri", "description:", "## When to use nutri", "## Meal slots"} {
		if !strings.Contains(contentStr, marker) {
			t.Errorf("Expected SKILL.md to contain %q", marker)
		}
	}
}

// TestSkillReferencesEveryTool keeps SKILL.md in step with the MCP server.
func TestSkillReferencesEveryTool(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}
	tools := []string{
		"log_meal", "list_meals", "daily_analysis", "weekly_analysis",
		"monthly_analysis", "trends", "recommendations", "trend_insights",
		"trend_metrics", "consistency_analysis", "goal_adherence",
	}
	for _, tool := range tools {
		if !strings.Contains(string(content), "mcp__nutri__"+tool) {
			t.Errorf("Expected embedded SKILL.md to reference mcp__nutri__%s", tool)
		}
	}
}

func TestInstallSkillWritesFile(t *testing.T) {
	home := t.TempDir()
	skillSkipConfirm = true
	defer func() { skillSkipConfirm = false }()

	var out bytes.Buffer
	if err := installSkill(strings.NewReader(""), &out, home); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	path := filepath.Join(home, ".claude", "skills", "nutri", "SKILL.md")
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Skill file not created: %v", err)
	}
	embedded, _ := skillFS.ReadFile("skill/SKILL.md")
	if !bytes.Equal(written, embedded) {
		t.Error("Installed skill does not match embedded content")
	}

	info, err := os.Stat(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Failed to stat skill directory: %v", err)
	}
	if info.Mode().Perm()&0700 != 0700 {
		t.Errorf("Expected directory to be rwx for owner, got %v", info.Mode())
	}
	if !strings.Contains(out.String(), "Installed nutri skill") {
		t.Errorf("Unexpected output: %s", out.String())
	}
}

func TestInstallSkillOverwritesExistingFile(t *testing.T) {
	home := t.TempDir()
	path := skillPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatalf("Failed to create skill directory: %v", err)
	}
	if err := os.WriteFile(path, []byte("# Old Skill\nstale content"), 0600); err != nil {
		t.Fatalf("Failed to write old skill file: %v", err)
	}

	var out bytes.Buffer
	if err := installSkill(strings.NewReader("y\n"), &out, home); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read skill file: %v", err)
	}
	if strings.Contains(string(data), "stale content") {
		t.Error("Old content should have been replaced")
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Error("Expected overwrite notice")
	}
}

func TestInstallSkillDeclined(t *testing.T) {
	home := t.TempDir()

	var out bytes.Buffer
	if err := installSkill(strings.NewReader("n\n"), &out, home); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}
	if _, err := os.Stat(skillPath(home)); !os.IsNotExist(err) {
		t.Error("Skill should not be installed when declined")
	}
	if !strings.Contains(out.String(), "Installation canceled.") {
		t.Errorf("Expected cancel message, got: %s", out.String())
	}
}

func TestInstallSkillCommand(t *testing.T) {
	setupTestCLI(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	mustRun(t, "install-skill", "--yes")
	if _, err := os.Stat(skillPath(home)); err != nil {
		t.Errorf("Skill file not created by command: %v", err)
	}
}

func TestSkillSkipConfirmFlag(t *testing.T) {
	flag := installSkillCmd.Flags().Lookup("yes")
	if flag == nil {
		t.Fatal("Expected --yes flag to be defined")
	}
	if flag.Shorthand != "y" {
		t.Errorf("Expected shorthand 'y', got %q", flag.Shorthand)
	}
	if flag.DefValue != "false" {
		t.Errorf("Expected default value 'false', got %q", flag.DefValue)
	}
}
