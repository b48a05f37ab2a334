package agent

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRoster(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agents.yaml")
	roster := `agents:
  - type: researcher
    name: Research Agent
    role: Researcher
    goal: Find and analyze information
  - type: support
    name: Support Agent
    role: Support
    goal: Answer customer questions
default: support
`
	if err := os.WriteFile(path, []byte(roster), 0o644); err != nil {
		t.Fatalf("failed to write roster: %v", err)
	}

	agents, defaultType, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("LoadRoster failed: %v", err)
	}
	if len(agents) != 2 {
		t.Fatalf("expected 2 agents, got %d", len(agents))
	}
	if agents[1].Type != "support" {
		t.Errorf("expected support agent, got %s", agents[1].Type)
	}
	if defaultType != "support" {
		t.Errorf("expected default support, got %s", defaultType)
	}
}

func TestLoadRosterDefaultFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agents.yaml")
	roster := `agents:
  - type: general
    name: General Agent
`
	if err := os.WriteFile(path, []byte(roster), 0o644); err != nil {
		t.Fatalf("failed to write roster: %v", err)
	}

	_, defaultType, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("LoadRoster failed: %v", err)
	}
	if defaultType != DefaultType {
		t.Errorf("expected default %q, got %q", DefaultType, defaultType)
	}
}

func TestLoadRosterMissingFile(t *testing.T) {
	_, _, err := LoadRoster("/nonexistent/agents.yaml")
	if err == nil {
		t.Error("expected error for missing roster file")
	}
}

func TestLoadRosterEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agents.yaml")
	if err := os.WriteFile(path, []byte("agents: []\n"), 0o644); err != nil {
		t.Fatalf("failed to write roster: %v", err)
	}
	_, _, err := LoadRoster(path)
	if err == nil {
		t.Error("expected error for empty roster")
	}
}
