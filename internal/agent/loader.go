package agent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultType is the capability unmatched task types fall back to
// unless configured otherwise.
const DefaultType = "general"

// Builtin returns the default roster used when no roster file is
// configured.
func Builtin() []Agent {
	return []Agent{
		{Type: "researcher", Name: "Research Agent", Role: "Researcher", Goal: "Find and analyze information"},
		{Type: "writer", Name: "Writer Agent", Role: "Content Creator", Goal: "Create engaging content"},
		{Type: "analyst", Name: "Data Analyst", Role: "Analyst", Goal: "Analyze data and provide insights"},
		{Type: DefaultType, Name: "General Agent", Role: "Generalist", Goal: "Handle tasks with no dedicated agent"},
	}
}

type rosterFile struct {
	Agents  []Agent `yaml:"agents"`
	Default string  `yaml:"default"`
}

// LoadRoster reads an agent roster from a YAML file. The file's default
// entry is optional; the returned default falls back to DefaultType.
func LoadRoster(path string) ([]Agent, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read roster %s: %w", path, err)
	}
	var roster rosterFile
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, "", fmt.Errorf("failed to parse roster %s: %w", path, err)
	}
	if len(roster.Agents) == 0 {
		return nil, "", fmt.Errorf("roster %s defines no agents", path)
	}
	defaultType := roster.Default
	if defaultType == "" {
		defaultType = DefaultType
	}
	return roster.Agents, defaultType, nil
}
