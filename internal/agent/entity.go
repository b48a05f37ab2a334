package agent

// Agent describes a worker that handles one task type. Agents are
// immutable once the registry is built.
type Agent struct {
	Type string `yaml:"type" json:"type"`
	Name string `yaml:"name" json:"name"`
	Role string `yaml:"role" json:"role"`
	Goal string `yaml:"goal" json:"goal"`
}
