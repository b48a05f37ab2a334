package agent

import (
	"fmt"
)

// Registry maps task types to agents. It is built once at startup and
// read-only afterwards, so lookups need no locking.
type Registry struct {
	agents      map[string]Agent
	order       []string
	defaultType string
}

// NewRegistry builds a registry from the roster. The default type must
// name a registered agent; it is what unmatched task types resolve to.
func NewRegistry(agents []Agent, defaultType string) (*Registry, error) {
	if len(agents) == 0 {
		return nil, fmt.Errorf("no agents registered")
	}
	r := &Registry{
		agents:      make(map[string]Agent, len(agents)),
		defaultType: defaultType,
	}
	for _, a := range agents {
		if a.Type == "" {
			return nil, fmt.Errorf("agent %q has no type", a.Name)
		}
		if _, ok := r.agents[a.Type]; ok {
			return nil, fmt.Errorf("duplicate agent type %q", a.Type)
		}
		r.agents[a.Type] = a
		r.order = append(r.order, a.Type)
	}
	if _, ok := r.agents[defaultType]; !ok {
		return nil, fmt.Errorf("default agent type %q is not registered", defaultType)
	}
	return r, nil
}

// Resolve returns the agent registered for the task type. Unknown types
// resolve to the default agent with matched=false; the caller decides
// whether to treat that as a fallback or an error.
func (r *Registry) Resolve(taskType string) (Agent, bool) {
	if a, ok := r.agents[taskType]; ok {
		return a, true
	}
	return r.agents[r.defaultType], false
}

// DefaultType returns the type unmatched requests fall back to.
func (r *Registry) DefaultType() string {
	return r.defaultType
}

// List returns the agents in registration order.
func (r *Registry) List() []Agent {
	agents := make([]Agent, 0, len(r.order))
	for _, t := range r.order {
		agents = append(agents, r.agents[t])
	}
	return agents
}

// Types returns the registered task types in registration order.
func (r *Registry) Types() []string {
	types := make([]string, len(r.order))
	copy(types, r.order)
	return types
}
