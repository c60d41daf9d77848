// Package agent defines the formal agent specifications the orchestrator
// routes between. A Spec is static configuration: identity, routing
// description, persona shaping, scope boundaries and the tool sets the agent
// may draw on.
package agent

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultAgentID is the agent used when routing cannot settle on a better fit.
const DefaultAgentID = "general_assistant"

// Spec is the formal specification for an agent.
type Spec struct {
	// ID is the unique snake_case identifier of the agent.
	ID string `json:"id"`
	// Description is a high-level summary used for semantic routing.
	Description string `json:"description"`
	// Role is the formal operational definition of the agent's persona.
	Role string `json:"role"`
	// Backstory is historical or context framing for behavior shaping.
	Backstory string `json:"backstory,omitempty"`
	// Goals is an ordered objective list to bias execution priorities.
	Goals []string `json:"goals,omitempty"`
	// Boundary states explicit constraints on what the agent should NOT do.
	Boundary string `json:"boundary"`
	// Instructions is the core instruction set used by the LLM.
	Instructions string `json:"instructions"`
	// ToolNames lists explicit tool IDs assigned to this agent.
	ToolNames []string `json:"tool_names,omitempty"`
	// ToolGroups lists predefined tool group IDs assigned to this agent.
	ToolGroups []string `json:"tool_groups,omitempty"`
}

// RuntimeInstructions builds the final system prompt from the structured
// identity plus the base instruction set. Empty sections are omitted; the
// section order is fixed.
func (s Spec) RuntimeInstructions() string {
	var sections []string
	if s.Role != "" {
		sections = append(sections, fmt.Sprintf("** Role **: %s", s.Role))
	}
	if s.Backstory != "" {
		sections = append(sections, fmt.Sprintf("** Backstory **: %s", s.Backstory))
	}
	if len(s.Goals) > 0 {
		var lines []string
		for _, goal := range s.Goals {
			if strings.TrimSpace(goal) == "" {
				continue
			}
			lines = append(lines, "- "+goal)
		}
		if len(lines) > 0 {
			sections = append(sections, fmt.Sprintf("** Goals **:\n%s", strings.Join(lines, "\n")))
		}
	}
	if s.Boundary != "" {
		sections = append(sections, fmt.Sprintf("** Operating boundaries **: %s", s.Boundary))
	}
	if s.Instructions != "" {
		sections = append(sections, fmt.Sprintf("** Core instructions **: %s", s.Instructions))
	}
	return strings.TrimSpace(strings.Join(sections, "\n\n"))
}

// Registry holds the known agent specifications keyed by id.
type Registry struct {
	agents map[string]Spec
}

// NewRegistry builds a registry preloaded with the builtin agents.
func NewRegistry() *Registry {
	r := &Registry{agents: map[string]Spec{}}
	for _, spec := range builtinAgents {
		r.Register(spec)
	}
	return r
}

// Register adds or replaces an agent spec.
func (r *Registry) Register(spec Spec) { r.agents[spec.ID] = spec }

// Get returns the named agent or an error if it is unknown.
func (r *Registry) Get(id string) (Spec, error) {
	spec, ok := r.agents[id]
	if !ok {
		return Spec{}, fmt.Errorf("unknown agent: %s", id)
	}
	return spec, nil
}

// Has reports whether an agent id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.agents[id]
	return ok
}

// List returns all registered agents sorted by id.
func (r *Registry) List() []Spec {
	ids := make([]string, 0, len(r.agents))
	for id := range r.agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	specs := make([]Spec, len(ids))
	for i, id := range ids {
		specs[i] = r.agents[id]
	}
	return specs
}

// Descriptions returns the id to routing description map used to build
// routing prompts.
func (r *Registry) Descriptions() map[string]string {
	out := make(map[string]string, len(r.agents))
	for id, spec := range r.agents {
		out[id] = spec.Description
	}
	return out
}
