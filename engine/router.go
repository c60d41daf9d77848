package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hupe1980/agentpilot/agent"
	"github.com/hupe1980/agentpilot/core"
	"github.com/hupe1980/agentpilot/model"
	"github.com/hupe1980/agentpilot/prompt"
)

// routeDecision is the structured answer requested from the reasoning engine
// when no explicit target is given.
type routeDecision struct {
	SelectedAgent string `json:"selected_agent" description:"The ID of the agent to route the request to"`
	Reasoning     string `json:"reasoning" description:"Short explanation for why this agent was selected"`
}

// route selects an agent for the request. An explicit target short-circuits
// without an engine call; otherwise the engine makes a structured decision
// against the agent catalog. The route reason always distinguishes explicit,
// LLM and fallback provenance.
func (o *Orchestrator) route(ctx context.Context, state *core.RequestState) error {
	if state.TargetAgent != "" {
		if o.agents.Has(state.TargetAgent) {
			state.SelectedAgent = state.TargetAgent
			state.RouteReason = fmt.Sprintf("Explicitly targeted: %s", state.TargetAgent)
			return nil
		}
		state.SelectedAgent = agent.DefaultAgentID
		state.RouteReason = fmt.Sprintf("Routing fallback: unknown agent %q, using %s", state.TargetAgent, agent.DefaultAgentID)
		return nil
	}

	instructions, err := o.prompts.GetPrompt(prompt.KeyRouter, map[string]any{
		"agent_list":      o.agentList(),
		"session_context": state.SessionContext,
	})
	if err != nil {
		return err
	}

	var decision routeDecision
	err = o.engine.Decide(ctx, model.Request{Instructions: instructions, Prompt: state.UserInput}, &decision)
	if err != nil {
		return fmt.Errorf("route request: %w", err)
	}

	if !o.agents.Has(decision.SelectedAgent) {
		o.logger.Warn("router selected unknown agent", "agent", decision.SelectedAgent)
		state.SelectedAgent = agent.DefaultAgentID
		state.RouteReason = fmt.Sprintf("Routing fallback: engine selected unknown agent %q, using %s", decision.SelectedAgent, agent.DefaultAgentID)
		return nil
	}

	state.SelectedAgent = decision.SelectedAgent
	state.RouteReason = fmt.Sprintf("LLM Routing: %s", decision.Reasoning)
	return nil
}

// agentList renders the catalog as "- id: description" lines, sorted by id
// for deterministic prompts.
func (o *Orchestrator) agentList() string {
	descriptions := o.agents.Descriptions()
	ids := make([]string, 0, len(descriptions))
	for id := range descriptions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var lines []string
	for _, id := range ids {
		lines = append(lines, fmt.Sprintf("- %s: %s", id, descriptions[id]))
	}
	return strings.Join(lines, "\n")
}
