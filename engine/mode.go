package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/agentpilot/core"
	"github.com/hupe1980/agentpilot/model"
	"github.com/hupe1980/agentpilot/prompt"
)

// modeDecision is the structured direct-vs-plan answer.
type modeDecision struct {
	Mode      string `json:"mode" description:"Either 'direct' for a single pass or 'plan' for multi-step decomposition"`
	Reasoning string `json:"reasoning" description:"Short explanation for the chosen mode"`
}

// decideMode chooses between direct and plan execution. An explicit target
// always forces direct mode; planning is never triggered when the caller
// pins the agent.
func (o *Orchestrator) decideMode(ctx context.Context, state *core.RequestState) error {
	if state.TargetAgent != "" {
		state.ExecutionMode = core.ModeDirect
		state.ExecutionReason = "explicit target bypasses planning"
		return nil
	}

	spec, err := o.agents.Get(state.SelectedAgent)
	if err != nil {
		return err
	}
	tools, err := o.tools.Resolve(spec.ToolNames, spec.ToolGroups)
	if err != nil {
		return err
	}
	toolNames := make([]string, len(tools))
	for i, t := range tools {
		toolNames[i] = t.Name()
	}

	instructions, err := o.prompts.GetPrompt(prompt.KeyModeDecider, map[string]any{
		"agent_id":          spec.ID,
		"agent_description": spec.Description,
		"tools":             strings.Join(toolNames, ", "),
		"session_context":   state.SessionContext,
	})
	if err != nil {
		return err
	}

	var decision modeDecision
	err = o.engine.Decide(ctx, model.Request{Instructions: instructions, Prompt: state.UserInput}, &decision)
	if err != nil {
		return fmt.Errorf("decide execution mode: %w", err)
	}

	if strings.EqualFold(strings.TrimSpace(decision.Mode), string(core.ModePlan)) {
		state.ExecutionMode = core.ModePlan
	} else {
		state.ExecutionMode = core.ModeDirect
	}
	state.ExecutionReason = decision.Reasoning
	return nil
}
