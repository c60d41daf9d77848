package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/agentpilot/core"
	"github.com/hupe1980/agentpilot/model"
	"github.com/hupe1980/agentpilot/prompt"
)

// planDecision is the structured decomposition requested from the engine.
type planDecision struct {
	Objective string             `json:"objective" description:"One sentence stating the overall objective"`
	Steps     []planStepDecision `json:"steps" description:"Ordered execution steps"`
}

type planStepDecision struct {
	Title           string `json:"title" description:"Short unique label for the step"`
	Instruction     string `json:"instruction" description:"Precise instruction for executing the step"`
	SuccessCriteria string `json:"success_criteria" description:"How to verify the step is complete"`
}

// fallbackStep replaces a decomposition too small to be a real plan.
var fallbackStep = core.PlanStep{
	Title:           "Execute request",
	Instruction:     "complete the request directly with available tools",
	SuccessCriteria: "The user's request has been fully addressed.",
}

// buildPlan asks the engine for a decomposition and enforces the plan shape
// locally: at most MaxPlanSteps steps, a single canonical fallback step when
// fewer than MinPlanSteps remain, and an objective defaulting to the raw
// user input. Engine output is never trusted to respect these bounds.
func (o *Orchestrator) buildPlan(ctx context.Context, state *core.RequestState) error {
	instructions, err := o.prompts.GetPrompt(prompt.KeyPlanner, map[string]any{
		"min_steps":       core.MinPlanSteps,
		"max_steps":       core.MaxPlanSteps,
		"session_context": state.SessionContext,
	})
	if err != nil {
		return err
	}

	var decision planDecision
	err = o.engine.Decide(ctx, model.Request{Instructions: instructions, Prompt: state.UserInput}, &decision)
	if err != nil {
		return fmt.Errorf("build plan: %w", err)
	}

	steps := make([]core.PlanStep, 0, len(decision.Steps))
	for _, s := range decision.Steps {
		steps = append(steps, core.PlanStep{
			Title:           s.Title,
			Instruction:     s.Instruction,
			SuccessCriteria: s.SuccessCriteria,
		})
	}
	if len(steps) > core.MaxPlanSteps {
		steps = steps[:core.MaxPlanSteps]
	}
	if len(steps) < core.MinPlanSteps {
		steps = []core.PlanStep{fallbackStep}
	}

	objective := strings.TrimSpace(decision.Objective)
	if objective == "" {
		objective = state.UserInput
	}

	state.Plan = &core.Plan{Objective: objective, Steps: steps}
	return nil
}
