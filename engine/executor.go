package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/agentpilot/agent"
	"github.com/hupe1980/agentpilot/core"
	"github.com/hupe1980/agentpilot/logging"
	"github.com/hupe1980/agentpilot/model"
	"github.com/hupe1980/agentpilot/prompt"
)

// runDirect answers the request in a single engine pass under the selected
// agent's runtime instructions. The engine output is the final response
// verbatim.
func (o *Orchestrator) runDirect(ctx context.Context, state *core.RequestState, spec agent.Spec, traceTools, streaming bool, emit func(core.StreamEvent)) error {
	req := model.Request{
		Instructions: spec.RuntimeInstructions(),
		Prompt:       state.UserInput,
	}

	response, err := o.callModel(ctx, req, traceTools, streaming, emit)
	if err != nil {
		return fmt.Errorf("direct execution: %w", err)
	}

	state.Response = response
	return nil
}

// runPlan executes the plan's steps sequentially under a hard step budget.
// A step failure stops the loop immediately; remaining steps stay pending.
// When every step completes, one synthesis pass produces the final answer.
// Otherwise the response is a templated progress report and no further
// engine call is made.
func (o *Orchestrator) runPlan(ctx context.Context, state *core.RequestState, spec agent.Spec, traceTools, streaming bool, emit func(core.StreamEvent)) error {
	steps := state.Plan.Steps
	state.StepResults = core.NewStepResults(state.Plan)

	budget := state.PlanStepBudget
	if budget <= 0 {
		budget = o.defaultBudget
	}
	if budget <= 0 {
		budget = len(steps)
	}
	if budget < 1 {
		budget = 1
	}

	instructions := spec.RuntimeInstructions()
	budgetCutoff := false
	var completed []string

	for i, step := range steps {
		if i >= budget {
			budgetCutoff = true
			break
		}

		emit(core.NewStatusEvent(fmt.Sprintf("Executing step %d/%d: %s", i+1, len(steps), step.Title)))

		stepPrompt, err := o.prompts.GetPrompt(prompt.KeyStepExecutor, map[string]any{
			"step_index":       i + 1,
			"step_count":       len(steps),
			"user_input":       state.UserInput,
			"objective":        state.Plan.Objective,
			"completed_steps":  orNone(strings.Join(completed, "\n")),
			"step_title":       step.Title,
			"step_instruction": step.Instruction,
			"success_criteria": step.SuccessCriteria,
			"session_context":  state.SessionContext,
		})
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := o.engine.Generate(ctx, model.Request{Instructions: instructions, Prompt: stepPrompt})
		logging.LogStepExecution(o.logger, state.SessionID, step.Title, i+1, len(steps), time.Since(start), err)

		if err != nil {
			state.StepResults[i].Status = core.StepFailed
			state.StepResults[i].Result = err.Error()
			break
		}

		state.StepResults[i].Status = core.StepCompleted
		state.StepResults[i].Result = result
		completed = append(completed, fmt.Sprintf("%d. %s: %s", i+1, step.Title, result))
		emit(core.NewStepResultEvent(state.StepResults[i]))
	}

	if core.AllCompleted(state.StepResults) {
		return o.synthesize(ctx, state, spec, traceTools, streaming, emit)
	}

	state.Response = progressReport(state.StepResults, budgetCutoff, budget)
	return nil
}

// synthesize merges all completed step results into one coherent answer via
// a final engine call.
func (o *Orchestrator) synthesize(ctx context.Context, state *core.RequestState, spec agent.Spec, traceTools, streaming bool, emit func(core.StreamEvent)) error {
	var rendered []string
	for i, r := range state.StepResults {
		rendered = append(rendered, fmt.Sprintf("%d. %s: %s", i+1, r.Title, r.Result))
	}

	synthPrompt, err := o.prompts.GetPrompt(prompt.KeySynthesizer, map[string]any{
		"user_input":      state.UserInput,
		"objective":       state.Plan.Objective,
		"step_results":    strings.Join(rendered, "\n"),
		"session_context": state.SessionContext,
	})
	if err != nil {
		return err
	}

	response, err := o.callModel(ctx, model.Request{Instructions: spec.RuntimeInstructions(), Prompt: synthPrompt}, traceTools, streaming, emit)
	if err != nil {
		return fmt.Errorf("synthesize plan results: %w", err)
	}

	state.Response = response
	return nil
}

// callModel runs one engine call, streaming it through the event adapter
// when the caller is on the streaming path and blocking otherwise.
func (o *Orchestrator) callModel(ctx context.Context, req model.Request, traceTools, streaming bool, emit func(core.StreamEvent)) (string, error) {
	start := time.Now()

	var (
		response string
		err      error
	)
	if streaming {
		response, err = o.streamModel(ctx, req, traceTools, emit)
	} else {
		response, err = o.engine.Generate(ctx, req)
	}

	logging.LogModelCall(o.logger, o.engine.Info().Name, time.Since(start), err)

	return response, err
}

// progressReport renders the deterministic partial-execution response. It is
// the only response shape for plans that did not fully complete; no engine
// call is involved.
func progressReport(results []core.StepResult, budgetCutoff bool, budget int) string {
	var b strings.Builder

	b.WriteString("The plan was not fully completed.\n\n")
	b.WriteString("Completed steps: ")
	b.WriteString(joinOrNone(core.TitlesByStatus(results, core.StepCompleted)))
	b.WriteString("\nPending steps: ")
	b.WriteString(joinOrNone(core.TitlesByStatus(results, core.StepPending)))
	b.WriteString("\nFailed steps: ")
	b.WriteString(joinOrNone(core.TitlesByStatus(results, core.StepFailed)))

	if budgetCutoff {
		fmt.Fprintf(&b, "\n\nExecution stopped after reaching the step budget of %d.", budget)
	}

	return b.String()
}

func joinOrNone(titles []string) string {
	if len(titles) == 0 {
		return "None"
	}
	return strings.Join(titles, ", ")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}
