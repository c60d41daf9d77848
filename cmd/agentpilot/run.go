package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hupe1980/agentpilot"
	"github.com/hupe1980/agentpilot/core"
	"github.com/hupe1980/agentpilot/engine"
)

var (
	runAgent      string
	runSession    string
	runStepBudget int
	runStream     bool
	runTraceTools bool
)

var runCmd = &cobra.Command{
	Use:   "run <request...>",
	Short: "Execute one request",
	Long: `Execute a single request through the full pipeline: routing, mode
decision, optional planning and the final response.

Examples:
  agentpilot run "What is 2+2?"
  agentpilot run --agent analysis_assistant "Summarize my spending"
  agentpilot run --stream --trace-tools "Research and compare two options"
  agentpilot run --session 2f9d... "And what about last month?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runAgent, "agent", "", "Explicitly target an agent, bypassing routing")
	runCmd.Flags().StringVar(&runSession, "session", "", "Session id to continue a conversation")
	runCmd.Flags().IntVar(&runStepBudget, "plan-step-budget", 0, "Maximum plan steps to attempt (0 = all)")
	runCmd.Flags().BoolVar(&runStream, "stream", false, "Stream progress events as they happen")
	runCmd.Flags().BoolVar(&runTraceTools, "trace-tools", false, "Show tool activity in the stream")
}

func runRun(cmd *cobra.Command, args []string) error {
	pilot, _, err := loadPilot()
	if err != nil {
		return err
	}

	req := engine.Request{
		Input:          strings.Join(args, " "),
		AgentID:        runAgent,
		SessionID:      runSession,
		PlanStepBudget: runStepBudget,
		TraceTools:     runTraceTools,
	}

	if runStream {
		return streamRun(cmd.Context(), pilot, req)
	}

	result, err := pilot.Invoke(cmd.Context(), req)
	if err != nil {
		return err
	}

	color.New(color.FgCyan).Printf("[%s | %s]\n", result.SelectedAgent, result.ExecutionMode)
	color.New(color.Faint).Printf("%s\n\n", result.RouteReason)
	fmt.Println(result.Response)
	color.New(color.Faint).Printf("\nsession: %s\n", result.SessionID)
	return nil
}

func streamRun(ctx context.Context, pilot *agentpilot.AgentPilot, req engine.Request) error {
	eventCh, errCh := pilot.Stream(ctx, req)

	for event := range eventCh {
		renderEvent(event)
	}
	if err := <-errCh; err != nil {
		return err
	}
	fmt.Println()
	return nil
}

func renderEvent(event core.StreamEvent) {
	switch event.Type {
	case core.EventToken:
		fmt.Print(event.Content)
	case core.EventStatus:
		color.New(color.FgYellow).Printf("\n> %s\n", event.Content)
	case core.EventMetadata:
		renderMetadata(event.Metadata)
	case core.EventPlan:
		renderPlan(event.Plan)
	case core.EventStepResult:
		color.New(color.FgGreen).Printf("\n[done] %s\n", event.StepResult.Title)
	case core.EventError:
		color.New(color.FgRed).Printf("\nerror: %s\n", event.Content)
	}
}

func renderMetadata(metadata map[string]any) {
	switch metadata["stage"] {
	case "routing":
		color.New(color.FgCyan).Printf("[%v | %v]\n", metadata["selected_agent"], metadata["execution_mode"])
		color.New(color.Faint).Printf("%v\n", metadata["route_reason"])
		if version, ok := metadata["prompt_version"].(string); ok && version != "" {
			color.New(color.Faint).Printf("prompts: %v\n", version)
		}
	case "done":
		color.New(color.Faint).Printf("\nsession: %v\n", metadata["session_id"])
	}
}

func renderPlan(plan *core.Plan) {
	if plan == nil {
		return
	}
	color.New(color.FgMagenta).Printf("\nPlan: %s\n", plan.Objective)
	for i, step := range plan.Steps {
		fmt.Printf("  %d. %s\n", i+1, step.Title)
	}
}
