// Package engine implements the request-execution state machine: routing,
// execution-mode selection, plan construction, the budgeted fail-fast step
// executor with a synthesis pass, and the typed progress-event stream.
//
// Control flow per request:
//
//	ROUTE → DECIDE_MODE → {RUN_DIRECT | BUILD_PLAN → RUN_PLAN} → FINALIZE
//
// There is no retry edge back into earlier states within one request: a
// failed plan step does not re-route or re-plan. Session persistence happens
// exactly once, at finalize, after the full response is known.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/agentpilot/agent"
	"github.com/hupe1980/agentpilot/core"
	"github.com/hupe1980/agentpilot/logging"
	"github.com/hupe1980/agentpilot/model"
	"github.com/hupe1980/agentpilot/prompt"
	"github.com/hupe1980/agentpilot/session"
	"github.com/hupe1980/agentpilot/tool"
)

// Request is one inbound invocation.
type Request struct {
	// Input is the user's natural language request. Required.
	Input string
	// AgentID explicitly targets an agent, bypassing routing and forcing
	// direct mode.
	AgentID string
	// SessionID continues an existing conversation. Empty mints a new id.
	SessionID string
	// PlanStepBudget caps the number of plan steps attempted. Zero falls
	// back to the configured default, then to the plan length.
	PlanStepBudget int
	// TraceTools opts the streaming path into tool status events.
	TraceTools bool
}

// Result is the outcome of a non-streaming invocation.
type Result struct {
	Response        string             `json:"response"`
	SessionID       string             `json:"session_id"`
	SelectedAgent   string             `json:"selected_agent"`
	RouteReason     string             `json:"route_reason"`
	ExecutionMode   core.ExecutionMode `json:"execution_mode"`
	ExecutionReason string             `json:"execution_reason"`
	Plan            *core.Plan         `json:"plan,omitempty"`
	StepResults     []core.StepResult  `json:"step_results,omitempty"`
	PromptVersion   string             `json:"prompt_version"`
}

// Options configures an Orchestrator via the functional options pattern.
type Options struct {
	// Agents is the agent catalog. Defaults to the builtin registry.
	Agents *agent.Registry
	// Tools is the tool catalog. Defaults to the builtin registry.
	Tools *tool.Registry
	// Store persists session records. Defaults to in-memory.
	Store session.Store
	// Logger receives structured diagnostics. Defaults to NoOp.
	Logger logging.Logger
	// DefaultPlanStepBudget applies when a request carries no budget.
	// Zero means run every planned step.
	DefaultPlanStepBudget int
}

// Orchestrator coordinates one reasoning engine, the agent and tool catalogs,
// the prompt store and the session store into the request state machine.
// It is safe for concurrent use; requests share no mutable state beyond the
// session store, which follows last-writer-wins per session id.
type Orchestrator struct {
	engine        model.Engine
	prompts       *prompt.Manager
	agents        *agent.Registry
	tools         *tool.Registry
	store         session.Store
	logger        logging.Logger
	defaultBudget int
}

// New creates an Orchestrator around the given reasoning engine and prompt
// manager, with in-memory defaults for everything else.
func New(eng model.Engine, prompts *prompt.Manager, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{
		Agents: agent.NewRegistry(),
		Tools:  tool.NewRegistry(),
		Store:  session.NewInMemoryStore(),
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Orchestrator{
		engine:        eng,
		prompts:       prompts,
		agents:        opts.Agents,
		tools:         opts.Tools,
		store:         opts.Store,
		logger:        opts.Logger,
		defaultBudget: opts.DefaultPlanStepBudget,
	}
}

// Agents exposes the agent catalog for listing surfaces.
func (o *Orchestrator) Agents() *agent.Registry { return o.agents }

// Tools exposes the tool catalog for listing surfaces.
func (o *Orchestrator) Tools() *tool.Registry { return o.tools }

// Prompts exposes the prompt manager for version management surfaces.
func (o *Orchestrator) Prompts() *prompt.Manager { return o.prompts }

// Invoke executes one request to completion and returns the final result.
// Reasoning engine failures during routing, mode decision, planning, direct
// execution or synthesis propagate as errors with nothing persisted; only
// step failures inside the plan loop degrade gracefully.
func (o *Orchestrator) Invoke(ctx context.Context, req Request) (*Result, error) {
	return o.run(ctx, req, discardEvents, false)
}

// discardEvents is the emitter used by the non-streaming path.
func discardEvents(core.StreamEvent) {}

// run drives the state machine, emitting progress events through emit. It is
// shared by Invoke and Stream; streaming selects the engine's incremental
// API for the direct and synthesis calls.
func (o *Orchestrator) run(ctx context.Context, req Request, emit func(core.StreamEvent), streaming bool) (*Result, error) {
	if strings.TrimSpace(req.Input) == "" {
		return nil, fmt.Errorf("user input must not be empty")
	}

	defer logging.StartTimer(o.logger, "handle request")()

	record, err := o.store.GetOrCreate(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("get or create session: %w", err)
	}

	promptVersion, err := o.prompts.GetActiveVersion()
	if err != nil {
		return nil, fmt.Errorf("resolve prompt version: %w", err)
	}

	state := &core.RequestState{
		UserInput:      req.Input,
		SessionID:      record.SessionID,
		SessionContext: session.BuildContext(record),
		TargetAgent:    req.AgentID,
		PlanStepBudget: req.PlanStepBudget,
	}

	// ROUTE
	if err := o.route(ctx, state); err != nil {
		return nil, err
	}

	// DECIDE_MODE
	if err := o.decideMode(ctx, state); err != nil {
		return nil, err
	}

	logging.LogRouting(o.logger, state.SessionID, state.SelectedAgent, state.RouteReason, string(state.ExecutionMode))
	emit(core.NewRoutingMetadataEvent(state.SessionID, state.SelectedAgent, state.RouteReason, state.ExecutionMode, state.ExecutionReason, promptVersion))

	spec, err := o.agents.Get(state.SelectedAgent)
	if err != nil {
		return nil, err
	}

	switch state.ExecutionMode {
	case core.ModeDirect:
		if err := o.runDirect(ctx, state, spec, req.TraceTools, streaming, emit); err != nil {
			return nil, err
		}
	case core.ModePlan:
		// BUILD_PLAN
		if err := o.buildPlan(ctx, state); err != nil {
			return nil, err
		}
		emit(core.NewPlanEvent(state.Plan))
		// RUN_PLAN
		if err := o.runPlan(ctx, state, spec, req.TraceTools, streaming, emit); err != nil {
			return nil, err
		}
	}

	// FINALIZE
	if err := o.finalize(ctx, record, state, promptVersion); err != nil {
		return nil, err
	}
	emit(core.NewDoneMetadataEvent(state.SessionID))

	return &Result{
		Response:        state.Response,
		SessionID:       state.SessionID,
		SelectedAgent:   state.SelectedAgent,
		RouteReason:     state.RouteReason,
		ExecutionMode:   state.ExecutionMode,
		ExecutionReason: state.ExecutionReason,
		Plan:            state.Plan,
		StepResults:     state.StepResults,
		PromptVersion:   promptVersion,
	}, nil
}

// finalize projects the request outcome into the session record and saves it
// exactly once.
func (o *Orchestrator) finalize(ctx context.Context, record *core.SessionRecord, state *core.RequestState, promptVersion string) error {
	if state.Plan != nil {
		record.UpsertPlan(state.Plan.Objective, state.Plan.Steps)
		record.ApplyStepResults(state.StepResults)
	}
	record.SetLastRun(core.RunSummary{
		UserInput:       state.UserInput,
		Response:        state.Response,
		SelectedAgent:   state.SelectedAgent,
		ExecutionMode:   state.ExecutionMode,
		RouteReason:     state.RouteReason,
		ExecutionReason: state.ExecutionReason,
		PromptVersion:   promptVersion,
	})
	if err := o.store.Save(ctx, record); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
