package core

// ExecutionMode selects how a routed request is executed.
type ExecutionMode string

const (
	// ModeDirect performs a single reasoning pass.
	ModeDirect ExecutionMode = "direct"
	// ModePlan decomposes the request into ordered steps executed
	// sequentially under a budget.
	ModePlan ExecutionMode = "plan"
)

// RequestState carries all per-invocation state through the orchestration
// pipeline. It is created at request entry, owned exclusively by the
// orchestrator for the lifetime of the request and discarded once the
// response is emitted; selected fields are projected into the durable
// SessionRecord at finalization. It is never shared across goroutines.
type RequestState struct {
	UserInput      string
	SessionID      string
	SessionContext string

	// TargetAgent pins the agent explicitly, bypassing semantic routing
	// and forcing direct execution.
	TargetAgent string

	// PlanStepBudget caps the number of plan steps attempted this turn.
	// Zero means no explicit budget (the full plan length is used).
	PlanStepBudget int

	SelectedAgent   string
	RouteReason     string
	ExecutionMode   ExecutionMode
	ExecutionReason string

	Plan        *Plan
	StepResults []StepResult

	Response string
}
