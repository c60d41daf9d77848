package core

const (
	// MinPlanSteps is the smallest step count a usable plan may have.
	// Plans below this are replaced with a single fallback step.
	MinPlanSteps = 2
	// MaxPlanSteps is the hard ceiling on plan length; longer
	// decompositions are truncated.
	MaxPlanSteps = 6
)

// StepStatus tracks the lifecycle of a single plan step.
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
)

// PlanStep is one unit of work inside a plan. All fields are non-empty by
// contract of the planner; they are not re-validated downstream.
type PlanStep struct {
	Title           string `json:"title"`
	Instruction     string `json:"instruction"`
	SuccessCriteria string `json:"success_criteria"`
}

// Plan is an ordered task decomposition produced by the planner.
type Plan struct {
	Objective string     `json:"objective"`
	Steps     []PlanStep `json:"steps"`
}

// StepResult records the outcome of executing one plan step. Results are
// created all-pending before execution begins and mutated in place as
// steps run. Title is the join key back to the originating PlanStep.
type StepResult struct {
	Title  string     `json:"title"`
	Status StepStatus `json:"status"`
	Result string     `json:"result"`
}

// NewStepResults builds the pending result slot for every step of a plan,
// preserving order.
func NewStepResults(p *Plan) []StepResult {
	results := make([]StepResult, len(p.Steps))
	for i, step := range p.Steps {
		results[i] = StepResult{Title: step.Title, Status: StepPending}
	}
	return results
}

// AllCompleted reports whether every step finished successfully. An empty
// slice counts as not completed so the synthesis pass never runs without
// step output to merge.
func AllCompleted(results []StepResult) bool {
	if len(results) == 0 {
		return false
	}
	for _, r := range results {
		if r.Status != StepCompleted {
			return false
		}
	}
	return true
}

// TitlesByStatus returns the titles of all results carrying the given
// status, in plan order.
func TitlesByStatus(results []StepResult, status StepStatus) []string {
	var titles []string
	for _, r := range results {
		if r.Status == status {
			titles = append(titles, r.Title)
		}
	}
	return titles
}
