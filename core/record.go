package core

import "time"

// RunHistoryLimit bounds the per-session run history; the oldest entries
// are evicted first.
const RunHistoryLimit = 20

// PersistedStep is the durable snapshot of one plan step, carrying the
// execution status and result accumulated across turns.
type PersistedStep struct {
	Title           string     `json:"title"`
	Instruction     string     `json:"instruction"`
	SuccessCriteria string     `json:"success_criteria"`
	Status          StepStatus `json:"status"`
	Result          string     `json:"result"`
}

// PersistedPlan is the plan as stored inside a session record. Unlike the
// request-scoped Plan it survives across turns and is reconciled, not
// replaced, when a later decomposition shares step titles with it.
type PersistedPlan struct {
	Objective string          `json:"objective"`
	Steps     []PersistedStep `json:"steps"`
}

// RunSummary captures one completed request for the session history.
type RunSummary struct {
	Timestamp       time.Time     `json:"timestamp"`
	UserInput       string        `json:"user_input"`
	Response        string        `json:"response"`
	SelectedAgent   string        `json:"selected_agent"`
	ExecutionMode   ExecutionMode `json:"execution_mode"`
	RouteReason     string        `json:"route_reason"`
	ExecutionReason string        `json:"execution_reason"`
	PromptVersion   string        `json:"prompt_version"`
}

// SessionRecord is the durable cross-turn state for one conversation,
// keyed by an opaque session id. It is read once at request entry and
// written back exactly once at finalization (read-modify-write; no
// intra-request mutation is visible to concurrent requests).
type SessionRecord struct {
	SessionID  string         `json:"session_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Plan       *PersistedPlan `json:"plan"`
	LastRun    *RunSummary    `json:"last_run"`
	RunHistory []RunSummary   `json:"run_history"`
}

// NewSessionRecord creates an empty record for the given session id.
func NewSessionRecord(sessionID string) *SessionRecord {
	now := time.Now().UTC()
	return &SessionRecord{
		SessionID:  sessionID,
		CreatedAt:  now,
		UpdatedAt:  now,
		RunHistory: []RunSummary{},
	}
}

// UpsertPlan merges a freshly built plan into the record. Steps whose
// titles match an already persisted step keep their prior status and
// result; new or renamed titles start out pending. Titles are the join
// key, so the planner must produce distinct titles within one plan.
func (r *SessionRecord) UpsertPlan(objective string, steps []PlanStep) {
	previous := map[string]PersistedStep{}
	if r.Plan != nil {
		for _, s := range r.Plan.Steps {
			previous[s.Title] = s
		}
	}

	normalized := make([]PersistedStep, len(steps))
	for i, step := range steps {
		old, ok := previous[step.Title]
		if !ok {
			old = PersistedStep{Status: StepPending}
		}
		normalized[i] = PersistedStep{
			Title:           step.Title,
			Instruction:     step.Instruction,
			SuccessCriteria: step.SuccessCriteria,
			Status:          old.Status,
			Result:          old.Result,
		}
	}

	r.Plan = &PersistedPlan{Objective: objective, Steps: normalized}
}

// ApplyStepResults copies this turn's step outcomes onto the persisted
// plan, matching by title. Results for titles not present in the
// persisted plan are ignored.
func (r *SessionRecord) ApplyStepResults(results []StepResult) {
	if r.Plan == nil {
		return
	}
	byTitle := map[string]int{}
	for i, s := range r.Plan.Steps {
		byTitle[s.Title] = i
	}
	for _, res := range results {
		i, ok := byTitle[res.Title]
		if !ok {
			continue
		}
		r.Plan.Steps[i].Status = res.Status
		r.Plan.Steps[i].Result = res.Result
	}
}

// SetLastRun records the outcome of the current request and appends it to
// the bounded run history, evicting the oldest entries beyond
// RunHistoryLimit.
func (r *SessionRecord) SetLastRun(run RunSummary) {
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now().UTC()
	}
	r.LastRun = &run
	r.RunHistory = append(r.RunHistory, run)
	if n := len(r.RunHistory); n > RunHistoryLimit {
		r.RunHistory = r.RunHistory[n-RunHistoryLimit:]
	}
}
