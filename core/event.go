package core

// EventType discriminates the progress events emitted while a request
// executes. Consumers switch on it; unknown types should be ignored.
type EventType string

const (
	EventToken      EventType = "token"
	EventStatus     EventType = "status"
	EventMetadata   EventType = "metadata"
	EventPlan       EventType = "plan"
	EventStepResult EventType = "step_result"
	EventError      EventType = "error"
	EventDone       EventType = "done"
)

// StreamEvent is one typed progress event. Only the fields relevant to
// its Type are populated; everything else stays empty and is omitted
// from the wire encoding.
type StreamEvent struct {
	Type EventType `json:"type"`

	// Content carries token text or a status/error message.
	Content string `json:"content,omitempty"`

	// Metadata carries structured annotations such as the routing
	// decision or the terminal stage marker.
	Metadata map[string]any `json:"metadata,omitempty"`

	// Plan is set on plan events.
	Plan *Plan `json:"plan,omitempty"`

	// StepResult is set on step_result events.
	StepResult *StepResult `json:"step_result,omitempty"`
}

// NewTokenEvent wraps a chunk of model output text.
func NewTokenEvent(text string) StreamEvent {
	return StreamEvent{Type: EventToken, Content: text}
}

// NewStatusEvent announces a lifecycle transition in human-readable form.
func NewStatusEvent(message string) StreamEvent {
	return StreamEvent{Type: EventStatus, Content: message}
}

// NewRoutingMetadataEvent reports the routing and mode decision taken
// for the request. It is the first event on every stream.
func NewRoutingMetadataEvent(sessionID, agent, routeReason string, mode ExecutionMode, executionReason, promptVersion string) StreamEvent {
	return StreamEvent{
		Type: EventMetadata,
		Metadata: map[string]any{
			"stage":            "routing",
			"session_id":       sessionID,
			"selected_agent":   agent,
			"route_reason":     routeReason,
			"execution_mode":   string(mode),
			"execution_reason": executionReason,
			"prompt_version":   promptVersion,
		},
	}
}

// NewDoneMetadataEvent marks the end of a stream. It is the last event
// emitted on every successfully finished stream.
func NewDoneMetadataEvent(sessionID string) StreamEvent {
	return StreamEvent{
		Type: EventMetadata,
		Metadata: map[string]any{
			"stage":      "done",
			"session_id": sessionID,
		},
	}
}

// NewPlanEvent publishes the decomposition chosen for the request.
func NewPlanEvent(plan *Plan) StreamEvent {
	return StreamEvent{Type: EventPlan, Plan: plan}
}

// NewStepResultEvent reports the outcome of a single executed step.
func NewStepResultEvent(result StepResult) StreamEvent {
	return StreamEvent{Type: EventStepResult, StepResult: &result}
}

// NewErrorEvent converts a mid-stream failure into a consumable event.
func NewErrorEvent(err error) StreamEvent {
	return StreamEvent{Type: EventError, Content: err.Error()}
}
