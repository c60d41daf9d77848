package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentpilot/core"
	"github.com/hupe1980/agentpilot/model"
)

func collectEvents(t *testing.T, eventCh <-chan core.StreamEvent, errCh <-chan error) ([]core.StreamEvent, error) {
	t.Helper()
	var events []core.StreamEvent
	for event := range eventCh {
		events = append(events, event)
	}
	return events, <-errCh
}

func eventTypes(events []core.StreamEvent) []core.EventType {
	types := make([]core.EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

func TestStreamDirectOrdering(t *testing.T) {
	eng := &scriptedEngine{
		generateFn: func(_ int, _ model.Request) (string, error) { return "streamed answer", nil },
	}
	o, _ := newTestOrchestrator(t, eng)

	eventCh, errCh := o.Stream(context.Background(), Request{Input: "hello", AgentID: "general_assistant"})
	events, err := collectEvents(t, eventCh, errCh)
	require.NoError(t, err)
	require.NotEmpty(t, events)

	first := events[0]
	assert.Equal(t, core.EventMetadata, first.Type)
	assert.Equal(t, "routing", first.Metadata["stage"])
	assert.Equal(t, "general_assistant", first.Metadata["selected_agent"])

	last := events[len(events)-1]
	assert.Equal(t, core.EventMetadata, last.Type)
	assert.Equal(t, "done", last.Metadata["stage"])
	assert.NotEmpty(t, last.Metadata["session_id"])

	var tokens string
	sawToken := false
	for _, e := range events[1 : len(events)-1] {
		if e.Type == core.EventToken {
			sawToken = true
			tokens += e.Content
		}
	}
	assert.True(t, sawToken, "stream must contain at least one token event")
	assert.Equal(t, "streamed answer", tokens)
}

func TestStreamPlanEventSequence(t *testing.T) {
	eng := &scriptedEngine{
		decisions: planScript(2),
		generateFn: func(call int, _ model.Request) (string, error) {
			return fmt.Sprintf("result %d", call), nil
		},
	}
	o, _ := newTestOrchestrator(t, eng)

	eventCh, errCh := o.Stream(context.Background(), Request{Input: "big task"})
	events, err := collectEvents(t, eventCh, errCh)
	require.NoError(t, err)

	types := eventTypes(events)
	assert.Equal(t, core.EventMetadata, types[0])

	// plan precedes step activity, statuses and step results interleave in
	// step order, done closes the stream
	var sequence []string
	for _, e := range events {
		switch e.Type {
		case core.EventPlan:
			sequence = append(sequence, "plan")
		case core.EventStatus:
			sequence = append(sequence, "status:"+e.Content)
		case core.EventStepResult:
			sequence = append(sequence, "step:"+e.StepResult.Title)
		}
	}
	assert.Equal(t, []string{
		"plan",
		"status:Executing step 1/2: Step 1",
		"step:Step 1",
		"status:Executing step 2/2: Step 2",
		"step:Step 2",
	}, sequence)

	assert.Equal(t, core.EventMetadata, types[len(types)-1])
	assert.Equal(t, "done", events[len(events)-1].Metadata["stage"])
}

func TestStreamErrorEvent(t *testing.T) {
	eng := &scriptedEngine{
		decisions: []string{`garbage`},
	}
	o, _ := newTestOrchestrator(t, eng)

	eventCh, errCh := o.Stream(context.Background(), Request{Input: "hello"})
	events, err := collectEvents(t, eventCh, errCh)
	require.Error(t, err)

	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, core.EventError, last.Type)
	assert.Contains(t, last.Content, "route request")
}

func TestStreamModelNonStreamingFallback(t *testing.T) {
	// engine emits only a final output, no incremental deltas
	eng := &finalOnlyEngine{out: "final only"}
	o, _ := newTestOrchestrator(t, eng)

	eventCh, errCh := o.Stream(context.Background(), Request{Input: "hello", AgentID: "general_assistant"})
	events, err := collectEvents(t, eventCh, errCh)
	require.NoError(t, err)

	var tokens []string
	for _, e := range events {
		if e.Type == core.EventToken {
			tokens = append(tokens, e.Content)
		}
	}
	require.Len(t, tokens, 1)
	assert.Equal(t, "final only", tokens[0])
}

func TestStreamToolTracing(t *testing.T) {
	eng := &toolNoiseEngine{}

	t.Run("enabled", func(t *testing.T) {
		o, _ := newTestOrchestrator(t, eng)
		eventCh, errCh := o.Stream(context.Background(), Request{Input: "calc", AgentID: "general_assistant", TraceTools: true})
		events, err := collectEvents(t, eventCh, errCh)
		require.NoError(t, err)

		var statuses []string
		for _, e := range events {
			if e.Type == core.EventStatus {
				statuses = append(statuses, e.Content)
			}
		}
		assert.Equal(t, []string{"Crunching the numbers...", "Finished using calculator."}, statuses)
	})

	t.Run("disabled", func(t *testing.T) {
		o, _ := newTestOrchestrator(t, eng)
		eventCh, errCh := o.Stream(context.Background(), Request{Input: "calc", AgentID: "general_assistant"})
		events, err := collectEvents(t, eventCh, errCh)
		require.NoError(t, err)

		for _, e := range events {
			assert.NotEqual(t, core.EventStatus, e.Type)
		}
	})
}

// finalOnlyEngine models a non-streaming-capable provider: its stream holds
// a single final output notification and nothing else.
type finalOnlyEngine struct{ out string }

func (e *finalOnlyEngine) Generate(context.Context, model.Request) (string, error) {
	return e.out, nil
}

func (e *finalOnlyEngine) Stream(context.Context, model.Request) (<-chan model.Notification, <-chan error) {
	notifCh := make(chan model.Notification, 1)
	errCh := make(chan error, 1)
	notifCh <- model.Notification{Kind: model.NotificationFinalOutput, Text: e.out}
	close(notifCh)
	close(errCh)
	return notifCh, errCh
}

func (e *finalOnlyEngine) Decide(context.Context, model.Request, any) error {
	return fmt.Errorf("not supported")
}

func (e *finalOnlyEngine) Info() model.Info { return model.Info{Name: "final-only", Provider: "mock"} }

// toolNoiseEngine surrounds its text with tool invocation notifications.
type toolNoiseEngine struct{}

func (e *toolNoiseEngine) Generate(context.Context, model.Request) (string, error) {
	return "4", nil
}

func (e *toolNoiseEngine) Stream(context.Context, model.Request) (<-chan model.Notification, <-chan error) {
	notifCh := make(chan model.Notification, 4)
	errCh := make(chan error, 1)
	notifCh <- model.Notification{Kind: model.NotificationToolStart, ToolName: "calculator"}
	notifCh <- model.Notification{Kind: model.NotificationToolEnd, ToolName: "calculator"}
	notifCh <- model.Notification{Kind: model.NotificationTextDelta, Text: "4"}
	notifCh <- model.Notification{Kind: model.NotificationFinalOutput, Text: "4"}
	close(notifCh)
	close(errCh)
	return notifCh, errCh
}

func (e *toolNoiseEngine) Decide(context.Context, model.Request, any) error {
	return fmt.Errorf("not supported")
}

func (e *toolNoiseEngine) Info() model.Info { return model.Info{Name: "tool-noise", Provider: "mock"} }
