package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/agentpilot/core"
	"github.com/hupe1980/agentpilot/model"
)

// Stream executes one request and delivers typed progress events on the
// returned channel. The metadata(routing) event always precedes any agent
// work and metadata(done) is the last event of a successful stream. Errors
// after the stream opens are delivered both as a typed error event and on
// the error channel; both channels close when the request finishes.
func (o *Orchestrator) Stream(ctx context.Context, req Request) (<-chan core.StreamEvent, <-chan error) {
	eventCh := make(chan core.StreamEvent, 32)
	errCh := make(chan error, 1)

	emit := func(event core.StreamEvent) {
		select {
		case <-ctx.Done():
		case eventCh <- event:
		}
	}

	go func() {
		defer close(eventCh)
		defer close(errCh)

		if _, err := o.run(ctx, req, emit, true); err != nil {
			o.logger.Error("streaming request failed", "error", err.Error())
			emit(core.NewErrorEvent(err))
			errCh <- err
		}
	}()

	return eventCh, errCh
}

// streamModel runs one engine call through the streaming API, translating
// raw notifications into typed events: text deltas become token events, tool
// boundaries become status events when tool tracing is on, and the final
// output is captured as the return value. When the engine never emits an
// incremental token, a synthetic token event carrying the captured final
// output is emitted instead so the stream is never empty on success.
func (o *Orchestrator) streamModel(ctx context.Context, req model.Request, traceTools bool, emit func(core.StreamEvent)) (string, error) {
	notifCh, errCh := o.engine.Stream(ctx, req)

	var text strings.Builder
	var finalOutput string
	tokensEmitted := false

	for n := range notifCh {
		switch n.Kind {
		case model.NotificationTextDelta:
			emit(core.NewTokenEvent(n.Text))
			text.WriteString(n.Text)
			tokensEmitted = true
		case model.NotificationToolStart:
			if traceTools {
				emit(core.NewStatusEvent(o.toolActionText(n.ToolName)))
			}
		case model.NotificationToolEnd:
			if traceTools {
				emit(core.NewStatusEvent(fmt.Sprintf("Finished using %s.", n.ToolName)))
			}
		case model.NotificationFinalOutput:
			finalOutput = n.Text
		}
	}
	if err := <-errCh; err != nil {
		return "", err
	}

	if finalOutput == "" {
		finalOutput = text.String()
	}
	if !tokensEmitted {
		if finalOutput != "" {
			emit(core.NewTokenEvent(finalOutput))
		} else {
			emit(core.NewStatusEvent("No token stream was available for this response."))
		}
	}

	return finalOutput, nil
}

// toolActionText resolves the human readable progress line for a tool,
// falling back to a generic message for tools outside the catalog.
func (o *Orchestrator) toolActionText(name string) string {
	if t, err := o.tools.Get(name); err == nil {
		if action := t.ActionText(); action != "" {
			return action
		}
	}
	return fmt.Sprintf("Using %s...", name)
}
