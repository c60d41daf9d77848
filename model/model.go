// Package model defines the generation engine abstraction used by the
// orchestrator. An Engine turns prompts into text, streams incremental
// notifications, and makes structured decisions by emitting JSON that is
// decoded into caller supplied Go types.
package model

import (
	"context"
	"fmt"
)

// NotificationKind classifies incremental engine notifications.
type NotificationKind string

const (
	// NotificationTextDelta carries a chunk of generated text.
	NotificationTextDelta NotificationKind = "text_delta"
	// NotificationToolStart signals the engine began a tool action.
	NotificationToolStart NotificationKind = "tool_start"
	// NotificationToolEnd signals a tool action finished.
	NotificationToolEnd NotificationKind = "tool_end"
	// NotificationFinalOutput carries the complete final text.
	NotificationFinalOutput NotificationKind = "final_output"
)

// Notification is one incremental signal emitted during streaming
// generation. Only the fields relevant to its Kind are populated.
type Notification struct {
	Kind     NotificationKind `json:"kind"`
	Text     string           `json:"text,omitempty"`
	ToolName string           `json:"tool_name,omitempty"`
}

// Request captures the normalized engine input produced by the orchestrator.
type Request struct {
	// Instructions is the system prompt for the call.
	Instructions string `json:"instructions"`
	// Prompt is the user facing input text.
	Prompt string `json:"prompt"`
}

// Info contains metadata about an engine implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Engine is the minimal interface required to drive generation and
// structured decision making.
type Engine interface {
	// Generate runs a blocking completion and returns the final text.
	Generate(ctx context.Context, req Request) (string, error)

	// Stream runs a streaming completion. Notifications arrive on the
	// first channel; a terminal failure arrives on the second. Both
	// channels are closed when the stream ends.
	Stream(ctx context.Context, req Request) (<-chan Notification, <-chan error)

	// Decide asks the engine for a structured decision and decodes the
	// JSON it emits into out, which must be a pointer to a struct.
	Decide(ctx context.Context, req Request, out any) error

	// Info returns information about the engine implementation.
	Info() Info
}

// MockEngine is a lightweight in-memory Engine useful for tests.
type MockEngine struct {
	info      Info
	responses map[string]string
	fallback  string
	err       error
}

// NewMockEngine constructs a MockEngine.
func NewMockEngine(name string) *MockEngine {
	return &MockEngine{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for a prompt.
func (m *MockEngine) AddResponse(prompt, response string) { m.responses[prompt] = response }

// SetFallback sets the completion returned for unregistered prompts.
func (m *MockEngine) SetFallback(response string) { m.fallback = response }

// FailWith makes every call return err.
func (m *MockEngine) FailWith(err error) { m.err = err }

func (m *MockEngine) lookup(prompt string) string {
	if full, ok := m.responses[prompt]; ok {
		return full
	}
	if m.fallback != "" {
		return m.fallback
	}
	return fmt.Sprintf("Mock response to: %s", prompt)
}

// Generate implements Engine.
func (m *MockEngine) Generate(_ context.Context, req Request) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.lookup(req.Prompt), nil
}

// Stream implements Engine; emits per-rune text deltas then the final output.
func (m *MockEngine) Stream(ctx context.Context, req Request) (<-chan Notification, <-chan error) {
	notifCh := make(chan Notification, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(notifCh)
		defer close(errCh)
		if m.err != nil {
			errCh <- m.err
			return
		}
		full := m.lookup(req.Prompt)
		for _, r := range full {
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case notifCh <- Notification{Kind: NotificationTextDelta, Text: string(r)}:
			}
		}
		notifCh <- Notification{Kind: NotificationFinalOutput, Text: full}
	}()
	return notifCh, errCh
}

// Decide implements Engine by decoding the canned completion as JSON.
func (m *MockEngine) Decide(ctx context.Context, req Request, out any) error {
	if m.err != nil {
		return m.err
	}
	raw := m.lookup(req.Prompt)
	return DecodeDecision(raw, out)
}

// Info implements Engine.
func (m *MockEngine) Info() Info { return m.info }

var _ Engine = (*MockEngine)(nil)
