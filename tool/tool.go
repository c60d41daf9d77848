// Package tool implements the capability catalog exposed to agents. Each tool
// pairs an executable function with the metadata the orchestrator needs: a
// description and schema for LLM guidance, and an action text shown to users
// while the tool runs. Tools are assigned to agents directly by name or in
// named groups.
package tool

import (
	"context"
	"fmt"
)

// Tool defines the interface for agent capabilities beyond text generation.
//
// Tool implementations should:
//   - Provide clear, descriptive names (snake_case recommended)
//   - Define proper JSON schema for parameters
//   - Handle errors gracefully
//   - Be thread-safe if used concurrently
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what this tool
	// does. It is provided to the LLM to help it decide when to use the tool.
	Description() string

	// ActionText returns the progress line surfaced while the tool runs,
	// e.g. "Consulting agency directory...". Empty means a generic line.
	ActionText() string

	// Parameters returns a JSON schema describing the expected input format.
	Parameters() map[string]any

	// Execute runs the tool with already decoded arguments.
	Execute(ctx context.Context, args map[string]any) (any, error)
}

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}
