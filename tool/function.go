package tool

import (
	"context"

	"github.com/hupe1980/agentpilot/internal/util"
)

// FunctionTool is a generic adapter that exposes a plain Go function as a tool.
//
// A FunctionTool has no internal mutable state after construction and is safe
// for concurrent use by multiple goroutines. Execution failures are wrapped as
// *ToolError with code EXECUTION_ERROR unless the function already returned a
// *ToolError, which is forwarded unchanged.
type FunctionTool struct {
	name        string
	description string
	actionText  string
	parameters  map[string]any
	fn          func(ctx context.Context, args map[string]any) (any, error)
}

// FunctionToolOption customizes a FunctionTool at construction time.
type FunctionToolOption func(*FunctionTool)

// WithActionText sets the progress line surfaced while the tool runs.
func WithActionText(text string) FunctionToolOption {
	return func(t *FunctionTool) { t.actionText = text }
}

// NewFunctionTool constructs a FunctionTool from explicit schema and function.
func NewFunctionTool(
	name, description string,
	parameters map[string]any,
	fn func(ctx context.Context, args map[string]any) (any, error),
	optFns ...FunctionToolOption,
) *FunctionTool {
	t := &FunctionTool{
		name:        name,
		description: description,
		parameters:  parameters,
		fn:          fn,
	}
	for _, opt := range optFns {
		opt(t)
	}
	return t
}

// NewFunctionToolFromStruct derives the parameter schema from a struct using
// reflection. It is a convenience for simple argument containers.
//
// Example:
//
//	type CalcArgs struct {
//	  Expression string `json:"expression" description:"Arithmetic expression"`
//	}
//
//	calc := NewFunctionToolFromStruct(
//	  "calculator",
//	  "Evaluate a basic arithmetic expression",
//	  CalcArgs{},
//	  func(ctx context.Context, args map[string]any) (any, error) { ... },
//	)
func NewFunctionToolFromStruct(
	name, description string,
	structType any,
	fn func(ctx context.Context, args map[string]any) (any, error),
	optFns ...FunctionToolOption,
) *FunctionTool {
	schema := util.CreateSchema(structType)
	return NewFunctionTool(name, description, schema, fn, optFns...)
}

// Name returns the unique tool name.
func (t *FunctionTool) Name() string { return t.name }

// Description returns the short natural language description exposed to models.
func (t *FunctionTool) Description() string { return t.description }

// ActionText returns the progress line for this tool.
func (t *FunctionTool) ActionText() string { return t.actionText }

// Parameters returns the JSON schema describing expected arguments.
func (t *FunctionTool) Parameters() map[string]any { return t.parameters }

// Execute invokes the underlying function, normalizing failures to *ToolError.
func (t *FunctionTool) Execute(ctx context.Context, args map[string]any) (any, error) {
	result, err := t.fn(ctx, args)
	if err != nil {
		if toolErr, ok := err.(*ToolError); ok {
			return nil, toolErr
		}
		return nil, &ToolError{
			Tool:    t.name,
			Message: err.Error(),
			Code:    "EXECUTION_ERROR",
		}
	}
	return result, nil
}

var _ Tool = (*FunctionTool)(nil)
