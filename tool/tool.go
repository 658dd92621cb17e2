// Package tool implements the function calling subsystem that lets the
// execution engine invoke structured capabilities (APIs, computations,
// side effects) with schema validated arguments and consistent error
// handling.
package tool

import (
	"context"
	"fmt"

	"github.com/hupe1980/agentgate/internal/util"
)

// Tool defines the interface for extending agent capabilities with external
// functions. Implementations should be safe for concurrent use.
type Tool interface {
	// Name returns the unique identifier for this tool (snake_case recommended).
	Name() string

	// Description returns a human-readable description provided to the model
	// so it understands when and how to use the tool.
	Description() string

	// Parameters returns a JSON schema describing the expected input format.
	Parameters() map[string]any

	// Call executes the tool with already-deserialized arguments.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// ValidationError represents parameter validation errors with detailed information.
type ValidationError = util.ValidationError

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %s failed: %s (%s)", e.Tool, e.Message, e.Code)
}

// NewToolError creates a ToolError with the given identifying fields.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
