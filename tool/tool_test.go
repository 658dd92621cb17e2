package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/agentgate/internal/util"
	"github.com/stretchr/testify/assert"
)

// -------------------- Schema & Validation Tests --------------------

func TestValidateParameters(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "integer"},
		},
		// Use []any to mirror possible JSON decoded schema shape
		"required": []any{"x"},
	}

	// Success
	err := util.ValidateParameters(map[string]any{"x": 5}, schema)
	assert.NoError(t, err)

	// Missing required
	err = util.ValidateParameters(map[string]any{}, schema)
	assert.Error(t, err)
	if vErr, ok := err.(*ValidationError); ok {
		assert.Equal(t, "x", vErr.Field)
	} else {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	// Wrong type
	err = util.ValidateParameters(map[string]any{"x": "not-int"}, schema)
	assert.Error(t, err)
	if vErr, ok := err.(*ValidationError); ok {
		assert.Contains(t, vErr.Message, "expected type integer")
	} else {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

// -------------------- FunctionTool Tests --------------------

func sumTool() *FunctionTool {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "number"},
			"b": map[string]any{"type": "number"},
		},
		"required": []string{"a", "b"},
	}

	return NewFunctionTool("calculate_sum", "Calculate the sum of two numbers", params,
		func(_ context.Context, args map[string]any) (any, error) {
			return args["a"].(float64) + args["b"].(float64), nil
		})
}

func TestFunctionTool_Success(t *testing.T) {
	tl := sumTool()

	result, err := tl.Call(context.Background(), map[string]any{"a": 2.0, "b": 3.0})
	assert.NoError(t, err)
	assert.Equal(t, 5.0, result)
	assert.Equal(t, "calculate_sum", tl.Name())
	assert.NotEmpty(t, tl.Description())
	assert.NotNil(t, tl.Parameters())
}

func TestFunctionTool_ValidationError(t *testing.T) {
	tl := sumTool()

	_, err := tl.Call(context.Background(), map[string]any{"a": 2.0})
	assert.Error(t, err)

	var toolErr *ToolError
	assert.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
	assert.Equal(t, "calculate_sum", toolErr.Tool)
}

func TestFunctionTool_ExecutionError(t *testing.T) {
	tl := NewFunctionTool("boom", "Always fails", map[string]any{"type": "object"},
		func(_ context.Context, _ map[string]any) (any, error) {
			return nil, errors.New("kaboom")
		})

	_, err := tl.Call(context.Background(), map[string]any{})
	assert.Error(t, err)

	var toolErr *ToolError
	assert.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "EXECUTION_ERROR", toolErr.Code)
	assert.Equal(t, "kaboom", toolErr.Message)
}

func TestFunctionTool_CustomToolErrorPassthrough(t *testing.T) {
	custom := NewToolError("lookup", "record missing", "NOT_FOUND")

	tl := NewFunctionTool("lookup", "Look up a record", map[string]any{"type": "object"},
		func(_ context.Context, _ map[string]any) (any, error) {
			return nil, custom
		})

	_, err := tl.Call(context.Background(), map[string]any{})
	assert.Error(t, err)

	var toolErr *ToolError
	assert.True(t, errors.As(err, &toolErr))
	assert.Same(t, custom, toolErr)
	assert.Contains(t, toolErr.Error(), "NOT_FOUND")
}
