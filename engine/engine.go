// Package engine runs the bounded agentic generation loop. Each step is one
// model inference optionally followed by tool executions whose results are
// fed back as the next step's input. The step ceiling is a hard resource
// bound, not a quality heuristic; hitting it is normal termination.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hupe1980/agentgate/core"
	"github.com/hupe1980/agentgate/logging"
	"github.com/hupe1980/agentgate/model"
	"github.com/hupe1980/agentgate/tool"
)

// DefaultMaxSteps bounds the agentic loop when no ceiling is configured.
const DefaultMaxSteps = 50

// Options configure an Engine.
type Options struct {
	// MaxSteps is the hard ceiling on model inference steps per run.
	MaxSteps int
	// Tools are the callable capabilities exposed to the model.
	Tools []tool.Tool
	// Logger receives structured loop diagnostics. Defaults to a no-op.
	Logger logging.Logger
	// EventBufferSize sizes the streaming event channel.
	EventBufferSize int
}

// Engine drives bounded generation against any model.Model.
type Engine struct {
	opts  Options
	tools map[string]tool.Tool
}

// New creates an Engine with the given functional options.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		MaxSteps:        DefaultMaxSteps,
		Logger:          logging.NoOpLogger{},
		EventBufferSize: 100,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.MaxSteps <= 0 {
		opts.MaxSteps = DefaultMaxSteps
	}

	tools := make(map[string]tool.Tool, len(opts.Tools))
	for _, t := range opts.Tools {
		tools[t.Name()] = t
	}

	return &Engine{opts: opts, tools: tools}
}

// Run executes the bounded loop to completion and returns every message
// produced by this run (assistant turns plus any tool-result turns), in
// order. Both model completion and a hit step ceiling terminate normally;
// provider failures propagate unmodified.
func (e *Engine) Run(ctx context.Context, m model.Model, instructions string, history []core.Message) ([]core.Message, error) {
	return e.run(ctx, m, instructions, history, nil)
}

// run is the shared loop. When emit is non-nil every intermediate event is
// pushed through it and the model is asked to stream partials.
func (e *Engine) run(
	ctx context.Context,
	m model.Model,
	instructions string,
	history []core.Message,
	emit func(core.StreamEvent),
) ([]core.Message, error) {
	contents := make([]core.Message, len(history))
	copy(contents, history)

	var produced []core.Message

	for step := 1; step <= e.opts.MaxSteps; step++ {
		final, err := e.step(ctx, m, model.Request{
			Instructions: instructions,
			Contents:     contents,
			Tools:        e.toolDefinitions(),
			Stream:       emit != nil,
		}, emit)
		if err != nil {
			return produced, err
		}

		produced = append(produced, final.Content)
		contents = append(contents, final.Content)

		calls := final.Content.FunctionCalls()
		if len(calls) == 0 {
			reason := final.FinishReason
			if reason == "" {
				reason = "stop"
			}
			if emit != nil {
				emit(core.FinishEvent{Reason: reason, Steps: step})
			}

			return produced, nil
		}

		for _, call := range calls {
			if emit != nil {
				emit(core.ToolCallEvent{Call: call})
			}

			result := e.executeTool(ctx, call)
			if emit != nil {
				emit(core.ToolResultEvent{Result: result})
			}

			msg := core.Message{
				Role:  core.RoleTool,
				Parts: []core.Part{core.FunctionResponsePart{FunctionResponse: result}},
			}
			produced = append(produced, msg)
			contents = append(contents, msg)
		}
	}

	e.opts.Logger.Warn("engine.max_steps", "max_steps", e.opts.MaxSteps)

	if emit != nil {
		emit(core.FinishEvent{Reason: core.FinishReasonMaxSteps, Steps: e.opts.MaxSteps})
	}

	return produced, nil
}

// step performs one model inference, forwarding partial text deltas to emit
// and returning the final response of the turn.
func (e *Engine) step(
	ctx context.Context,
	m model.Model,
	req model.Request,
	emit func(core.StreamEvent),
) (*model.Response, error) {
	respCh, errCh := m.Generate(ctx, req)

	var final *model.Response

	for respCh != nil || errCh != nil {
		select {
		case resp, ok := <-respCh:
			if !ok {
				respCh = nil
				continue
			}
			if resp.Partial {
				if emit != nil {
					if text := resp.Content.Text(); text != "" {
						emit(core.TextDeltaEvent{Text: text})
					}
				}
				continue
			}

			r := resp
			final = &r
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				return nil, err
			}
		}
	}

	if final == nil {
		return nil, fmt.Errorf("model %s produced no final response", m.Info().Name)
	}

	return final, nil
}

// executeTool runs a single function call. Failures (including unknown tool
// names) are folded into the FunctionResponse so the model can observe and
// recover from them rather than aborting the run.
func (e *Engine) executeTool(ctx context.Context, call core.FunctionCall) core.FunctionResponse {
	t, ok := e.tools[call.Name]
	if !ok {
		e.opts.Logger.Warn("engine.tool.not_found", "tool", call.Name)

		return core.FunctionResponse{
			ID:    call.ID,
			Name:  call.Name,
			Error: fmt.Sprintf("tool %q not found", call.Name),
		}
	}

	args := map[string]any{}
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return core.FunctionResponse{
				ID:    call.ID,
				Name:  call.Name,
				Error: fmt.Sprintf("invalid tool arguments: %v", err),
			}
		}
	}

	start := time.Now()
	result, err := t.Call(ctx, args)
	e.opts.Logger.Info("engine.tool.executed", "tool", call.Name, "duration_ms", time.Since(start).Milliseconds(), "error", err != nil)

	fr := core.FunctionResponse{ID: call.ID, Name: call.Name, Response: result}
	if err != nil {
		fr.Response = nil
		fr.Error = err.Error()
	}

	return fr
}

func (e *Engine) toolDefinitions() []model.ToolDefinition {
	if len(e.opts.Tools) == 0 {
		return nil
	}

	defs := make([]model.ToolDefinition, 0, len(e.opts.Tools))
	for _, t := range e.opts.Tools {
		defs = append(defs, model.ToolDefinition{
			Type: "function",
			Function: model.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}

	return defs
}
