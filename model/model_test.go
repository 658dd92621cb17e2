package model

import (
	"context"
	"testing"

	"github.com/hupe1980/agentgate/core"
)

func TestMockModel_CannedAndDefault(t *testing.T) {
	m := NewMockModel("mock", "test")
	m.AddResponse("ping", "pong")

	respCh, errCh := m.Generate(context.Background(), Request{
		Contents: []core.Message{core.NewUserMessage("ping")},
	})

	var final *Response
	for resp := range respCh {
		resp := resp
		final = &resp
	}
	if err := <-errCh; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final == nil || final.Content.Text() != "pong" || final.FinishReason != "stop" {
		t.Fatalf("unexpected final response: %+v", final)
	}
}

func TestMockModel_StreamingEmitsPartials(t *testing.T) {
	m := NewMockModel("mock", "test")
	m.AddResponse("hi", "ok")

	respCh, errCh := m.Generate(context.Background(), Request{
		Contents: []core.Message{core.NewUserMessage("hi")},
		Stream:   true,
	})

	partials := 0
	var final *Response
	for resp := range respCh {
		if resp.Partial {
			partials++
			continue
		}
		resp := resp
		final = &resp
	}
	if err := <-errCh; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if partials != 2 { // one per rune of "ok"
		t.Fatalf("expected 2 partials, got %d", partials)
	}
	if final == nil || final.Content.Text() != "ok" {
		t.Fatalf("unexpected final: %+v", final)
	}
}

func TestMockModel_ScriptedToolCalls(t *testing.T) {
	m := NewMockModel("mock", "test")
	m.Script(core.Message{Role: core.RoleAssistant, Parts: []core.Part{
		core.FunctionCallPart{FunctionCall: core.FunctionCall{ID: "c1", Name: "lookup"}},
	}})

	respCh, errCh := m.Generate(context.Background(), Request{
		Contents: []core.Message{core.NewUserMessage("anything")},
	})
	var final *Response
	for resp := range respCh {
		resp := resp
		final = &resp
	}
	if err := <-errCh; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.FinishReason != "tool_calls" || len(final.Content.FunctionCalls()) != 1 {
		t.Fatalf("scripted tool call not surfaced: %+v", final)
	}
}

func TestMockModel_ErrorsWithoutContents(t *testing.T) {
	m := NewMockModel("mock", "test")
	respCh, errCh := m.Generate(context.Background(), Request{})
	for range respCh {
	}
	if err := <-errCh; err == nil {
		t.Fatal("expected error for empty contents")
	}
}
