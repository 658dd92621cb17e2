package core

import (
	"errors"
	"testing"
)

func TestMessage_Constructors(t *testing.T) {
	user := NewUserMessage("hi")
	if user.Role != RoleUser || user.Text() != "hi" {
		t.Fatalf("NewUserMessage malformed: %+v", user)
	}

	assistant := NewAssistantMessage("hello")
	if assistant.Role != RoleAssistant || assistant.Text() != "hello" {
		t.Fatalf("NewAssistantMessage malformed: %+v", assistant)
	}

	okResult := NewToolResultMessage("call-1", "lookup", 42, nil)
	resps := okResult.FunctionResponses()
	if okResult.Role != RoleTool || len(resps) != 1 || resps[0].Response.(int) != 42 || resps[0].Error != "" {
		t.Fatalf("tool result extraction failed: %+v", resps)
	}

	failResult := NewToolResultMessage("call-2", "lookup", nil, errors.New("boom"))
	if failResult.FunctionResponses()[0].Error != "boom" {
		t.Fatalf("expected error message in function response: %+v", failResult)
	}
}

func TestMessage_FunctionCalls(t *testing.T) {
	m := Message{Role: RoleAssistant, Parts: []Part{
		TextPart{Text: "let me check"},
		FunctionCallPart{FunctionCall: FunctionCall{ID: "c1", Name: "lookup", Arguments: `{"q":"x"}`}},
		FunctionCallPart{FunctionCall: FunctionCall{ID: "c2", Name: "fetch"}},
	}}

	calls := m.FunctionCalls()
	if len(calls) != 2 || calls[0].Name != "lookup" || calls[1].ID != "c2" {
		t.Fatalf("FunctionCalls extraction failed: %+v", calls)
	}
	if m.Text() != "let me check" {
		t.Fatalf("Text should skip non-text parts, got %q", m.Text())
	}
}

func TestNewID_Unique(t *testing.T) {
	if NewID() == NewID() {
		t.Fatal("NewID should not repeat")
	}
}
