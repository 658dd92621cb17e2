package core

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMessageJSON_RoundTrip(t *testing.T) {
	in := Message{Role: RoleAssistant, Parts: []Part{
		TextPart{Text: "checking"},
		FunctionCallPart{FunctionCall: FunctionCall{ID: "c1", Name: "lookup", Arguments: `{"q":"go"}`}},
	}}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"type":"function_call"`) {
		t.Fatalf("expected tagged envelope, got %s", data)
	}

	var out Message
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Role != RoleAssistant || len(out.Parts) != 2 {
		t.Fatalf("round trip lost parts: %+v", out)
	}
	calls := out.FunctionCalls()
	if len(calls) != 1 || calls[0].Arguments != `{"q":"go"}` {
		t.Fatalf("function call not preserved: %+v", calls)
	}
}

func TestMessageJSON_PlainContent(t *testing.T) {
	var m Message
	if err := json.Unmarshal([]byte(`{"role":"user","content":"hello"}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.Role != RoleUser || m.Text() != "hello" {
		t.Fatalf("plain content form not accepted: %+v", m)
	}
}

func TestMessageJSON_UnknownPart(t *testing.T) {
	var m Message
	err := json.Unmarshal([]byte(`{"role":"user","parts":[{"type":"video"}]}`), &m)
	if err == nil {
		t.Fatal("expected error for unknown part type")
	}
}
