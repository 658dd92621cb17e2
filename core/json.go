package core

import (
	"encoding/json"
	"fmt"
)

// Wire representation of a Part. Parts are polymorphic in Go but must round
// trip through the HTTP boundary, so each part is framed in a tagged envelope:
//
//	{"type":"text","text":"..."}
//	{"type":"function_call","function_call":{...}}
//	{"type":"function_response","function_response":{...}}
type partEnvelope struct {
	Type             string            `json:"type"`
	Text             string            `json:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"function_call,omitempty"`
	FunctionResponse *FunctionResponse `json:"function_response,omitempty"`
}

const (
	partTypeText             = "text"
	partTypeFunctionCall     = "function_call"
	partTypeFunctionResponse = "function_response"
)

// MarshalJSON implements json.Marshaler framing each part in its envelope.
func (m Message) MarshalJSON() ([]byte, error) {
	envelopes := make([]partEnvelope, 0, len(m.Parts))
	for _, p := range m.Parts {
		switch part := p.(type) {
		case TextPart:
			envelopes = append(envelopes, partEnvelope{Type: partTypeText, Text: part.Text})
		case FunctionCallPart:
			fc := part.FunctionCall
			envelopes = append(envelopes, partEnvelope{Type: partTypeFunctionCall, FunctionCall: &fc})
		case FunctionResponsePart:
			fr := part.FunctionResponse
			envelopes = append(envelopes, partEnvelope{Type: partTypeFunctionResponse, FunctionResponse: &fr})
		default:
			return nil, fmt.Errorf("unknown part type %T", p)
		}
	}
	return json.Marshal(struct {
		Role  string         `json:"role"`
		Parts []partEnvelope `json:"parts"`
	}{Role: m.Role, Parts: envelopes})
}

// UnmarshalJSON implements json.Unmarshaler, accepting either the tagged part
// envelopes produced by MarshalJSON or a plain string content field for
// convenience ({"role":"user","content":"hi"}).
func (m *Message) UnmarshalJSON(data []byte) error {
	var wire struct {
		Role    string         `json:"role"`
		Content string         `json:"content"`
		Parts   []partEnvelope `json:"parts"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	m.Role = wire.Role
	m.Parts = nil

	if len(wire.Parts) == 0 && wire.Content != "" {
		m.Parts = []Part{TextPart{Text: wire.Content}}
		return nil
	}

	for _, env := range wire.Parts {
		switch env.Type {
		case partTypeText:
			m.Parts = append(m.Parts, TextPart{Text: env.Text})
		case partTypeFunctionCall:
			if env.FunctionCall == nil {
				return fmt.Errorf("function_call part missing payload")
			}
			m.Parts = append(m.Parts, FunctionCallPart{FunctionCall: *env.FunctionCall})
		case partTypeFunctionResponse:
			if env.FunctionResponse == nil {
				return fmt.Errorf("function_response part missing payload")
			}
			m.Parts = append(m.Parts, FunctionResponsePart{FunctionResponse: *env.FunctionResponse})
		default:
			return fmt.Errorf("unknown part type %q", env.Type)
		}
	}
	return nil
}
