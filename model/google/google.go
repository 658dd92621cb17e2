// Package google provides a model wrapper for the Google Gemini API using
// the google.golang.org/genai SDK.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hupe1980/agentgate/core"
	"github.com/hupe1980/agentgate/model"
	"google.golang.org/genai"
)

// Options configures the Gemini model adapter.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int32
	APIKey      string
	BaseURL     string
}

// Model wraps the Gemini GenerateContent API behind the generic model.Model interface.
type Model struct {
	client *genai.Client
	opts   Options
}

// NewModel creates a new Gemini model. Client construction performs
// environment resolution and may fail, hence the error return.
func NewModel(ctx context.Context, optFns ...func(o *Options)) (*Model, error) {
	opts := Options{
		Model:       "gemini-2.0-flash",
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions.BaseURL = opts.BaseURL
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, core.WrapError(core.KindProvider, err, fmt.Sprintf("gemini client: %v", err))
	}

	return &Model{client: client, opts: opts}, nil
}

// Generate implements unified streaming / non-streaming generation.
func (m *Model) Generate(ctx context.Context, req model.Request) (<-chan model.Response, <-chan error) {
	out := make(chan model.Response, 32)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		contents := buildContents(req.Contents)
		config := m.buildConfig(req)

		if req.Stream {
			m.handleStreaming(ctx, contents, config, out, errCh)
			return
		}

		resp, err := m.client.Models.GenerateContent(ctx, m.opts.Model, contents, config)
		if err != nil {
			errCh <- wrapErr(err)
			return
		}

		out <- finalResponse(resp)
	}()

	return out, errCh
}

// handleStreaming iterates the SDK's chunk sequence forwarding text deltas
// and assembling the final parts from all chunks.
func (m *Model) handleStreaming(
	ctx context.Context,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
	out chan<- model.Response,
	errCh chan<- error,
) {
	var finalParts []core.Part
	finishReason := "stop"
	var usage *model.TokenUsage

	for resp, err := range m.client.Models.GenerateContentStream(ctx, m.opts.Model, contents, config) {
		if err != nil {
			errCh <- wrapErr(err)
			return
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}
		cand := resp.Candidates[0]
		for _, part := range cand.Content.Parts {
			switch {
			case part.Text != "":
				out <- model.Response{
					Partial: true,
					Content: core.NewAssistantMessage(part.Text),
				}
				finalParts = append(finalParts, core.TextPart{Text: part.Text})
			case part.FunctionCall != nil:
				finalParts = append(finalParts, convertFunctionCall(part.FunctionCall))
			}
		}
		if cand.FinishReason != "" {
			finishReason = string(cand.FinishReason)
		}
		if resp.UsageMetadata != nil {
			usage = convertUsage(resp.UsageMetadata)
		}
	}

	out <- model.Response{
		Content:      core.Message{Role: core.RoleAssistant, Parts: mergeTextParts(finalParts)},
		FinishReason: finishReason,
		Usage:        usage,
	}
}

// finalResponse converts a complete GenerateContent response.
func finalResponse(resp *genai.GenerateContentResponse) model.Response {
	var parts []core.Part
	finishReason := "stop"

	if len(resp.Candidates) > 0 {
		cand := resp.Candidates[0]
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				switch {
				case part.Text != "":
					parts = append(parts, core.TextPart{Text: part.Text})
				case part.FunctionCall != nil:
					parts = append(parts, convertFunctionCall(part.FunctionCall))
				}
			}
		}
		if cand.FinishReason != "" {
			finishReason = string(cand.FinishReason)
		}
	}

	var usage *model.TokenUsage
	if resp.UsageMetadata != nil {
		usage = convertUsage(resp.UsageMetadata)
	}

	return model.Response{
		Content:      core.Message{Role: core.RoleAssistant, Parts: parts},
		FinishReason: finishReason,
		Usage:        usage,
	}
}

func convertFunctionCall(fc *genai.FunctionCall) core.FunctionCallPart {
	args := ""
	if fc.Args != nil {
		if argsBytes, err := json.Marshal(fc.Args); err == nil {
			args = string(argsBytes)
		}
	}
	id := fc.ID
	if id == "" {
		// Gemini omits call ids; assign one so tool results can correlate.
		id = core.NewID()
	}
	return core.FunctionCallPart{FunctionCall: core.FunctionCall{
		ID:        id,
		Name:      fc.Name,
		Arguments: args,
	}}
}

func convertUsage(md *genai.GenerateContentResponseUsageMetadata) *model.TokenUsage {
	return &model.TokenUsage{
		PromptTokens:     int(md.PromptTokenCount),
		CompletionTokens: int(md.CandidatesTokenCount),
		TotalTokens:      int(md.TotalTokenCount),
	}
}

// mergeTextParts collapses consecutive text deltas accumulated during
// streaming into a single text part, preserving function call positions.
func mergeTextParts(parts []core.Part) []core.Part {
	var merged []core.Part
	text := ""
	flush := func() {
		if text != "" {
			merged = append(merged, core.TextPart{Text: text})
			text = ""
		}
	}
	for _, p := range parts {
		if tp, ok := p.(core.TextPart); ok {
			text += tp.Text
			continue
		}
		flush()
		merged = append(merged, p)
	}
	flush()
	return merged
}

// wrapErr tags SDK failures with a structured kind derived from the upstream
// HTTP status.
func wrapErr(err error) error {
	var apierr genai.APIError
	if errors.As(err, &apierr) {
		return core.WrapError(core.KindForStatus(apierr.Code), err, fmt.Sprintf("gemini api error: %v", err))
	}
	return core.WrapError(core.KindProvider, err, fmt.Sprintf("gemini api error: %v", err))
}

// buildConfig assembles generation config including the system instruction
// and tool declarations.
func (m *Model) buildConfig(req model.Request) *genai.GenerateContentConfig {
	temp := float32(m.opts.Temperature)
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: m.opts.MaxTokens,
		Temperature:     &temp,
	}

	system := req.Instructions
	for _, msg := range req.Contents {
		if msg.Role == core.RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += msg.Text()
		}
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	if len(req.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, len(req.Tools))
		for i, t := range req.Tools {
			decls[i] = &genai.FunctionDeclaration{
				Name:                 t.Function.Name,
				Description:          t.Function.Description,
				ParametersJsonSchema: t.Function.Parameters,
			}
		}
		config.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	return config
}

// buildContents converts agentgate messages to genai contents. Tool result
// turns become user-role function responses, matching the Gemini wire shape.
func buildContents(msgs []core.Message) []*genai.Content {
	var result []*genai.Content
	for _, msg := range msgs {
		switch msg.Role {
		case core.RoleSystem:
			continue // carried via SystemInstruction
		case core.RoleAssistant:
			result = append(result, &genai.Content{
				Role:  "model",
				Parts: convertParts(msg.Parts),
			})
		case core.RoleTool:
			for _, fr := range msg.FunctionResponses() {
				var responseMap map[string]any
				if fr.Error != "" {
					responseMap = map[string]any{"error": fr.Error}
				} else if s, ok := fr.Response.(string); ok {
					responseMap = map[string]any{"output": s}
				} else {
					responseMap = map[string]any{"output": fmt.Sprintf("%v", fr.Response)}
				}
				result = append(result, &genai.Content{
					Role: "user",
					Parts: []*genai.Part{{
						FunctionResponse: &genai.FunctionResponse{
							ID:       fr.ID,
							Name:     fr.Name,
							Response: responseMap,
						},
					}},
				})
			}
		default:
			result = append(result, &genai.Content{
				Role:  "user",
				Parts: convertParts(msg.Parts),
			})
		}
	}
	return result
}

func convertParts(parts []core.Part) []*genai.Part {
	var result []*genai.Part
	for _, p := range parts {
		switch part := p.(type) {
		case core.TextPart:
			if part.Text != "" {
				result = append(result, &genai.Part{Text: part.Text})
			}
		case core.FunctionCallPart:
			var args map[string]any
			if part.FunctionCall.Arguments != "" {
				_ = json.Unmarshal([]byte(part.FunctionCall.Arguments), &args)
			}
			result = append(result, &genai.Part{
				FunctionCall: &genai.FunctionCall{
					ID:   part.FunctionCall.ID,
					Name: part.FunctionCall.Name,
					Args: args,
				},
			})
		}
	}
	return result
}

// Info returns metadata describing this Gemini model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:          m.opts.Model,
		Provider:      "google",
		SupportsTools: true,
	}
}
