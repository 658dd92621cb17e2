// Package gateway maps a caller-declared client type onto a concrete provider
// adapter. It is the single place where the model catalog is wired: callers
// hand over credentials and a model identifier, the gateway hands back a
// model.Model bound to the matching backend.
package gateway

import (
	"context"

	"github.com/hupe1980/agentgate/model"
	"github.com/hupe1980/agentgate/model/anthropic"
	"github.com/hupe1980/agentgate/model/compat"
	"github.com/hupe1980/agentgate/model/google"
	"github.com/hupe1980/agentgate/model/openai"
)

// ClientType selects which provider wire protocol to speak.
type ClientType string

const (
	// ClientTypeOpenAI targets the OpenAI Chat Completions API.
	ClientTypeOpenAI ClientType = "openai"
	// ClientTypeAnthropic targets the Anthropic Messages API.
	ClientTypeAnthropic ClientType = "anthropic"
	// ClientTypeGoogle targets the Gemini API.
	ClientTypeGoogle ClientType = "google"
)

// Credentials carry the per-request provider authentication material.
// BaseURL overrides the provider default endpoint when set, which lets a
// single client type front proxies and OpenAI-compatible gateways.
type Credentials struct {
	APIKey  string
	BaseURL string
}

// Binder constructs a model bound to one provider backend.
type Binder interface {
	// Bind returns a ready-to-use model for the given credentials and model
	// identifier. Construction is cheap; no network traffic happens here.
	Bind(ctx context.Context, creds Credentials, modelID string) (model.Model, error)
}

// BinderFunc adapts an ordinary function to the Binder interface.
type BinderFunc func(ctx context.Context, creds Credentials, modelID string) (model.Model, error)

// Bind implements Binder.
func (f BinderFunc) Bind(ctx context.Context, creds Credentials, modelID string) (model.Model, error) {
	return f(ctx, creds, modelID)
}

var binders = map[ClientType]Binder{
	ClientTypeOpenAI: BinderFunc(func(_ context.Context, creds Credentials, modelID string) (model.Model, error) {
		return openai.NewModel(func(o *openai.Options) {
			o.Model = modelID
			o.APIKey = creds.APIKey
			o.BaseURL = creds.BaseURL
		}), nil
	}),
	ClientTypeAnthropic: BinderFunc(func(_ context.Context, creds Credentials, modelID string) (model.Model, error) {
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.Model = modelID
			o.APIKey = creds.APIKey
			o.BaseURL = creds.BaseURL
		}), nil
	}),
	ClientTypeGoogle: BinderFunc(func(ctx context.Context, creds Credentials, modelID string) (model.Model, error) {
		return google.NewModel(ctx, func(o *google.Options) {
			o.Model = modelID
			o.APIKey = creds.APIKey
			o.BaseURL = creds.BaseURL
		})
	}),
}

// fallback speaks the OpenAI-compatible wire against whatever BaseURL the
// caller supplied. Unknown client types land here instead of erroring so new
// gateway-style providers work without a code change.
var fallback Binder = BinderFunc(func(_ context.Context, creds Credentials, modelID string) (model.Model, error) {
	return compat.NewModel(func(o *compat.Options) {
		o.Model = modelID
		o.APIKey = creds.APIKey
		o.BaseURL = creds.BaseURL
	}), nil
})

// Resolve returns the binder for the given client type. Unknown types resolve
// to the OpenAI-compatible fallback; Resolve never returns nil.
func Resolve(clientType ClientType) Binder {
	if b, ok := binders[clientType]; ok {
		return b
	}

	return fallback
}
