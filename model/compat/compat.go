// Package compat provides the generic fallback model used when a client type
// is not one of the first-class providers. It speaks the OpenAI-compatible
// wire format against an arbitrary base URL, which is the de facto lingua
// franca of model gateways and self-hosted inference servers.
package compat

import (
	"context"

	"github.com/hupe1980/agentgate/model"
	"github.com/hupe1980/agentgate/model/openai"
)

// Options configures the compatible-gateway model adapter.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int64
	APIKey      string
	BaseURL     string
}

// Model delegates to the OpenAI adapter pointed at a custom base URL.
type Model struct {
	inner *openai.Model
	name  string
}

// NewModel creates a generic OpenAI-compatible model. BaseURL selects the
// upstream gateway; an empty BaseURL targets the OpenAI API itself.
func NewModel(optFns ...func(o *Options)) *Model {
	opts := Options{
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	inner := openai.NewModel(func(o *openai.Options) {
		if opts.Model != "" {
			o.Model = opts.Model
		}
		o.Temperature = opts.Temperature
		o.MaxCompletionTokens = opts.MaxTokens
		o.APIKey = opts.APIKey
		o.BaseURL = opts.BaseURL
	})

	return &Model{inner: inner, name: opts.Model}
}

// Generate implements model.Model by delegating to the OpenAI-compatible wire.
func (m *Model) Generate(ctx context.Context, req model.Request) (<-chan model.Response, <-chan error) {
	return m.inner.Generate(ctx, req)
}

// Info returns metadata describing this gateway model.
func (m *Model) Info() model.Info {
	info := m.inner.Info()
	info.Provider = "compat"
	if m.name != "" {
		info.Name = m.name
	}
	return info
}
