package gateway

import (
	"context"
	"testing"

	"github.com/hupe1980/agentgate/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_KnownTypes(t *testing.T) {
	for _, ct := range []ClientType{ClientTypeOpenAI, ClientTypeAnthropic, ClientTypeGoogle} {
		b := Resolve(ct)
		require.NotNil(t, b, "binder for %s", ct)

		m, err := b.Bind(context.Background(), Credentials{APIKey: "test-key"}, "some-model")
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "some-model", m.Info().Name)
	}
}

func TestResolve_UnknownFallsBackToCompat(t *testing.T) {
	b := Resolve(ClientType("mystery-gateway"))
	require.NotNil(t, b)

	m, err := b.Bind(context.Background(), Credentials{
		APIKey:  "test-key",
		BaseURL: "https://gateway.example.com/v1",
	}, "some-model")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "compat", m.Info().Provider)
}

func TestBinderFunc_ForwardsArguments(t *testing.T) {
	var gotModel string
	var gotCreds Credentials

	inner := Resolve(ClientTypeOpenAI)
	b := BinderFunc(func(ctx context.Context, creds Credentials, modelID string) (model.Model, error) {
		gotModel = modelID
		gotCreds = creds
		return inner.Bind(ctx, creds, modelID)
	})

	m, err := b.Bind(context.Background(), Credentials{APIKey: "k", BaseURL: "https://proxy.local"}, "gpt-4o-mini")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "gpt-4o-mini", gotModel)
	assert.Equal(t, "https://proxy.local", gotCreds.BaseURL)
}
