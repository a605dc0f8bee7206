package feldspar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feldspar-ai/feldspar/provider"
)

func TestNewAdapterKinds(t *testing.T) {
	tests := []struct {
		kind         provider.Kind
		wantProvider string
	}{
		{provider.KindOpenAI, "openai"},
		{provider.KindGroq, "groq"},
		{provider.KindAnthropic, "anthropic"},
		{provider.KindOllama, "ollama"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			adapter, err := NewAdapter(provider.Config{
				Credential: "test-key",
				ModelID:    "test-model",
				Kind:       tt.kind,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantProvider, adapter.Info().Provider)
		})
	}
}

func TestNewAdapterCustomRequiresBaseURL(t *testing.T) {
	// The custom kind has no default endpoint.
	_, err := NewAdapter(provider.Config{
		Credential: "test-key",
		ModelID:    "test-model",
		Kind:       provider.KindCustom,
	})
	var cfgErr *provider.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "base_url", cfgErr.Field)

	adapter, err := NewAdapter(provider.Config{
		BaseURL:    "https://llm.internal.example.com/v1",
		Credential: "test-key",
		ModelID:    "test-model",
		Kind:       provider.KindCustom,
	})
	require.NoError(t, err)
	assert.Equal(t, "custom", adapter.Info().Provider)
}

func TestNewAdapterUnknownKind(t *testing.T) {
	_, err := NewAdapter(provider.Config{Kind: "telepathy"})
	var cfgErr *provider.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "kind", cfgErr.Field)
}

func TestNewSession(t *testing.T) {
	sess, err := NewSession(provider.Config{
		Credential: "test-key",
		ModelID:    "test-model",
		Kind:       provider.KindOpenAI,
	}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID())
	assert.Empty(t, sess.History())
}
