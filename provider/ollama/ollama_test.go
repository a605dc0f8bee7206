package ollama

import (
	"context"
	"testing"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feldspar-ai/feldspar/core"
	"github.com/feldspar-ai/feldspar/provider"
	"github.com/feldspar-ai/feldspar/tool"
)

func TestNewAllowsAnonymousAccess(t *testing.T) {
	a, err := New(provider.Config{
		BaseURL: "http://localhost:11434",
		ModelID: "llama3.2",
		Kind:    provider.KindOllama,
	})
	require.NoError(t, err)
	info := a.Info()
	assert.Equal(t, "ollama", info.Provider)
	assert.Equal(t, "llama3.2", info.Model)
}

func TestNewRejectsMissingModel(t *testing.T) {
	_, err := New(provider.Config{
		BaseURL: "http://localhost:11434",
		Kind:    provider.KindOllama,
	})
	var cfgErr *provider.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "model_id", cfgErr.Field)
}

func TestBuildMessages(t *testing.T) {
	history := []core.Turn{
		core.NewSystemTurn("Be terse."),
		core.NewUserTurn("weather in Oslo?"),
		core.NewToolCallTurn("", []core.ToolCall{
			{ID: "c1", Name: "weather", Arguments: `{"city":"Oslo"}`},
		}),
		core.NewToolResultTurn(core.ToolResult{ID: "c1", Name: "weather", Output: "rainy"}),
	}

	messages := buildMessages(history)
	require.Len(t, messages, 4)

	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "user", messages[1].Role)

	assert.Equal(t, "assistant", messages[2].Role)
	require.Len(t, messages[2].ToolCalls, 1)
	assert.Equal(t, "weather", messages[2].ToolCalls[0].Function.Name)
	assert.Equal(t, "Oslo", messages[2].ToolCalls[0].Function.Arguments["city"])

	assert.Equal(t, "tool", messages[3].Role)
	assert.Equal(t, "weather", messages[3].ToolName)
	assert.Equal(t, "rainy", messages[3].Content)
}

func TestBuildTools(t *testing.T) {
	d, err := tool.NewDescriptor(
		"lookup",
		"Look up a value",
		tool.Schema{
			{Name: "key", Type: tool.TypeString},
			{Name: "limit", Type: tool.TypeNumber},
		},
		tool.Field{Name: "value", Type: tool.TypeString},
		func(_ context.Context, v any) (any, error) { return v, nil },
	)
	require.NoError(t, err)

	registry := tool.NewRegistry()
	require.NoError(t, registry.Register(d))

	tools := buildTools(registry.ExportSchemas())
	require.Len(t, tools, 1)
	assert.Equal(t, "function", tools[0].Type)
	assert.Equal(t, "lookup", tools[0].Function.Name)
	assert.Equal(t, []string{"key", "limit"}, tools[0].Function.Parameters.Required)

	props := tools[0].Function.Parameters.Properties
	require.Contains(t, props, "key")
	assert.Equal(t, api.PropertyType{"string"}, props["key"].Type)
	require.Contains(t, props, "limit")
	assert.Equal(t, api.PropertyType{"number"}, props["limit"].Type)

	assert.Nil(t, buildTools(nil))
}

func TestParseMessage(t *testing.T) {
	final := parseMessage(api.Message{Role: "assistant", Content: "All done."})
	assert.True(t, final.IsFinal())
	assert.Equal(t, "All done.", final.Text)

	calls := parseMessage(api.Message{
		Role: "assistant",
		ToolCalls: []api.ToolCall{
			{Function: api.ToolCallFunction{Name: "weather", Arguments: map[string]any{"city": "Oslo"}}},
			{Function: api.ToolCallFunction{Name: "weather", Arguments: map[string]any{"city": "Bergen"}}},
		},
	})
	assert.False(t, calls.IsFinal())
	require.Len(t, calls.ToolCalls, 2)
	assert.Equal(t, "weather", calls.ToolCalls[0].Name)
	assert.JSONEq(t, `{"city":"Oslo"}`, calls.ToolCalls[0].Arguments)

	// Synthesized correlation IDs are unique per request.
	assert.NotEmpty(t, calls.ToolCalls[0].ID)
	assert.NotEqual(t, calls.ToolCalls[0].ID, calls.ToolCalls[1].ID)
}
