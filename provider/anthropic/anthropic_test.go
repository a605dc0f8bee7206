package anthropic

import (
	"context"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feldspar-ai/feldspar/core"
	"github.com/feldspar-ai/feldspar/provider"
	"github.com/feldspar-ai/feldspar/tool"
)

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(provider.Config{Kind: provider.KindAnthropic})
	var cfgErr *provider.ConfigError
	require.ErrorAs(t, err, &cfgErr)

	a, err := New(provider.Config{
		BaseURL:    "https://api.anthropic.com",
		Credential: "sk-ant-test",
		ModelID:    "claude-sonnet-4-5",
		Kind:       provider.KindAnthropic,
	})
	require.NoError(t, err)
	info := a.Info()
	assert.Equal(t, "anthropic", info.Provider)
	assert.True(t, info.SupportsTools)
}

func TestBuildMessagesExtractsSystem(t *testing.T) {
	history := []core.Turn{
		core.NewSystemTurn("Be terse."),
		core.NewUserTurn("hi"),
	}

	system, messages := buildMessages(history)
	require.Len(t, system, 1)
	assert.Equal(t, "Be terse.", system[0].Text)
	require.Len(t, messages, 1)
	assert.Equal(t, anthropic.MessageParamRoleUser, messages[0].Role)
}

func TestBuildMessagesGroupsToolResults(t *testing.T) {
	history := []core.Turn{
		core.NewUserTurn("run both"),
		core.NewToolCallTurn("", []core.ToolCall{
			{ID: "c1", Name: "alpha", Arguments: `{"in":"x"}`},
			{ID: "c2", Name: "beta", Arguments: `{"in":"y"}`},
		}),
		core.NewToolResultTurn(core.ToolResult{ID: "c1", Name: "alpha", Output: "one"}),
		core.NewToolResultTurn(core.ToolResult{ID: "c2", Name: "beta", Error: "beta exploded"}),
		core.NewAssistantTurn("done"),
	}

	_, messages := buildMessages(history)
	// user, assistant(tool_use), user(grouped tool_results), assistant.
	require.Len(t, messages, 4)

	assert.Equal(t, anthropic.MessageParamRoleAssistant, messages[1].Role)
	require.Len(t, messages[1].Content, 2)
	require.NotNil(t, messages[1].Content[0].OfToolUse)
	assert.Equal(t, "c1", messages[1].Content[0].OfToolUse.ID)
	assert.Equal(t, "alpha", messages[1].Content[0].OfToolUse.Name)

	// Both results land in one user message, in request order, with the
	// failed call flagged.
	assert.Equal(t, anthropic.MessageParamRoleUser, messages[2].Role)
	require.Len(t, messages[2].Content, 2)
	first := messages[2].Content[0].OfToolResult
	second := messages[2].Content[1].OfToolResult
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, "c1", first.ToolUseID)
	assert.False(t, first.IsError.Value)
	assert.Equal(t, "c2", second.ToolUseID)
	assert.True(t, second.IsError.Value)

	assert.Equal(t, anthropic.MessageParamRoleAssistant, messages[3].Role)
}

func TestBuildMessagesSkipsEmptyTurns(t *testing.T) {
	history := []core.Turn{
		core.NewUserTurn(""),
		{Role: core.RoleTool},
		core.NewUserTurn("hi"),
	}
	_, messages := buildMessages(history)
	assert.Len(t, messages, 1)
}

func TestBuildTools(t *testing.T) {
	d, err := tool.NewDescriptor(
		"lookup",
		"Look up a value",
		tool.Schema{
			{Name: "key", Type: tool.TypeString},
			{Name: "strict", Type: tool.TypeBoolean},
		},
		tool.Field{Name: "value", Type: tool.TypeString},
		func(_ context.Context, v any) (any, error) { return v, nil },
	)
	require.NoError(t, err)

	registry := tool.NewRegistry()
	require.NoError(t, registry.Register(d))

	tools := buildTools(registry.ExportSchemas())
	require.Len(t, tools, 1)
	require.NotNil(t, tools[0].OfTool)
	assert.Equal(t, "lookup", tools[0].OfTool.Name)
	assert.Equal(t, []string{"key", "strict"}, tools[0].OfTool.InputSchema.Required)

	props, ok := tools[0].OfTool.InputSchema.Properties.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "key")
	assert.Contains(t, props, "strict")
}
