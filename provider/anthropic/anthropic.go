// Package anthropic adapts the Anthropic Messages API to the provider.Adapter
// contract. System turns become system blocks, assistant tool calls become
// tool_use blocks and tool results are grouped into the user-role tool_result
// message the wire protocol requires.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"

	"github.com/feldspar-ai/feldspar/core"
	"github.com/feldspar-ai/feldspar/provider"
	"github.com/feldspar-ai/feldspar/tool"
)

// Options configure the adapter (temperature, max tokens). Extend via
// functional options to preserve stability.
type Options struct {
	Temperature float64
	MaxTokens   int64
}

// Adapter wraps the Anthropic Messages API behind provider.Adapter.
type Adapter struct {
	client anthropic.Client
	cfg    provider.Config
	opts   Options
}

// New creates an adapter for the configured endpoint.
func New(cfg provider.Config, optFns ...func(o *Options)) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := Options{
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	client := anthropic.NewClient(
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.Credential),
	)

	return &Adapter{client: client, cfg: cfg, opts: opts}, nil
}

// Complete implements provider.Adapter with a single non-streaming exchange.
func (a *Adapter) Complete(ctx context.Context, history []core.Turn, tools []tool.Export) (*provider.Response, error) {
	system, messages := buildMessages(history)

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(a.cfg.ModelID),
		Messages:    messages,
		MaxTokens:   a.opts.MaxTokens,
		Temperature: anthropic.Float(a.opts.Temperature),
	}
	if len(system) > 0 {
		params.System = system
	}
	if len(tools) > 0 {
		params.Tools = buildTools(tools)
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, classify(err)
	}
	return parseContent(resp.Content), nil
}

// Info returns metadata describing this adapter.
func (a *Adapter) Info() provider.Info {
	return provider.Info{
		Provider:      string(provider.KindAnthropic),
		Model:         a.cfg.ModelID,
		SupportsTools: true,
	}
}

// buildMessages converts conversation turns to Anthropic message params.
// System turns are extracted into system blocks. Consecutive tool turns are
// grouped into a single user message of tool_result blocks, which is the shape
// the Messages API expects directly after an assistant tool_use message.
func buildMessages(history []core.Turn) ([]anthropic.TextBlockParam, []anthropic.MessageParam) {
	var system []anthropic.TextBlockParam
	var messages []anthropic.MessageParam

	var pendingResults []anthropic.ContentBlockParamUnion
	flushResults := func() {
		if len(pendingResults) == 0 {
			return
		}
		messages = append(messages, anthropic.NewUserMessage(pendingResults...))
		pendingResults = nil
	}

	for _, turn := range history {
		switch turn.Role {
		case core.RoleSystem:
			flushResults()
			if turn.Content != "" {
				system = append(system, anthropic.TextBlockParam{Text: turn.Content})
			}
		case core.RoleUser:
			flushResults()
			if turn.Content != "" {
				messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(turn.Content)))
			}
		case core.RoleAssistant:
			flushResults()
			var blocks []anthropic.ContentBlockParamUnion
			if turn.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(turn.Content))
			}
			for _, call := range turn.ToolCalls {
				var input any
				if call.Arguments != "" {
					if err := json.Unmarshal([]byte(call.Arguments), &input); err != nil {
						input = call.Arguments // fallback to the raw string
					}
				}
				blocks = append(blocks, anthropic.NewToolUseBlock(call.ID, input, call.Name))
			}
			if len(blocks) > 0 {
				messages = append(messages, anthropic.NewAssistantMessage(blocks...))
			}
		case core.RoleTool:
			if turn.ToolResult == nil {
				continue
			}
			pendingResults = append(pendingResults, anthropic.NewToolResultBlock(
				turn.ToolResult.ID,
				provider.EncodeToolResult(turn.ToolResult),
				turn.ToolResult.Failed(),
			))
		}
	}
	flushResults()

	return system, messages
}

// buildTools converts tool schema exports to Anthropic tool params.
func buildTools(exports []tool.Export) []anthropic.ToolUnionParam {
	tools := make([]anthropic.ToolUnionParam, len(exports))
	for i, e := range exports {
		schema := e.Parameters()
		inputSchema := anthropic.ToolInputSchemaParam{
			Type: constant.Object("object"),
		}
		if properties, ok := schema["properties"]; ok {
			inputSchema.Properties = properties
		}
		if required, ok := schema["required"].([]string); ok {
			inputSchema.Required = required
		}
		tools[i] = anthropic.ToolUnionParamOfTool(inputSchema, e.Name)
	}
	return tools
}

// parseContent folds reply content blocks into the response union.
func parseContent(blocks []anthropic.ContentBlockUnion) *provider.Response {
	resp := &provider.Response{}
	for _, block := range blocks {
		switch block.Type {
		case "text":
			resp.Text += block.AsText().Text
		case "tool_use":
			toolBlock := block.AsToolUse()
			args := ""
			if toolBlock.Input != nil {
				if raw, err := json.Marshal(toolBlock.Input); err == nil {
					args = string(raw)
				}
			}
			resp.ToolCalls = append(resp.ToolCalls, core.ToolCall{
				ID:        toolBlock.ID,
				Name:      toolBlock.Name,
				Arguments: args,
			})
		}
	}
	return resp
}

// classify maps SDK errors onto the provider error taxonomy.
func classify(err error) *provider.Error {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		return provider.Classify(err, apierr.StatusCode)
	}
	return provider.Classify(err, 0)
}
