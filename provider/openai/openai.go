// Package openai adapts the OpenAI Chat Completions API (and any
// OpenAI-compatible endpoint, which covers the groq and custom adapter kinds)
// to the provider.Adapter contract. It translates conversation turns into the
// SDK's message format, attaches tool schemas as function definitions and
// folds the reply back into the FinalText/ToolCalls union.
package openai

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/feldspar-ai/feldspar/core"
	"github.com/feldspar-ai/feldspar/provider"
	"github.com/feldspar-ai/feldspar/tool"
)

// Options configure the adapter beyond the endpoint triple. Fields mirror a
// minimal subset of Chat Completion parameters; extend via functional options
// without breaking callers.
type Options struct {
	Temperature         float64
	MaxCompletionTokens int64
}

// Adapter wraps the OpenAI Chat Completions API behind provider.Adapter.
type Adapter struct {
	client openai.Client
	cfg    provider.Config
	opts   Options
}

// New creates an adapter for the configured endpoint. The same implementation
// serves the openai, groq and custom kinds; they differ only in base URL and
// credential.
func New(cfg provider.Config, optFns ...func(o *Options)) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := Options{
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	clientOpts := []option.RequestOption{
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.Credential),
	}

	return &Adapter{
		client: openai.NewClient(clientOpts...),
		cfg:    cfg,
		opts:   opts,
	}, nil
}

// Complete implements provider.Adapter with a single non-streaming exchange.
func (a *Adapter) Complete(ctx context.Context, history []core.Turn, tools []tool.Export) (*provider.Response, error) {
	params := openai.ChatCompletionNewParams{
		Messages:            buildMessages(history),
		Model:               a.cfg.ModelID,
		Temperature:         openai.Float(a.opts.Temperature),
		MaxCompletionTokens: openai.Int(a.opts.MaxCompletionTokens),
	}
	if len(tools) > 0 {
		params.Tools = buildTools(tools)
	}

	resp, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, provider.NewError(provider.ErrMalformed, "no choices returned", nil)
	}
	return parseChoice(resp.Choices[0]), nil
}

// Info returns metadata describing this adapter.
func (a *Adapter) Info() provider.Info {
	return provider.Info{
		Provider:      string(a.cfg.Kind),
		Model:         a.cfg.ModelID,
		SupportsTools: true,
	}
}

// buildMessages converts conversation turns into OpenAI chat messages.
// History produced by the orchestration loop is already well formed: every
// assistant tool-call turn is followed by its tool result turns in request
// order, so the translation is a direct walk.
func buildMessages(history []core.Turn) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history))
	for _, turn := range history {
		switch turn.Role {
		case core.RoleSystem:
			messages = append(messages, openai.SystemMessage(turn.Content))
		case core.RoleUser:
			messages = append(messages, openai.UserMessage(turn.Content))
		case core.RoleAssistant:
			if len(turn.ToolCalls) == 0 {
				messages = append(messages, openai.AssistantMessage(turn.Content))
				continue
			}
			toolCalls := make([]openai.ChatCompletionMessageToolCallParam, len(turn.ToolCalls))
			for i, call := range turn.ToolCalls {
				toolCalls[i] = openai.ChatCompletionMessageToolCallParam{
					ID:   call.ID,
					Type: "function",
					Function: openai.ChatCompletionMessageToolCallFunctionParam{
						Name:      call.Name,
						Arguments: call.Arguments,
					},
				}
			}
			messages = append(messages, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Role:      "assistant",
					ToolCalls: toolCalls,
				},
			})
		case core.RoleTool:
			if turn.ToolResult == nil {
				continue
			}
			messages = append(messages, openai.ToolMessage(provider.EncodeToolResult(turn.ToolResult), turn.ToolResult.ID))
		}
	}
	return messages
}

// buildTools converts tool schema exports into OpenAI function definitions.
func buildTools(exports []tool.Export) []openai.ChatCompletionToolParam {
	tools := make([]openai.ChatCompletionToolParam, len(exports))
	for i, e := range exports {
		tools[i] = openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        e.Name,
				Description: openai.String(e.Description),
				Parameters:  e.Parameters(),
			},
		}
	}
	return tools
}

// parseChoice folds an API choice into the response union.
func parseChoice(choice openai.ChatCompletionChoice) *provider.Response {
	resp := &provider.Response{Text: choice.Message.Content}
	for _, tc := range choice.Message.ToolCalls {
		resp.ToolCalls = append(resp.ToolCalls, core.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return resp
}

// classify maps SDK errors onto the provider error taxonomy.
func classify(err error) *provider.Error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return provider.Classify(err, apierr.StatusCode)
	}
	return provider.Classify(err, 0)
}
