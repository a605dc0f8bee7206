// Package ollama adapts a local Ollama server to the provider.Adapter
// contract using the official client. Ollama is the one adapter kind that
// permits anonymous access, and its tool calls carry no correlation IDs, so
// the adapter synthesizes them.
package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/ollama/ollama/api"

	"github.com/feldspar-ai/feldspar/core"
	"github.com/feldspar-ai/feldspar/provider"
	"github.com/feldspar-ai/feldspar/tool"
)

// Adapter wraps the Ollama chat API behind provider.Adapter.
type Adapter struct {
	client *api.Client
	cfg    provider.Config
}

// New creates an adapter for a local Ollama server.
func New(cfg provider.Config) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, &provider.ConfigError{Field: "base_url", Message: "invalid Ollama URL: " + err.Error()}
	}
	return &Adapter{
		client: api.NewClient(parsed, http.DefaultClient),
		cfg:    cfg,
	}, nil
}

// Complete implements provider.Adapter with a single non-streaming exchange.
func (a *Adapter) Complete(ctx context.Context, history []core.Turn, tools []tool.Export) (*provider.Response, error) {
	stream := false
	req := &api.ChatRequest{
		Model:    a.cfg.ModelID,
		Messages: buildMessages(history),
		Tools:    buildTools(tools),
		Stream:   &stream,
	}

	var reply api.ChatResponse
	err := a.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		reply = resp
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return parseMessage(reply.Message), nil
}

// Info returns metadata describing this adapter.
func (a *Adapter) Info() provider.Info {
	return provider.Info{
		Provider:      string(provider.KindOllama),
		Model:         a.cfg.ModelID,
		SupportsTools: true,
	}
}

// buildMessages converts conversation turns to Ollama chat messages.
func buildMessages(history []core.Turn) []api.Message {
	messages := make([]api.Message, 0, len(history))
	for _, turn := range history {
		switch turn.Role {
		case core.RoleSystem, core.RoleUser:
			messages = append(messages, api.Message{Role: string(turn.Role), Content: turn.Content})
		case core.RoleAssistant:
			msg := api.Message{Role: "assistant", Content: turn.Content}
			for _, call := range turn.ToolCalls {
				args := api.ToolCallFunctionArguments{}
				if call.Arguments != "" {
					// Best effort: malformed stored arguments degrade to empty args.
					_ = json.Unmarshal([]byte(call.Arguments), &args)
				}
				msg.ToolCalls = append(msg.ToolCalls, api.ToolCall{
					Function: api.ToolCallFunction{Name: call.Name, Arguments: args},
				})
			}
			messages = append(messages, msg)
		case core.RoleTool:
			if turn.ToolResult == nil {
				continue
			}
			messages = append(messages, api.Message{
				Role:     "tool",
				Content:  provider.EncodeToolResult(turn.ToolResult),
				ToolName: turn.ToolResult.Name,
			})
		}
	}
	return messages
}

// buildTools converts tool schema exports to Ollama tool definitions.
func buildTools(exports []tool.Export) []api.Tool {
	if len(exports) == 0 {
		return nil
	}
	tools := make([]api.Tool, len(exports))
	for i, e := range exports {
		properties := make(map[string]api.ToolProperty, len(e.Input))
		required := make([]string, 0, len(e.Input))
		for _, f := range e.Input {
			properties[f.Name] = api.ToolProperty{Type: api.PropertyType{string(f.Type)}}
			required = append(required, f.Name)
		}
		tools[i] = api.Tool{
			Type: "function",
			Function: api.ToolFunction{
				Name:        e.Name,
				Description: e.Description,
				Parameters: api.ToolFunctionParameters{
					Type:       "object",
					Required:   required,
					Properties: properties,
				},
			},
		}
	}
	return tools
}

// parseMessage folds the reply message into the response union. Ollama tool
// calls lack IDs, so each request gets a fresh one for result correlation.
func parseMessage(msg api.Message) *provider.Response {
	resp := &provider.Response{Text: msg.Content}
	for _, tc := range msg.ToolCalls {
		args := ""
		if raw, err := json.Marshal(tc.Function.Arguments); err == nil {
			args = string(raw)
		}
		resp.ToolCalls = append(resp.ToolCalls, core.ToolCall{
			ID:        uuid.NewString(),
			Name:      tc.Function.Name,
			Arguments: args,
		})
	}
	return resp
}

// classify maps client errors onto the provider error taxonomy.
func classify(err error) *provider.Error {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		return provider.Classify(err, statusErr.StatusCode)
	}
	return provider.Classify(err, 0)
}
