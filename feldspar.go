// Package feldspar provides a high-level façade over the runtime: construct a
// provider adapter from a declarative Config, register schema-checked tools,
// and open a chat session that drives the model/tool orchestration loop.
// Typical usage:
//
//  1. Build a provider.Config and turn it into an adapter via NewAdapter
//  2. Declare tools with tool.NewDescriptor and add them to a tool.Registry
//  3. Create a session.Session and call Chat
//
// The façade keeps setup concise; the subpackages stay independently usable.
package feldspar

import (
	"github.com/feldspar-ai/feldspar/provider"
	"github.com/feldspar-ai/feldspar/provider/anthropic"
	"github.com/feldspar-ai/feldspar/provider/ollama"
	"github.com/feldspar-ai/feldspar/provider/openai"
	"github.com/feldspar-ai/feldspar/session"
	"github.com/feldspar-ai/feldspar/tool"
)

// Default base URLs per adapter kind, applied when a Config leaves BaseURL
// empty. The custom kind has no default: its whole point is an explicit URL.
const (
	DefaultOpenAIBaseURL    = "https://api.openai.com/v1"
	DefaultAnthropicBaseURL = "https://api.anthropic.com"
	DefaultGroqBaseURL      = "https://api.groq.com/openai/v1"
	DefaultOllamaBaseURL    = "http://localhost:11434"
)

// NewAdapter builds the concrete adapter for a provider config. The mapping
// from adapter kind to implementation is a plain tagged-variant switch:
// openai, groq and custom all speak the OpenAI-compatible protocol and differ
// only in endpoint defaults, anthropic speaks the Messages API, ollama the
// local Ollama protocol.
func NewAdapter(cfg provider.Config) (provider.Adapter, error) {
	cfg = withDefaultBaseURL(cfg)
	switch cfg.Kind {
	case provider.KindOpenAI, provider.KindGroq, provider.KindCustom:
		return openai.New(cfg)
	case provider.KindAnthropic:
		return anthropic.New(cfg)
	case provider.KindOllama:
		return ollama.New(cfg)
	default:
		return nil, &provider.ConfigError{Field: "kind", Message: "unknown adapter kind " + string(cfg.Kind)}
	}
}

func withDefaultBaseURL(cfg provider.Config) provider.Config {
	if cfg.BaseURL != "" {
		return cfg
	}
	switch cfg.Kind {
	case provider.KindOpenAI:
		cfg.BaseURL = DefaultOpenAIBaseURL
	case provider.KindAnthropic:
		cfg.BaseURL = DefaultAnthropicBaseURL
	case provider.KindGroq:
		cfg.BaseURL = DefaultGroqBaseURL
	case provider.KindOllama:
		cfg.BaseURL = DefaultOllamaBaseURL
	}
	return cfg
}

// NewSession creates an adapter from cfg and binds it to a fresh session in
// one call. Registry may be nil for tool-less sessions.
func NewSession(cfg provider.Config, registry *tool.Registry, optFns ...func(o *session.Options)) (*session.Session, error) {
	adapter, err := NewAdapter(cfg)
	if err != nil {
		return nil, err
	}
	return session.New(adapter, registry, optFns...), nil
}
