// Package provider defines the normalized contract between the orchestration
// loop and LLM endpoints. One configured endpoint/credential/model triple is
// turned into a uniform complete(history, tools) capability; the concrete
// adapters under provider/openai, provider/anthropic and provider/ollama hide
// the per-vendor request/response shape differences behind it.
package provider

import (
	"context"

	"github.com/feldspar-ai/feldspar/core"
	"github.com/feldspar-ai/feldspar/tool"
)

// Kind identifies the wire-format family an adapter speaks.
type Kind string

const (
	// KindOpenAI speaks the OpenAI Chat Completions protocol.
	KindOpenAI Kind = "openai"
	// KindAnthropic speaks the Anthropic Messages protocol.
	KindAnthropic Kind = "anthropic"
	// KindOllama speaks the Ollama chat protocol against a local server.
	KindOllama Kind = "ollama"
	// KindGroq speaks the OpenAI-compatible protocol against the Groq API.
	KindGroq Kind = "groq"
	// KindCustom speaks the OpenAI-compatible protocol against an arbitrary endpoint.
	KindCustom Kind = "custom"
)

// Valid reports whether k names a known adapter family.
func (k Kind) Valid() bool {
	switch k {
	case KindOpenAI, KindAnthropic, KindOllama, KindGroq, KindCustom:
		return true
	}
	return false
}

// Config is the immutable endpoint/credential/model triple selecting one
// provider for a session. Reconfiguring a session replaces the whole value,
// never mutates a field in place.
type Config struct {
	BaseURL    string `json:"base_url"`
	Credential string `json:"-"` // API key or token; never logged
	ModelID    string `json:"model_id"`
	Kind       Kind   `json:"kind"`
}

// Validate checks the invariants a usable config must satisfy. The ollama
// kind permits anonymous access; every other kind requires a credential.
func (c Config) Validate() error {
	if !c.Kind.Valid() {
		return &ConfigError{Field: "kind", Message: "unknown adapter kind " + string(c.Kind)}
	}
	if c.BaseURL == "" {
		return &ConfigError{Field: "base_url", Message: "base URL must not be empty"}
	}
	if c.ModelID == "" {
		return &ConfigError{Field: "model_id", Message: "model id must not be empty"}
	}
	if c.Credential == "" && c.Kind != KindOllama {
		return &ConfigError{Field: "credential", Message: "credential is required for kind " + string(c.Kind)}
	}
	return nil
}

// Response is the FinalText / ToolCalls union every adapter normalizes to.
// A response with no tool calls is a final answer; otherwise Text is optional
// prose accompanying the call requests.
type Response struct {
	Text      string          `json:"text,omitempty"`
	ToolCalls []core.ToolCall `json:"tool_calls,omitempty"`
}

// IsFinal reports whether the response is a terminal answer for the round.
func (r *Response) IsFinal() bool { return len(r.ToolCalls) == 0 }

// Info contains metadata about an adapter implementation.
type Info struct {
	Provider      string `json:"provider"` // "openai", "anthropic", "ollama", ...
	Model         string `json:"model"`
	SupportsTools bool   `json:"supports_tools"`
}

// Adapter is the uniform completion capability the orchestration loop drives.
//
// Complete performs exactly one network round trip: no internal retries, and
// no conversation state is touched on failure — retry policy belongs to the
// caller. History must be non-empty and must not end in an unresolved
// tool-call turn; the loop enforces this before every call.
type Adapter interface {
	Complete(ctx context.Context, history []core.Turn, tools []tool.Export) (*Response, error)

	// Info returns metadata about the adapter implementation.
	Info() Info
}
