// Package config loads runtime settings from a TOML file: the active provider
// triple and session tuning. It exists for the thin front-ends (CLI, example
// programs); the core packages never read files themselves. Credentials may be
// given inline or indirected through an environment variable so config files
// stay shareable.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/feldspar-ai/feldspar/provider"
	"github.com/feldspar-ai/feldspar/session"
)

// Provider selects and authenticates the model endpoint.
type Provider struct {
	Kind          string `toml:"kind"`           // "openai", "anthropic", "ollama", "groq", "custom"
	BaseURL       string `toml:"base_url"`       // empty selects the kind's default endpoint
	Model         string `toml:"model"`          // provider model id
	Credential    string `toml:"credential"`     // inline API key (discouraged for shared files)
	CredentialEnv string `toml:"credential_env"` // environment variable holding the API key
}

// Session tunes the orchestration loop.
type Session struct {
	MaxRounds    int    `toml:"max_rounds"`
	MaxParallel  int    `toml:"max_parallel"`
	SystemPrompt string `toml:"system_prompt"`
}

// File is the root of a settings file.
type File struct {
	Provider Provider `toml:"provider"`
	Session  Session  `toml:"session"`
}

// Load parses a TOML settings file.
func Load(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return &f, nil
}

// ProviderConfig resolves the file's provider section into a validated
// provider.Config. When CredentialEnv is set it takes precedence over an
// inline credential; a named-but-unset variable is an error rather than a
// silent anonymous fallback.
func (f *File) ProviderConfig() (provider.Config, error) {
	credential := f.Provider.Credential
	if f.Provider.CredentialEnv != "" {
		v, ok := os.LookupEnv(f.Provider.CredentialEnv)
		if !ok {
			return provider.Config{}, &provider.ConfigError{
				Field:   "credential_env",
				Message: "environment variable " + f.Provider.CredentialEnv + " is not set",
			}
		}
		credential = v
	}

	return provider.Config{
		BaseURL:    f.Provider.BaseURL,
		Credential: credential,
		ModelID:    f.Provider.Model,
		Kind:       provider.Kind(f.Provider.Kind),
	}, nil
}

// SessionOptions returns a session option function applying the file's
// session section. Zero values defer to session defaults.
func (f *File) SessionOptions() func(o *session.Options) {
	return func(o *session.Options) {
		if f.Session.MaxRounds > 0 {
			o.MaxRounds = f.Session.MaxRounds
		}
		if f.Session.MaxParallel > 0 {
			o.MaxParallel = f.Session.MaxParallel
		}
		if f.Session.SystemPrompt != "" {
			o.SystemPrompt = f.Session.SystemPrompt
		}
	}
}
