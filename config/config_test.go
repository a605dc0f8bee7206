package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feldspar-ai/feldspar/provider"
	"github.com/feldspar-ai/feldspar/session"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feldspar.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[provider]
kind = "openai"
base_url = "https://api.openai.com/v1"
model = "gpt-4o-mini"
credential = "sk-test"

[session]
max_rounds = 5
max_parallel = 2
system_prompt = "Be terse."
`)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", f.Provider.Kind)
	assert.Equal(t, "gpt-4o-mini", f.Provider.Model)
	assert.Equal(t, 5, f.Session.MaxRounds)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestProviderConfigInlineCredential(t *testing.T) {
	f := &File{Provider: Provider{
		Kind:       "anthropic",
		BaseURL:    "https://api.anthropic.com",
		Model:      "claude-sonnet-4-5",
		Credential: "sk-ant-inline",
	}}

	cfg, err := f.ProviderConfig()
	require.NoError(t, err)
	assert.Equal(t, provider.KindAnthropic, cfg.Kind)
	assert.Equal(t, "sk-ant-inline", cfg.Credential)
}

func TestProviderConfigEnvOverridesInline(t *testing.T) {
	t.Setenv("FELDSPAR_TEST_KEY", "sk-from-env")
	f := &File{Provider: Provider{
		Kind:          "openai",
		Model:         "gpt-4o-mini",
		Credential:    "sk-inline",
		CredentialEnv: "FELDSPAR_TEST_KEY",
	}}

	cfg, err := f.ProviderConfig()
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.Credential)
}

func TestProviderConfigUnsetEnvFails(t *testing.T) {
	f := &File{Provider: Provider{
		Kind:          "openai",
		Model:         "gpt-4o-mini",
		CredentialEnv: "FELDSPAR_TEST_KEY_THAT_IS_NOT_SET",
	}}

	_, err := f.ProviderConfig()
	var cfgErr *provider.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "credential_env", cfgErr.Field)
}

func TestSessionOptions(t *testing.T) {
	f := &File{Session: Session{MaxRounds: 3, SystemPrompt: "Be terse."}}

	opts := session.Options{MaxRounds: 8, MaxParallel: 4}
	f.SessionOptions()(&opts)
	assert.Equal(t, 3, opts.MaxRounds)
	assert.Equal(t, 4, opts.MaxParallel) // zero value leaves the default alone
	assert.Equal(t, "Be terse.", opts.SystemPrompt)
}
