package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/codeGROOVE-dev/redditpersona/pkg/inference"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "persona.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", envMap(nil))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Model() != inference.DefaultTogetherModel {
		t.Errorf("Model() = %q", cfg.Model())
	}
	if got := cfg.Policy(); got.Attempts != 3 || got.Delay != 2*time.Second {
		t.Errorf("Policy() = %+v", got)
	}
	if cfg.Reddit.ClientID != "" || cfg.Inference.APIKey != "" {
		t.Error("defaults must not carry credentials")
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, `
[reddit]
client_id = "file-id"
user_agent = "file-agent"

[inference]
model = "file-model"
retry_attempts = 5
retry_delay = "250ms"

[pipeline]
limit = 20
call_delay = "1.5s"
`)
	cfg, err := Load(path, envMap(map[string]string{
		"REDDIT_CLIENT_ID": "env-id",
		"TOGETHER_API_KEY": "env-key",
		"PERSONA_LIMIT":    "7",
	}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Reddit.ClientID != "env-id" {
		t.Errorf("ClientID = %q, want env override", cfg.Reddit.ClientID)
	}
	if cfg.Reddit.UserAgent != "file-agent" {
		t.Errorf("UserAgent = %q, want file value", cfg.Reddit.UserAgent)
	}
	if cfg.Inference.APIKey != "env-key" {
		t.Errorf("APIKey = %q", cfg.Inference.APIKey)
	}
	if cfg.Model() != "file-model" {
		t.Errorf("Model() = %q", cfg.Model())
	}
	if cfg.Pipeline.Limit != 7 {
		t.Errorf("Limit = %d, want 7", cfg.Pipeline.Limit)
	}
	if cfg.Pipeline.CallDelay.Duration != 1500*time.Millisecond {
		t.Errorf("CallDelay = %v", cfg.Pipeline.CallDelay)
	}
	if p := cfg.Policy(); p.Attempts != 5 || p.Delay != 250*time.Millisecond {
		t.Errorf("Policy() = %+v", p)
	}
	// Untouched keys keep their defaults.
	if cfg.Inference.Endpoint != inference.DefaultTogetherURL {
		t.Errorf("Endpoint = %q", cfg.Inference.Endpoint)
	}
}

func TestLoadGeminiModelDefault(t *testing.T) {
	cfg, err := Load("", envMap(map[string]string{"PERSONA_PROVIDER": "gemini"}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model() != inference.DefaultGeminiModel {
		t.Errorf("Model() = %q", cfg.Model())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		env  map[string]string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") }, nil},
		{"bad toml", func(t *testing.T) string { return writeConfig(t, "[pipeline\nlimit = ") }, nil},
		{"bad duration", func(t *testing.T) string { return writeConfig(t, "[pipeline]\ncall_delay = \"soon\"\n") }, nil},
		{"bad limit", func(*testing.T) string { return "" }, map[string]string{"PERSONA_LIMIT": "many"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path(t), envMap(tt.env)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"gemini", func(c *Config) { c.Inference.Provider = ProviderGemini }, true},
		{"unknown provider", func(c *Config) { c.Inference.Provider = "openai" }, false},
		{"provider is case sensitive", func(c *Config) { c.Inference.Provider = "Together" }, false},
		{"zero limit", func(c *Config) { c.Pipeline.Limit = 0 }, false},
		{"zero attempts", func(c *Config) { c.Inference.RetryAttempts = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestLoadLeavesValidationToCaller(t *testing.T) {
	cfg, err := Load("", envMap(map[string]string{
		"PERSONA_PROVIDER": "Together",
		"PERSONA_LIMIT":    "0",
	}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Validate() == nil {
		t.Fatal("Validate() accepted an unknown provider and zero limit")
	}

	// Later overrides, such as command-line flags, can still repair the values.
	cfg.Inference.Provider = ProviderTogether
	cfg.Pipeline.Limit = 10
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() after overrides: %v", err)
	}
}
