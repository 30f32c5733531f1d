// Package config loads persona builder settings from defaults, a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/codeGROOVE-dev/redditpersona/pkg/inference"
	"github.com/codeGROOVE-dev/redditpersona/pkg/persona"
	"github.com/codeGROOVE-dev/redditpersona/pkg/reddit"
)

// Inference providers.
const (
	ProviderTogether = "together"
	ProviderGemini   = "gemini"
)

// Duration is a time.Duration written as a string such as "1.1s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Reddit holds content API settings.
type Reddit struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	UserAgent    string `toml:"user_agent"`
	BaseURL      string `toml:"base_url"`
}

// Inference holds language-model settings.
type Inference struct {
	Provider      string   `toml:"provider"`
	Endpoint      string   `toml:"endpoint"`
	Model         string   `toml:"model"`
	APIKey        string   `toml:"api_key"`
	GeminiAPIKey  string   `toml:"gemini_api_key"`
	GCPProject    string   `toml:"gcp_project"`
	RetryDelay    Duration `toml:"retry_delay"`
	RetryAttempts uint     `toml:"retry_attempts"`
}

// Pipeline holds run settings.
type Pipeline struct {
	CallDelay Duration `toml:"call_delay"`
	Limit     int      `toml:"limit"`
}

// Config is the complete configuration.
type Config struct {
	Reddit    Reddit    `toml:"reddit"`
	Inference Inference `toml:"inference"`
	Pipeline  Pipeline  `toml:"pipeline"`
}

// Default returns the built-in configuration. It contains no credentials.
func Default() Config {
	policy := inference.DefaultPolicy()
	return Config{
		Reddit: Reddit{UserAgent: reddit.DefaultUserAgent},
		Inference: Inference{
			Provider:      ProviderTogether,
			Endpoint:      inference.DefaultTogetherURL,
			RetryAttempts: policy.Attempts,
			RetryDelay:    Duration{policy.Delay},
		},
		Pipeline: Pipeline{
			Limit:     persona.DefaultLimit,
			CallDelay: Duration{persona.DefaultCallDelay},
		},
	}
}

// Load reads path (optional) over the defaults, then applies environment overrides
// looked up with getenv. The result is not validated; callers apply their own
// overrides first and then call Validate.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.Reddit.ClientID, "REDDIT_CLIENT_ID")
	set(&cfg.Reddit.ClientSecret, "REDDIT_CLIENT_SECRET")
	set(&cfg.Reddit.UserAgent, "REDDIT_USER_AGENT")
	set(&cfg.Inference.Provider, "PERSONA_PROVIDER")
	set(&cfg.Inference.Endpoint, "TOGETHER_API_URL")
	set(&cfg.Inference.Model, "PERSONA_MODEL")
	set(&cfg.Inference.APIKey, "TOGETHER_API_KEY")
	set(&cfg.Inference.GeminiAPIKey, "GEMINI_API_KEY")
	set(&cfg.Inference.GCPProject, "GCP_PROJECT")

	if v := getenv("PERSONA_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PERSONA_LIMIT: %w", err)
		}
		cfg.Pipeline.Limit = n
	}
	return nil
}

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	var errs []error
	switch c.Inference.Provider {
	case ProviderTogether, ProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("unknown inference provider %q", c.Inference.Provider))
	}
	if c.Pipeline.Limit <= 0 {
		errs = append(errs, fmt.Errorf("limit must be positive, got %d", c.Pipeline.Limit))
	}
	if c.Inference.RetryAttempts == 0 {
		errs = append(errs, errors.New("retry_attempts must be at least 1"))
	}
	return errors.Join(errs...)
}

// Policy returns the inference retry policy.
func (c Config) Policy() inference.Policy {
	return inference.Policy{Attempts: c.Inference.RetryAttempts, Delay: c.Inference.RetryDelay.Duration}
}

// Model returns the configured model, or the provider's default.
func (c Config) Model() string {
	if c.Inference.Model != "" {
		return c.Inference.Model
	}
	if c.Inference.Provider == ProviderGemini {
		return inference.DefaultGeminiModel
	}
	return inference.DefaultTogetherModel
}
