// Package config loads the runtime configuration from defaults, an optional
// YAML file and AGENTPILOT_* environment variables. The resulting Config is
// built once at startup and passed by reference; nothing here is cached in
// package state.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Supported reasoning engine providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderMock      = "mock"
)

// Supported session store backends.
const (
	SessionBackendFile   = "file"
	SessionBackendSQLite = "sqlite"
)

// Config is the complete runtime configuration.
type Config struct {
	// Provider selects the reasoning engine: openai, anthropic or mock.
	Provider string `mapstructure:"provider"`
	// Model is the provider-specific model identifier. Empty uses the
	// provider default.
	Model string `mapstructure:"model"`
	// Temperature for generation calls.
	Temperature float64 `mapstructure:"temperature"`
	// MaxTokens caps completion length.
	MaxTokens int64 `mapstructure:"max_tokens"`

	// SessionBackend selects persistence: file or sqlite.
	SessionBackend string `mapstructure:"session_backend"`
	// SessionDir is the base directory for the file backend.
	SessionDir string `mapstructure:"session_dir"`
	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `mapstructure:"sqlite_path"`

	// PromptDir is the prompt pack base directory.
	PromptDir string `mapstructure:"prompt_dir"`
	// PromptVersion pins the active prompt version when set.
	PromptVersion string `mapstructure:"prompt_version"`

	// DefaultPlanStepBudget caps plan execution when a request carries no
	// explicit budget. Zero means run every planned step.
	DefaultPlanStepBudget int `mapstructure:"default_plan_step_budget"`

	// ServerHost and ServerPort configure the HTTP transport.
	ServerHost string `mapstructure:"server_host"`
	ServerPort int    `mapstructure:"server_port"`

	// LogLevel is debug, info, warn or error; LogFormat is json or text.
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// SearchBaseURL is the upstream endpoint for the web_search tool.
	SearchBaseURL string `mapstructure:"search_base_url"`
	// APIBaseURL is the base of the internal records API.
	APIBaseURL string `mapstructure:"api_base_url"`
	// BankAPIToken authenticates bank_account_api calls.
	BankAPIToken string `mapstructure:"bank_api_token"`
}

// Load builds the configuration. configFile may be empty, in which case only
// defaults and environment variables apply.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("provider", ProviderOpenAI)
	v.SetDefault("model", "")
	v.SetDefault("temperature", 0.7)
	v.SetDefault("max_tokens", 4096)
	v.SetDefault("session_backend", SessionBackendFile)
	v.SetDefault("session_dir", "data/sessions")
	v.SetDefault("sqlite_path", "data/agentpilot.db")
	v.SetDefault("prompt_dir", "data/prompts")
	v.SetDefault("prompt_version", "")
	v.SetDefault("default_plan_step_budget", 0)
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", 8093)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("search_base_url", "https://example.com/search")
	v.SetDefault("api_base_url", "https://example.com/api")
	v.SetDefault("bank_api_token", "")

	v.SetEnvPrefix("AGENTPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unsupported enum values early so misconfiguration fails
// at startup rather than mid-request.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderMock:
	default:
		return fmt.Errorf("unsupported provider: %s", c.Provider)
	}
	switch c.SessionBackend {
	case SessionBackendFile, SessionBackendSQLite:
	default:
		return fmt.Errorf("unsupported session backend: %s", c.SessionBackend)
	}
	if c.DefaultPlanStepBudget < 0 {
		return errors.New("default_plan_step_budget must not be negative")
	}
	return nil
}
