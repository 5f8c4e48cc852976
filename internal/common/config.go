package common

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	GitHub      GitHubConfig  `toml:"github"`
	Auth        AuthConfig    `toml:"auth"`
	Login       LoginConfig   `toml:"login"`
	Limits      LimitsConfig  `toml:"limits"`
	Logging     LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	Mode string `toml:"mode" validate:"oneof=stdio http"` // "stdio" (default) or "http"
	Port int    `toml:"port" validate:"min=0,max=65535"`
	Host string `toml:"host"`
}

// GitHubConfig carries the platform endpoints. The base URLs are only
// overridden in tests; production always talks to github.com.
type GitHubConfig struct {
	ClientID   string `toml:"client_id"`    // GitHub App client ID for the device flow (no secret required)
	APIBaseURL string `toml:"api_base_url"` // REST API base, default https://api.github.com/
	OAuthBase  string `toml:"oauth_base"`   // device/token endpoints base, default https://github.com
}

// AuthConfig controls where each call's bearer token comes from.
type AuthConfig struct {
	HeaderName string `toml:"header_name"` // inbound credential header (default "X-GitHub-Token")
	TokenEnv   string `toml:"token_env"`   // fallback env var for local testing (default "GITHUB_TOKEN")
}

// LoginConfig bounds the device-flow polling loop.
type LoginConfig struct {
	Scopes         string `toml:"scopes"`          // fixed scope set requested with the device code
	PollBudget     string `toml:"poll_budget"`     // e.g. "120s" - wall-clock budget for verify_login
	FallbackPoll   string `toml:"fallback_poll"`   // cadence when the platform sends no interval, e.g. "5s"
	IntervalMargin string `toml:"interval_margin"` // safety margin added to the platform interval, e.g. "1s"
}

type LimitsConfig struct {
	MapMaxPaths       int     `toml:"map_max_paths"`        // repository map path cap
	ReadmeMaxChars    int     `toml:"readme_max_chars"`     // README truncation after decode
	PRBodyMaxChars    int     `toml:"pr_body_max_chars"`    // linked PR body truncation
	HistoryDepth      int     `toml:"history_depth"`        // commits fetched per file
	RefConcurrency    int     `toml:"ref_concurrency"`      // concurrent fetches in read_references
	RefRequestsPerSec float64 `toml:"ref_requests_per_sec"` // politeness limit across the fan-out
	BranchPrefix      string  `toml:"branch_prefix"`        // prefix for generated branch names
}

type LoggingConfig struct {
	Level      string `toml:"level"` // "debug", "info", "warn", "error"
	TimeFormat string `toml:"time_format"`
}

// LoadFromFile loads configuration from a TOML file, applies defaults
// and environment overrides, and validates the result. A missing file is
// not an error; the defaults describe a working stdio deployment.
func LoadFromFile(path string) (*Config, error) {
	config := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(config)
	applyDefaults(config)

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func defaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Mode: "stdio",
			Host: "0.0.0.0",
			Port: 8080,
		},
		GitHub: GitHubConfig{
			APIBaseURL: "https://api.github.com/",
			OAuthBase:  "https://github.com",
		},
		Auth: AuthConfig{
			HeaderName: "X-GitHub-Token",
			TokenEnv:   "GITHUB_TOKEN",
		},
		Login: LoginConfig{
			Scopes:         "repo read:user",
			PollBudget:     "120s",
			FallbackPoll:   "5s",
			IntervalMargin: "1s",
		},
		Limits: LimitsConfig{
			MapMaxPaths:       200,
			ReadmeMaxChars:    500,
			PRBodyMaxChars:    300,
			HistoryDepth:      3,
			RefConcurrency:    5,
			RefRequestsPerSec: 10,
			BranchPrefix:      "gitsmith-",
		},
		Logging: LoggingConfig{
			Level:      "warn",
			TimeFormat: "15:04:05",
		},
	}
}

func applyEnvOverrides(config *Config) {
	if v := os.Getenv("GITHUB_CLIENT_ID"); v != "" {
		config.GitHub.ClientID = v
	}
	if v := os.Getenv("GITSMITH_MODE"); v != "" {
		config.Server.Mode = v
	}
	if v := os.Getenv("GITSMITH_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}

func applyDefaults(config *Config) {
	if config.Server.Mode == "" {
		config.Server.Mode = "stdio"
	}
	if !strings.HasSuffix(config.GitHub.APIBaseURL, "/") {
		config.GitHub.APIBaseURL += "/"
	}
	if config.Limits.RefConcurrency <= 0 {
		config.Limits.RefConcurrency = 5
	}
}

// PollBudget returns the parsed verify_login budget.
func (c *Config) PollBudget() time.Duration {
	return parseDurationOr(c.Login.PollBudget, 120*time.Second)
}

// FallbackPoll returns the cadence used when the platform response
// carries no recommended interval.
func (c *Config) FallbackPoll() time.Duration {
	return parseDurationOr(c.Login.FallbackPoll, 5*time.Second)
}

// IntervalMargin returns the safety margin added to the platform's
// recommended poll interval.
func (c *Config) IntervalMargin() time.Duration {
	return parseDurationOr(c.Login.IntervalMargin, time.Second)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
