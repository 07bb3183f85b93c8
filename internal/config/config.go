// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"

	"autoblog/internal/ai"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	ValkeyDB       int

	// Text provider selection; the image service is always Gemini.
	AIProvider string // "gemini", "openai", "claude"

	GeminiKey        string
	GeminiModel      string
	GeminiImageModel string
	GeminiBaseURL    string

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	ClaudeKey     string
	ClaudeModel   string
	ClaudeBaseURL string

	// Image prompt preamble, defaulting to the built-in house style.
	ImageStyle string

	BloggerBaseURL string

	// Per-minute limits for outgoing image requests and for article
	// generation requests per client. Zero disables the limit.
	ImageRatePerMinute    int
	GenerateRatePerMinute int

	// bcrypt hash of the API token. Empty leaves the API open, which is
	// refused in production.
	APITokenHash string

	// TrustProxy makes client addresses come from X-Forwarded-For and
	// X-Real-IP. Off unless the service runs behind a proxy.
	TrustProxy bool
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Missing credentials for the text or
// image service are reported here, before any request is served.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "autoblog"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "autoblog"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AIProvider: envOrDefault("AI_PROVIDER", "gemini"),

		GeminiKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      envOrDefault("GEMINI_MODEL", ai.GeminiDefaultModel),
		GeminiImageModel: envOrDefault("GEMINI_IMAGE_MODEL", ai.GeminiDefaultImageModel),
		GeminiBaseURL:    envOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOrDefault("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL: envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),

		ClaudeKey:     os.Getenv("CLAUDE_API_KEY"),
		ClaudeModel:   envOrDefault("CLAUDE_MODEL", "claude-sonnet-4-6"),
		ClaudeBaseURL: envOrDefault("CLAUDE_BASE_URL", "https://api.anthropic.com"),

		ImageStyle:     envOrDefault("IMAGE_STYLE", ai.DefaultImageStyle),
		BloggerBaseURL: envOrDefault("BLOGGER_BASE_URL", "https://www.googleapis.com/blogger/v3"),
		APITokenHash:   os.Getenv("API_TOKEN_HASH"),
	}

	var err error
	if cfg.ValkeyDB, err = envInt("VALKEY_DB", 0); err != nil {
		return nil, err
	}
	if cfg.ImageRatePerMinute, err = envInt("IMAGE_RATE_PER_MINUTE", 10); err != nil {
		return nil, err
	}
	if cfg.GenerateRatePerMinute, err = envInt("GENERATE_RATE_PER_MINUTE", 6); err != nil {
		return nil, err
	}
	if cfg.TrustProxy, err = envBool("TRUST_PROXY", false); err != nil {
		return nil, err
	}

	if cfg.GeminiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY must be set: it is required for image generation")
	}
	if key, ok := cfg.providerKey(); !ok {
		return nil, fmt.Errorf("AI_PROVIDER %q is not supported (use gemini, openai or claude)", cfg.AIProvider)
	} else if key == "" {
		return nil, fmt.Errorf("%s_API_KEY must be set when AI_PROVIDER=%s", envPrefix(cfg.AIProvider), cfg.AIProvider)
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.APITokenHash == "" {
			return nil, fmt.Errorf("API_TOKEN_HASH must be set in production")
		}
	}

	return cfg, nil
}

// providerKey returns the API key of the selected text provider and
// whether the provider name is known.
func (c *Config) providerKey() (string, bool) {
	switch c.AIProvider {
	case "gemini":
		return c.GeminiKey, true
	case "openai":
		return c.OpenAIKey, true
	case "claude":
		return c.ClaudeKey, true
	}
	return "", false
}

func envPrefix(provider string) string {
	switch provider {
	case "openai":
		return "OPENAI"
	case "claude":
		return "CLAUDE"
	}
	return "GEMINI"
}

// ProviderConfigs returns the per-provider settings for ai.NewRegistry.
// Providers without a key are skipped by the registry.
func (c *Config) ProviderConfigs() map[string]ai.ProviderConfig {
	return map[string]ai.ProviderConfig{
		"gemini": {APIKey: c.GeminiKey, Model: c.GeminiModel, ImageModel: c.GeminiImageModel, BaseURL: c.GeminiBaseURL},
		"openai": {APIKey: c.OpenAIKey, Model: c.OpenAIModel, BaseURL: c.OpenAIBaseURL},
		"claude": {APIKey: c.ClaudeKey, Model: c.ClaudeModel, BaseURL: c.ClaudeBaseURL},
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// SecureCookies reports whether cookies should carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return c.Env == "production"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envInt reads a non-negative integer variable, returning fallback if unset.
func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}
	return n, nil
}

// envBool reads a boolean variable, returning fallback if unset.
func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}
