package llm

import (
	"fmt"
	"time"
)

// Config selects and configures the generation provider.
// Values arrive from flags/env via viper in cmd; this package does not
// read the environment itself.
type Config struct {
	// Provider selects which backend to use: "gemini", "openai" or "mock".
	Provider string

	Gemini GeminiConfig
	OpenAI OpenAIConfig

	// Timeout bounds a single generation call so a hung call cannot
	// block a session forever. Zero disables the bound.
	Timeout time.Duration
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenAIConfig holds configuration for OpenAI-compatible endpoints
// (OpenAI itself, OpenRouter, local Ollama, ...).
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional override for compatible APIs.
}

// DefaultConfig returns a Config with the standard defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Timeout: 60 * time.Second,
	}
}

// Validate checks that the selected provider has its required API key set.
// A missing key is the app's single fatal startup condition.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("a Gemini API key is required: set --gemini-api-key or DSEDRILL_GEMINI_API_KEY")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("an OpenAI API key is required: set --openai-api-key or DSEDRILL_OPENAI_API_KEY")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
