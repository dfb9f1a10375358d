package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a new provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(strings.TrimSpace(config.Provider))

	switch provider {
	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	case "gemini", "google":
		return NewGeminiProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, fmt.Errorf("no LLM provider configured (supported: anthropic, openai, gemini, ollama)")

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: anthropic, openai, gemini, ollama)", config.Provider)
	}
}

// APIKeyEnv lists the environment variables consulted for a provider's key, in order
func APIKeyEnv(provider string) []string {
	switch strings.ToLower(provider) {
	case "anthropic", "claude":
		return []string{"ANTHROPIC_API_KEY", "CLAUDE_API_KEY"}
	case "openai":
		return []string{"OPENAI_API_KEY"}
	case "gemini", "google":
		return []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	default:
		return nil
	}
}
