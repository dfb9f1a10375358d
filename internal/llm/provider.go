package llm

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ppiankov/elementa/internal/model"
)

// Provider defines the interface for generation providers.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends the conversation and returns the structured response.
	// The response is expected to carry one invocation of req.Schema.
	Complete(ctx context.Context, req CompletionRequest) (*StructuredResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Role of a conversation message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation
type Message struct {
	Role Role
	Text string
}

// CompletionRequest contains the input for one structured generation call
type CompletionRequest struct {
	// Messages is the conversation, usually a single user message
	Messages []Message

	// Schema declares the shape the model must answer with
	Schema Schema
}

// UserMessage builds a single-message conversation
func UserMessage(text string) []Message {
	return []Message{{Role: RoleUser, Text: text}}
}

// Block types
const (
	BlockText    = "text"
	BlockToolUse = "tool_use"
)

// ContentBlock is one piece of a response
type ContentBlock struct {
	Type string

	// Text is set for text blocks
	Text string

	// Name and Input are set for structured invocation blocks
	Name  string
	Input json.RawMessage
}

// StructuredResponse contains the provider's output
type StructuredResponse struct {
	// Model is the model that generated the response
	Model string

	// Blocks in the order the provider returned them
	Blocks []ContentBlock

	// StopReason as reported by the provider
	StopReason string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds provider configuration. It is fixed at construction and shared
// across every request the provider makes.
type Config struct {
	// Provider name: "anthropic", "openai", "gemini", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// SystemPrompt is sent with every request
	SystemPrompt string

	// MaxTokens caps the output of a single request
	MaxTokens int

	// Timeout for API requests
	Timeout time.Duration

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "anthropic",
		Model:     DefaultAnthropicModel,
		MaxTokens: 8192,
		Timeout:   3 * time.Minute,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig, systemPrompt string) Config {
	return Config{
		Provider:     modelConfig.Provider,
		Model:        modelConfig.Model,
		APIKey:       modelConfig.APIKey,
		BaseURL:      modelConfig.BaseURL,
		SystemPrompt: systemPrompt,
		MaxTokens:    modelConfig.MaxTokens,
		Timeout:      modelConfig.Timeout,
		HTTPProxy:    modelConfig.HTTPProxy,
		HTTPSProxy:   modelConfig.HTTPSProxy,
		NoProxy:      modelConfig.NoProxy,
	}
}

func (c Config) maxTokens() int {
	if c.MaxTokens <= 0 {
		return 8192
	}
	return c.MaxTokens
}

func (c Config) timeout(fallback time.Duration) time.Duration {
	if c.Timeout <= 0 {
		return fallback
	}
	return c.Timeout
}
