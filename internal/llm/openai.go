package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ppiankov/elementa/internal/util"
)

// OpenAIProvider implements the Provider interface for OpenAI models
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if config.Model == "" {
		config.Model = openai.GPT4oMini
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout: config.timeout(3 * time.Minute),
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
		},
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	// Simple check: try to list models (lightweight API call)
	_, err := p.client.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "OpenAI API check failed: %v\n", err)
		return false
	}
	return true
}

// Complete sends the conversation with the schema declared as a forced function tool
func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (*StructuredResponse, error) {
	params, err := rawSchema(req.Schema)
	if err != nil {
		return nil, AsAdapterError(p.Name(), "complete", err)
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if p.config.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: p.config.SystemPrompt,
		})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Text})
	}

	chatReq := openai.ChatCompletionRequest{
		Model:     p.config.Model,
		Messages:  messages,
		MaxTokens: p.config.maxTokens(),
	}
	if req.Schema.Name != "" {
		chatReq.Tools = []openai.Tool{{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        req.Schema.Name,
				Description: req.Schema.Description,
				Parameters:  params,
			},
		}}
		chatReq.ToolChoice = openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: req.Schema.Name},
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, AsAdapterError(p.Name(), "complete", err)
	}

	if len(resp.Choices) == 0 {
		return nil, AsAdapterError(p.Name(), "complete", fmt.Errorf("no response from OpenAI"))
	}

	choice := resp.Choices[0]
	out := &StructuredResponse{
		Model:      resp.Model,
		StopReason: string(choice.FinishReason),
		TokensUsed: resp.Usage.TotalTokens,
	}
	if choice.Message.Content != "" {
		out.Blocks = append(out.Blocks, ContentBlock{Type: BlockText, Text: choice.Message.Content})
	}
	for _, call := range choice.Message.ToolCalls {
		out.Blocks = append(out.Blocks, ContentBlock{
			Type:  BlockToolUse,
			Name:  call.Function.Name,
			Input: json.RawMessage(call.Function.Arguments),
		})
	}

	return out, nil
}
