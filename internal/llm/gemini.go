package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"google.golang.org/genai"

	"github.com/ppiankov/elementa/internal/util"
)

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider implements the Provider interface for Google Gemini models
type GeminiProvider struct {
	client *genai.Client
	config Config
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(config Config) (*GeminiProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if config.Model == "" {
		config.Model = DefaultGeminiModel
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Timeout: config.timeout(3 * time.Minute),
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
			},
		},
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(context.Background(), clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		config: config,
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks that the configured model can be resolved
func (p *GeminiProvider) IsAvailable(ctx context.Context) bool {
	if _, err := p.client.Models.Get(ctx, p.config.Model, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Gemini API check failed: %v\n", err)
		return false
	}
	return true
}

// Complete sends the conversation with the schema declared as the only callable function
func (p *GeminiProvider) Complete(ctx context.Context, req CompletionRequest) (*StructuredResponse, error) {
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}

	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(p.config.maxTokens()),
	}
	if p.config.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(p.config.SystemPrompt, genai.RoleUser)
	}
	if req.Schema.Name != "" {
		cfg.Tools = []*genai.Tool{{
			FunctionDeclarations: []*genai.FunctionDeclaration{{
				Name:                 req.Schema.Name,
				Description:          req.Schema.Description,
				ParametersJsonSchema: req.Schema.Parameters,
			}},
		}}
		cfg.ToolConfig = &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode:                 genai.FunctionCallingConfigModeAny,
				AllowedFunctionNames: []string{req.Schema.Name},
			},
		}
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.config.Model, contents, cfg)
	if err != nil {
		return nil, AsAdapterError(p.Name(), "complete", err)
	}

	out, err := fromGeminiResponse(resp)
	if err != nil {
		return nil, AsAdapterError(p.Name(), "complete", err)
	}
	if out.Model == "" {
		out.Model = p.config.Model
	}
	return out, nil
}

// fromGeminiResponse converts the first candidate into a StructuredResponse
func fromGeminiResponse(resp *genai.GenerateContentResponse) (*StructuredResponse, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in Gemini response")
	}

	candidate := resp.Candidates[0]
	out := &StructuredResponse{
		Model:      resp.ModelVersion,
		StopReason: string(candidate.FinishReason),
	}
	if resp.UsageMetadata != nil {
		out.TokensUsed = int(resp.UsageMetadata.TotalTokenCount)
	}
	if candidate.Content == nil {
		return out, nil
	}

	for _, part := range candidate.Content.Parts {
		if part == nil {
			continue
		}
		if part.FunctionCall != nil {
			args, err := json.Marshal(part.FunctionCall.Args)
			if err != nil {
				return nil, fmt.Errorf("marshal function call args: %w", err)
			}
			out.Blocks = append(out.Blocks, ContentBlock{Type: BlockToolUse, Name: part.FunctionCall.Name, Input: args})
			continue
		}
		if part.Text != "" {
			out.Blocks = append(out.Blocks, ContentBlock{Type: BlockText, Text: part.Text})
		}
	}

	return out, nil
}
