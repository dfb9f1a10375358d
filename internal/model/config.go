package model

import "time"

// Config holds the complete Elementa configuration
type Config struct {
	LLM    LLMConfig    `yaml:"llm"`
	Query  QueryConfig  `yaml:"query"`
	Output OutputConfig `yaml:"output"`
}

// LLMConfig configures the generation provider
type LLMConfig struct {
	Provider  string        `yaml:"provider"`          // anthropic, openai, gemini, ollama
	Model     string        `yaml:"model"`             // provider-specific model name
	APIKey    string        `yaml:"api_key,omitempty"` // prefer environment variables
	BaseURL   string        `yaml:"base_url,omitempty"`
	MaxTokens int           `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout"` // per HTTP request

	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty"`
}

// QueryConfig configures the range-partitioned query engine
type QueryConfig struct {
	ChunkSize    int           `yaml:"chunk_size"`    // elements per request
	Workers      int           `yaml:"workers"`       // concurrent requests, 0 = one per chunk
	ChunkTimeout time.Duration `yaml:"chunk_timeout"` // bound on a single chunk request
	FailFast     bool          `yaml:"fail_fast"`     // cancel sibling chunks on first failure
}

// OutputConfig configures result rendering
type OutputConfig struct {
	Format  string `yaml:"format"` // text, json, md
	Verbose bool   `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "anthropic",
			Model:     "claude-3-5-sonnet-20240620",
			MaxTokens: 8192,
			Timeout:   3 * time.Minute,
		},
		Query: QueryConfig{
			ChunkSize:    30,
			Workers:      0,
			ChunkTimeout: 3 * time.Minute,
			FailFast:     true,
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}
