package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/ppiankov/elementa/internal/model"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := loadConfig(viper.New())

	if cfg.LLM.Provider != "anthropic" {
		t.Errorf("provider = %q, want anthropic", cfg.LLM.Provider)
	}
	if cfg.LLM.Model == "" {
		t.Error("default provider should keep its default model")
	}
	if cfg.Query.ChunkSize != 30 || !cfg.Query.FailFast {
		t.Errorf("unexpected query defaults: %+v", cfg.Query)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("llm.provider", "openai")
	v.Set("query.chunk_size", 20)
	v.Set("query.chunk_timeout", "90s")
	v.Set("query.fail_fast", false)
	v.Set("output.format", "json")

	cfg := loadConfig(v)

	if cfg.LLM.Provider != "openai" {
		t.Errorf("provider = %q, want openai", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "" {
		t.Errorf("model = %q, want provider default", cfg.LLM.Model)
	}
	if cfg.Query.ChunkSize != 20 {
		t.Errorf("chunk size = %d, want 20", cfg.Query.ChunkSize)
	}
	if cfg.Query.ChunkTimeout != 90*time.Second {
		t.Errorf("chunk timeout = %v, want 90s", cfg.Query.ChunkTimeout)
	}
	if cfg.Query.FailFast {
		t.Error("fail_fast should be disabled")
	}
	if cfg.Output.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Output.Format)
	}
}

func TestResolveCredentials(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("CLAUDE_API_KEY", "claude-key")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OLLAMA_BASE_URL", "http://ollama:11434")

	cfg := model.DefaultConfig()
	if err := resolveCredentials(cfg); err != nil {
		t.Fatalf("resolveCredentials failed: %v", err)
	}
	if cfg.LLM.APIKey != "claude-key" {
		t.Errorf("api key = %q, want fallback CLAUDE_API_KEY", cfg.LLM.APIKey)
	}

	cfg = model.DefaultConfig()
	cfg.LLM.Provider = "openai"
	if err := resolveCredentials(cfg); err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("expected missing OPENAI_API_KEY error, got %v", err)
	}

	cfg = model.DefaultConfig()
	cfg.LLM.Provider = "ollama"
	if err := resolveCredentials(cfg); err != nil {
		t.Fatalf("ollama needs no key: %v", err)
	}
	if cfg.LLM.BaseURL != "http://ollama:11434" {
		t.Errorf("base url = %q", cfg.LLM.BaseURL)
	}
}

func TestLoadBatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.yaml")
	content := `questions:
  - name: edible
    categorize:
      question: Can I eat it?
      categories: [Yes, Risky, Definitely Not]
  - rate:
      question: Shininess
      min: 1
      max: 10
  - open:
      question: What is it named after?
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	entries, err := loadBatchFile(path)
	if err != nil {
		t.Fatalf("loadBatchFile failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	m, err := entries[0].mode()
	if err != nil {
		t.Fatal(err)
	}
	cat, ok := m.(model.Categorize)
	if !ok || len(cat.Categories) != 3 || cat.Categories[0] != "Yes" {
		t.Errorf("unexpected first question: %#v", m)
	}
	if entries[0].label(0) != "edible" {
		t.Errorf("label = %q, want edible", entries[0].label(0))
	}

	m, _ = entries[1].mode()
	if r, ok := m.(model.Rate); !ok || r.Min != 1 || r.Max != 10 {
		t.Errorf("unexpected second question: %#v", m)
	}
	if entries[2].label(2) != "What is it named after?" {
		t.Errorf("label = %q", entries[2].label(2))
	}
}

func TestLoadBatchFile_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":         "questions: []\n",
		"no mode":       "questions:\n  - name: nothing\n",
		"two modes":     "questions:\n  - open: {question: a}\n    rate: {question: b, min: 1, max: 2}\n",
		"inverted rate": "questions:\n  - rate: {question: b, min: 5, max: 1}\n",
		"not yaml":      "questions: [\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "q.yaml")
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := loadBatchFile(path); err == nil {
				t.Error("expected error")
			}
		})
	}

	path := filepath.Join(t.TempDir(), "q.yaml")
	_ = os.WriteFile(path, []byte("questions:\n  - rate: {question: b, min: 5, max: 1}\n"), 0644)
	if _, err := loadBatchFile(path); !errors.Is(err, model.ErrInvalidMode) {
		t.Errorf("expected ErrInvalidMode, got %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"Can I eat it?":                "can-i-eat-it",
		"  ../../etc/passwd ":          "etc-passwd",
		"Shininess":                    "shininess",
		"???":                          "question",
		strings.Repeat("abc def ", 20): "abc-def-abc-def-abc-def-abc-def-abc-def-abc-def-abc-def-abc",
	}

	for in, want := range tests {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".elementa", "config.yaml")

	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("writeDefaultConfig failed: %v", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("written config is not readable: %v", err)
	}
	cfg := loadConfig(v)
	if cfg.Query.ChunkTimeout != 3*time.Minute {
		t.Errorf("chunk timeout = %v, want 3m", cfg.Query.ChunkTimeout)
	}

	if err := writeDefaultConfig(path); err == nil {
		t.Error("existing config must not be overwritten")
	}
}

func TestMaskKey(t *testing.T) {
	if got := maskKey("sk-ant-123456"); got != "****3456" {
		t.Errorf("maskKey = %q", got)
	}
	if got := maskKey("abc"); got != "****" {
		t.Errorf("maskKey = %q", got)
	}
}
