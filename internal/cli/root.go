package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ppiankov/elementa/internal/llm"
	"github.com/ppiankov/elementa/internal/model"
)

// version is overridden at build time with -ldflags "-X"
var version = "v0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "elementa",
	Short: "Elementa - ask the periodic table a question",
	Long: `Elementa asks a language model one question about every chemical element
and prints the answers as a single table ordered by atomic number.

The 118 elements are split into ranges that are queried concurrently, then
validated and merged: every element is answered exactly once or the query fails.

Questions come in three shapes:
  categorize  place every element in one of a fixed set of labels
  rate        score every element on a numeric scale
  ask         answer an open question per element`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number for Elementa.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "elementa %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()

	// Global flags
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.elementa/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Provider flags
	flags.String("provider", "", "LLM provider (anthropic, openai, gemini, ollama)")
	flags.String("model", "", "model name (default depends on provider)")
	flags.String("base-url", "", "provider API base URL")
	flags.Int("max-tokens", 0, "maximum output tokens per request")

	// Engine flags
	flags.Int("chunk-size", 0, "elements per request (default 30)")
	flags.Int("workers", 0, "concurrent requests (default: one per chunk)")
	flags.Duration("chunk-timeout", 0, "timeout for a single chunk request (default 3m)")
	flags.Bool("fail-fast", true, "cancel remaining chunks when one fails")

	// Output flags
	flags.StringP("format", "f", "", "output format: text, json, md (default text)")

	// Bind flags to viper
	bind := map[string]string{
		"verbose":             "verbose",
		"llm.provider":        "provider",
		"llm.model":           "model",
		"llm.base_url":        "base-url",
		"llm.max_tokens":      "max-tokens",
		"query.chunk_size":    "chunk-size",
		"query.workers":       "workers",
		"query.chunk_timeout": "chunk-timeout",
		"query.fail_fast":     "fail-fast",
		"output.format":       "format",
	}
	for key, flag := range bind {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.elementa")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match ELEMENTA_*, e.g. ELEMENTA_LLM_PROVIDER
	viper.SetEnvPrefix("ELEMENTA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults, config file, environment and flags
func loadConfig(v *viper.Viper) *model.Config {
	cfg := model.DefaultConfig()

	setString := func(key string, dst *string) {
		if v.IsSet(key) && v.GetString(key) != "" {
			*dst = v.GetString(key)
		}
	}
	setInt := func(key string, dst *int) {
		if v.IsSet(key) && v.GetInt(key) != 0 {
			*dst = v.GetInt(key)
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v.IsSet(key) && v.GetDuration(key) != 0 {
			*dst = v.GetDuration(key)
		}
	}

	setString("llm.provider", &cfg.LLM.Provider)
	setString("llm.model", &cfg.LLM.Model)
	setString("llm.api_key", &cfg.LLM.APIKey)
	setString("llm.base_url", &cfg.LLM.BaseURL)
	setInt("llm.max_tokens", &cfg.LLM.MaxTokens)
	setDuration("llm.timeout", &cfg.LLM.Timeout)
	setString("llm.http_proxy", &cfg.LLM.HTTPProxy)
	setString("llm.https_proxy", &cfg.LLM.HTTPSProxy)
	setString("llm.no_proxy", &cfg.LLM.NoProxy)

	setInt("query.chunk_size", &cfg.Query.ChunkSize)
	setInt("query.workers", &cfg.Query.Workers)
	setDuration("query.chunk_timeout", &cfg.Query.ChunkTimeout)
	if v.IsSet("query.fail_fast") {
		cfg.Query.FailFast = v.GetBool("query.fail_fast")
	}

	setString("output.format", &cfg.Output.Format)
	cfg.Output.Verbose = v.GetBool("verbose") || v.GetBool("output.verbose")

	// The default model belongs to the default provider
	if !v.IsSet("llm.model") || v.GetString("llm.model") == "" {
		if p := strings.ToLower(cfg.LLM.Provider); p != "anthropic" && p != "claude" {
			cfg.LLM.Model = ""
		}
	}

	return cfg
}

// resolveCredentials fills the API key and base URL from the environment
func resolveCredentials(cfg *model.Config) error {
	provider := strings.ToLower(cfg.LLM.Provider)

	if provider == "ollama" {
		// Ollama doesn't need an API key
		if cfg.LLM.BaseURL == "" {
			cfg.LLM.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
		return nil
	}

	if cfg.LLM.APIKey != "" {
		return nil
	}
	vars := llm.APIKeyEnv(provider)
	for _, name := range vars {
		if key := os.Getenv(name); key != "" {
			cfg.LLM.APIKey = key
			return nil
		}
	}
	if len(vars) == 0 {
		return nil
	}
	return fmt.Errorf("%s environment variable not set", strings.Join(vars, " or "))
}

// newLogger builds the process logger. Only warnings are shown unless verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
