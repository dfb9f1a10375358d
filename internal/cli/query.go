package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/elementa/internal/cache"
	"github.com/ppiankov/elementa/internal/llm"
	"github.com/ppiankov/elementa/internal/model"
	"github.com/ppiankov/elementa/internal/prompt"
	"github.com/ppiankov/elementa/internal/query"
	"github.com/ppiankov/elementa/internal/render"
)

var (
	categories      []string
	rateMin         int
	rateMax         int
	outPath         string
	noJustification bool

	okMark   = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
)

// categorizeCmd represents the categorize command
var categorizeCmd = &cobra.Command{
	Use:   "categorize <question>",
	Short: "Place every element in one of a fixed set of categories",
	Long: `Ask the model to assign each of the 118 elements one of the given categories.

Example:
  elementa categorize "Can I eat it?" -c Yes -c Risky -c "Definitely Not"
  elementa categorize "State at room temperature" -c Solid,Liquid,Gas --format md --out states.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, model.Categorize{Question: args[0], Categories: categories})
	},
}

// rateCmd represents the rate command
var rateCmd = &cobra.Command{
	Use:   "rate <question>",
	Short: "Score every element on a numeric scale",
	Long: `Ask the model to rate each of the 118 elements between --min and --max inclusive.

Example:
  elementa rate "Shininess" --min 1 --max 10
  elementa rate "How dangerous is it to lick?" --max 5 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, model.Rate{Question: args[0], Min: rateMin, Max: rateMax})
	},
}

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask an open question about every element",
	Long: `Ask the model a free-form question and get a short answer per element.

Example:
  elementa ask "What is it named after?"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, model.OpenAnswer{Question: args[0]})
	},
}

func init() {
	rootCmd.AddCommand(categorizeCmd, rateCmd, askCmd)

	categorizeCmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "allowed category (repeatable or comma-separated)")
	_ = categorizeCmd.MarkFlagRequired("category")

	rateCmd.Flags().IntVar(&rateMin, "min", 1, "lowest allowed rating")
	rateCmd.Flags().IntVar(&rateMax, "max", 10, "highest allowed rating")

	for _, c := range []*cobra.Command{categorizeCmd, rateCmd, askCmd} {
		c.Flags().StringVarP(&outPath, "out", "o", "", "write the result to a file instead of stdout")
		c.Flags().BoolVar(&noJustification, "no-justification", false, "omit justifications from text and Markdown output")
	}
}

// session holds what a command needs to run queries
type session struct {
	cfg    *model.Config
	logger *zap.Logger
	engine *query.Engine
}

// newSession loads configuration and builds the provider and engine
func newSession(opts ...query.Option) (*session, error) {
	cfg := loadConfig(viper.GetViper())
	if err := resolveCredentials(cfg); err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Output.Verbose)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, prompt.SystemPrompt))
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("create provider: %w", err)
	}

	engineOpts := []query.Option{
		query.WithChunkSize(cfg.Query.ChunkSize),
		query.WithWorkers(cfg.Query.Workers),
		query.WithChunkTimeout(cfg.Query.ChunkTimeout),
		query.WithFailFast(cfg.Query.FailFast),
		query.WithLogger(logger.Named("query")),
	}
	engine, err := query.New(provider, append(engineOpts, opts...)...)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("create engine: %w", err)
	}

	return &session{cfg: cfg, logger: logger, engine: engine}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}

// signalContext is cancelled on interrupt
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runQuery(cmd *cobra.Command, mode model.Mode) error {
	// Reject bad parameters before touching credentials
	if err := mode.Validate(); err != nil {
		return err
	}

	format, err := render.ParseFormat(viper.GetString("output.format"))
	if err != nil {
		return err
	}
	if outPath != "" && viper.GetString("output.format") == "" {
		format = render.FormatForPath(outPath, format)
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := signalContext()
	defer cancel()

	if s.cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Question:  %s\n", mode.Prompt())
		fmt.Fprintf(os.Stderr, "Mode:      %s\n", mode.Kind())
		fmt.Fprintf(os.Stderr, "Provider:  %s/%s\n", s.cfg.LLM.Provider, modelName(s.cfg))
		fmt.Fprintf(os.Stderr, "Chunks:    %d elements each\n", s.cfg.Query.ChunkSize)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "⚙️  Querying...\n")
	}

	start := time.Now()
	rs, err := s.engine.Run(ctx, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s query failed after %v\n", failMark("✗"), time.Since(start).Round(time.Millisecond))
		return fmt.Errorf("query failed: %w", err)
	}

	if s.cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "%s Received %d answers in %v\n", okMark("✓"), rs.Len(), time.Since(start).Round(time.Millisecond))
		fmt.Fprintln(os.Stderr)
	}

	renderer := render.NewRenderer(!noJustification)
	if outPath == "" {
		return renderer.Render(cmd.OutOrStdout(), rs, format)
	}
	if err := renderer.RenderFile(outPath, rs, format); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "%s Wrote %s: %s\n", okMark("✓"), strings.ToUpper(string(format)), outPath)
	return nil
}

func modelName(cfg *model.Config) string {
	if cfg.LLM.Model == "" {
		return "(default)"
	}
	return cfg.LLM.Model
}

// newMemoryCache is shared by every query of one process
func newMemoryCache() *cache.MemoryCache {
	return cache.NewMemoryCache(cache.DefaultTTL)
}
