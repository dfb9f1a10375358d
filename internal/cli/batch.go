package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/elementa/internal/model"
	"github.com/ppiankov/elementa/internal/query"
	"github.com/ppiankov/elementa/internal/render"
)

var (
	outputDir string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file.yaml>",
	Short: "Run several questions from a YAML file",
	Long: `Batch runs every question listed in a YAML file, one after another:
- Each question is itself split into concurrent chunk requests
- Repeated questions are answered once and served from memory
- One result file is written per question

File format:
  questions:
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

Example:
  elementa batch questions.yaml
  elementa batch questions.yaml --output-dir ./answers --format md`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./elementa-results", "output directory for results")
	batchCmd.Flags().BoolVar(&noJustification, "no-justification", false, "omit justifications from text and Markdown output")
}

// batchFile is the YAML document read by the batch command
type batchFile struct {
	Questions []batchEntry `yaml:"questions"`
}

// batchEntry holds exactly one of Categorize, Rate or Open
type batchEntry struct {
	Name       string            `yaml:"name,omitempty"`
	Categorize *model.Categorize `yaml:"categorize,omitempty"`
	Rate       *model.Rate       `yaml:"rate,omitempty"`
	Open       *model.OpenAnswer `yaml:"open,omitempty"`
}

// mode returns the entry's query mode
func (e batchEntry) mode() (model.Mode, error) {
	var modes []model.Mode
	if e.Categorize != nil {
		modes = append(modes, *e.Categorize)
	}
	if e.Rate != nil {
		modes = append(modes, *e.Rate)
	}
	if e.Open != nil {
		modes = append(modes, *e.Open)
	}

	switch len(modes) {
	case 0:
		return nil, errors.New("no question (expected one of categorize, rate, open)")
	case 1:
		return modes[0], nil
	default:
		return nil, errors.New("more than one question in a single entry")
	}
}

// label names the entry in output files and messages
func (e batchEntry) label(index int) string {
	if e.Name != "" {
		return e.Name
	}
	if m, err := e.mode(); err == nil {
		return m.Prompt()
	}
	return fmt.Sprintf("question-%d", index+1)
}

// loadBatchFile reads and checks a batch file. Every entry must hold a valid question.
func loadBatchFile(path string) ([]batchEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}

	var file batchFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse batch file: %w", err)
	}
	if len(file.Questions) == 0 {
		return nil, fmt.Errorf("batch file %s has no questions", path)
	}

	for i, e := range file.Questions {
		m, err := e.mode()
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return file.Questions, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	format, err := render.ParseFormat(viper.GetString("output.format"))
	if err != nil {
		return err
	}

	entries, err := loadBatchFile(file)
	if err != nil {
		return err
	}

	mem := newMemoryCache()
	s, err := newSession(query.WithCache(mem))
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Elementa Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Questions:    %d\n", len(entries))
	fmt.Fprintf(os.Stderr, "  Provider:     %s/%s\n", s.cfg.LLM.Provider, modelName(s.cfg))
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	renderer := render.NewRenderer(!noJustification)
	successCount := 0
	failureCount := 0
	used := make(map[string]int)

	for i, entry := range entries {
		label := entry.label(i)
		mode, _ := entry.mode()

		if ctx.Err() != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", failMark("✗"), label, ctx.Err())
			continue
		}

		start := time.Now()
		rs, err := s.engine.Run(ctx, mode)
		if err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", failMark("✗"), label, err)
			continue
		}

		slug := sanitizeFilename(label)
		if n := used[slug]; n > 0 {
			slug = fmt.Sprintf("%s-%d", slug, n+1)
		}
		used[sanitizeFilename(label)]++

		path := filepath.Join(outputDir, slug+extension(format))
		if err := renderer.RenderFile(path, rs, format); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "%s %s: failed to write %s: %v\n", failMark("✗"), label, path, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "%s %s (%d answers, %v)\n", okMark("✓"), label, rs.Len(), time.Since(start).Round(time.Millisecond))
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d questions\n", len(entries))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Distinct:  %d\n", mem.Len())
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d questions failed", failureCount, len(entries))
	}
	return nil
}

func extension(f render.Format) string {
	switch f {
	case render.FormatJSON:
		return ".json"
	case render.FormatMarkdown:
		return ".md"
	default:
		return ".txt"
	}
}

// sanitizeFilename turns a question into a short file name
func sanitizeFilename(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}

	out := strings.TrimSuffix(b.String(), "-")

	// Limit length
	if r := []rune(out); len(r) > 60 {
		out = strings.TrimSuffix(string(r[:60]), "-")
	}
	if out == "" {
		out = "question"
	}
	return out
}
