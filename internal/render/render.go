// Package render writes a ResultSet as a text table, JSON or Markdown.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ppiankov/elementa/internal/element"
	"github.com/ppiankov/elementa/internal/model"
)

// Format selects the output encoding
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
)

// ParseFormat accepts text, json, md or markdown
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "table":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected text, json or md)", s)
	}
}

// FormatForPath guesses the format from a file extension, falling back to def
func FormatForPath(path string, def Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".md", ".markdown":
		return FormatMarkdown
	case ".txt":
		return FormatText
	default:
		return def
	}
}

// Renderer writes result sets
type Renderer struct {
	justifications bool
}

// NewRenderer creates a renderer. justifications controls whether the
// justification column is included in text and Markdown output.
func NewRenderer(justifications bool) *Renderer {
	return &Renderer{justifications: justifications}
}

// Render writes rs to w in format f
func (r *Renderer) Render(w io.Writer, rs model.ResultSet, f Format) error {
	switch f {
	case FormatJSON:
		return r.RenderJSON(w, rs)
	case FormatMarkdown:
		return r.RenderMarkdown(w, rs)
	case FormatText, "":
		return r.RenderText(w, rs)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// RenderFile writes rs to path, creating parent directories
func (r *Renderer) RenderFile(path string, rs model.ResultSet, f Format) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output file: %w", closeErr)
		}
	}()

	return r.Render(file, rs, f)
}

// RenderJSON writes rs as indented JSON
func (r *Renderer) RenderJSON(w io.Writer, rs model.ResultSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rs); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes rs as a Markdown document with one table row per element
func (r *Renderer) RenderMarkdown(w io.Writer, rs model.ResultSet) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(rs.Question))
	fmt.Fprintf(&b, "- **Mode:** %s\n", rs.Mode)
	if rs.Model != "" {
		fmt.Fprintf(&b, "- **Model:** %s\n", rs.Model)
	}
	fmt.Fprintf(&b, "- **Answers:** %d\n\n", rs.Len())

	if summary := Summarize(rs); len(summary) > 0 {
		b.WriteString("## Summary\n\n")
		for _, line := range summary {
			fmt.Fprintf(&b, "- %s\n", escapeMarkdown(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Answers\n\n")
	headers := r.headers()
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---|", len(headers)) + "\n")
	for _, row := range r.rows(rs) {
		for i := range row {
			row[i] = escapeMarkdown(row[i])
		}
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderText writes rs as a bordered table
func (r *Renderer) RenderText(w io.Writer, rs model.ResultSet) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(r.headers()...).
		Rows(r.rows(rs)...)

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", rs.Question, rs.Mode)
	b.WriteString(t.String())
	b.WriteString("\n")
	for _, line := range Summarize(rs) {
		b.WriteString(line + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) headers() []string {
	h := []string{"#", "Symbol", "Element", "Answer"}
	if r.justifications {
		h = append(h, "Justification")
	}
	return h
}

func (r *Renderer) rows(rs model.ResultSet) [][]string {
	rows := make([][]string, 0, rs.Len())
	for _, a := range rs.Answers {
		symbol := ""
		if id, ok := element.ByAtomicNumber(a.AtomicNumber); ok {
			symbol = id.Symbol
		}
		row := []string{strconv.Itoa(a.AtomicNumber), symbol, a.Element, a.AnswerValue}
		if r.justifications {
			row = append(row, a.JustificationText())
		}
		rows = append(rows, row)
	}
	return rows
}

// Summarize returns human-readable aggregate lines: label counts for
// categorize, min/mean/max for rate, nothing for open questions
func Summarize(rs model.ResultSet) []string {
	if rs.Len() == 0 {
		return nil
	}

	switch rs.Mode {
	case model.KindCategorize:
		counts := make(map[string]int)
		var labels []string
		for _, a := range rs.Answers {
			if counts[a.AnswerValue] == 0 {
				labels = append(labels, a.AnswerValue)
			}
			counts[a.AnswerValue]++
		}
		sort.SliceStable(labels, func(i, j int) bool { return counts[labels[i]] > counts[labels[j]] })

		lines := make([]string, 0, len(labels))
		for _, l := range labels {
			lines = append(lines, fmt.Sprintf("%s: %d", l, counts[l]))
		}
		return lines

	case model.KindRate:
		var sum float64
		var n int
		lo, hi := model.AnswerRecord{}, model.AnswerRecord{}
		var loV, hiV float64
		for _, a := range rs.Answers {
			v, err := strconv.ParseFloat(a.AnswerValue, 64)
			if err != nil {
				continue
			}
			if n == 0 || v < loV {
				lo, loV = a, v
			}
			if n == 0 || v > hiV {
				hi, hiV = a, v
			}
			sum += v
			n++
		}
		if n == 0 {
			return nil
		}
		return []string{
			fmt.Sprintf("Mean: %.2f", sum/float64(n)),
			fmt.Sprintf("Lowest: %s (%s)", lo.Element, lo.AnswerValue),
			fmt.Sprintf("Highest: %s (%s)", hi.Element, hi.AnswerValue),
		}
	}
	return nil
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
