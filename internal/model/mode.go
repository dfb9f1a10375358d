package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidMode reports query parameters that violate a mode's preconditions
	ErrInvalidMode = errors.New("invalid mode")

	// ErrInvalidRange reports a chunk range outside the element table
	ErrInvalidRange = errors.New("invalid range")
)

// ModeKind names a query mode as it is presented to the model
type ModeKind string

const (
	KindCategorize ModeKind = "CATEGORIZE"
	KindRate       ModeKind = "RATE"
	KindOpen       ModeKind = "OPEN"
)

// Mode is the closed set of query modes: Categorize, Rate and OpenAnswer.
// Code switching on a Mode should handle all three.
type Mode interface {
	Kind() ModeKind
	Prompt() string
	Validate() error
	sealed()
}

// Categorize asks the model to place every element in one of Categories
type Categorize struct {
	Question   string   `json:"question" yaml:"question"`
	Categories []string `json:"categories" yaml:"categories"`
}

// Rate asks the model to score every element between Min and Max inclusive
type Rate struct {
	Question string `json:"question" yaml:"question"`
	Min      int    `json:"rangeMin" yaml:"min"`
	Max      int    `json:"rangeMax" yaml:"max"`
}

// OpenAnswer asks an unconstrained question about every element
type OpenAnswer struct {
	Question string `json:"question" yaml:"question"`
}

func (Categorize) Kind() ModeKind { return KindCategorize }
func (Rate) Kind() ModeKind       { return KindRate }
func (OpenAnswer) Kind() ModeKind { return KindOpen }

func (m Categorize) Prompt() string { return m.Question }
func (m Rate) Prompt() string       { return m.Question }
func (m OpenAnswer) Prompt() string { return m.Question }

func (Categorize) sealed() {}
func (Rate) sealed()       {}
func (OpenAnswer) sealed() {}

// Validate checks that at least one non-blank category is present
func (m Categorize) Validate() error {
	if len(m.Categories) == 0 {
		return fmt.Errorf("%w: categorize needs at least one category", ErrInvalidMode)
	}
	for i, c := range m.Categories {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("%w: category %d is blank", ErrInvalidMode, i+1)
		}
	}
	return nil
}

// Validate checks that the range is not inverted
func (m Rate) Validate() error {
	if m.Min > m.Max {
		return fmt.Errorf("%w: rate range min %d is greater than max %d", ErrInvalidMode, m.Min, m.Max)
	}
	return nil
}

// Validate always succeeds; an open question has no parameters
func (m OpenAnswer) Validate() error {
	return nil
}

// MatchCategory returns the declared label that value refers to
func (m Categorize) MatchCategory(value string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, c := range m.Categories {
		if strings.EqualFold(strings.TrimSpace(c), value) {
			return c, true
		}
	}
	return "", false
}

// ModeKey returns a stable identity for a mode and its parameters
func ModeKey(m Mode) string {
	switch m := m.(type) {
	case Categorize:
		return fmt.Sprintf("%s|%s|%s", m.Kind(), m.Question, strings.Join(m.Categories, "\x1f"))
	case Rate:
		return fmt.Sprintf("%s|%s|%d|%d", m.Kind(), m.Question, m.Min, m.Max)
	case OpenAnswer:
		return fmt.Sprintf("%s|%s", m.Kind(), m.Question)
	default:
		return ""
	}
}
