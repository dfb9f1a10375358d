package query

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ppiankov/elementa/internal/element"
	"github.com/ppiankov/elementa/internal/model"
)

// validateChunk checks that records answer every element of chunk exactly
// once with a value allowed by mode. It returns the records sorted by
// atomic number with canonical element names.
func validateChunk(mode model.Mode, chunk model.ChunkRange, records []model.AnswerRecord) ([]model.AnswerRecord, error) {
	seen := make(map[int]bool, len(records))
	out := make([]model.AnswerRecord, 0, len(records))

	for _, r := range records {
		if !chunk.Contains(r.AtomicNumber) {
			return nil, incomplete("atomic number %d is outside %s", r.AtomicNumber, chunk)
		}
		if seen[r.AtomicNumber] {
			return nil, incomplete("atomic number %d answered more than once", r.AtomicNumber)
		}
		seen[r.AtomicNumber] = true

		if !element.MatchesName(r.AtomicNumber, r.Element) {
			return nil, incomplete("atomic number %d is labelled %q", r.AtomicNumber, r.Element)
		}
		value, err := validateValue(mode, r)
		if err != nil {
			return nil, err
		}

		id, _ := element.ByAtomicNumber(r.AtomicNumber)
		r.Element = id.Name
		r.AnswerValue = value
		out = append(out, r)
	}

	if len(out) != chunk.Len() {
		return nil, incomplete("expected %d answers, got %d (missing %s)", chunk.Len(), len(out), missing(chunk, seen))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].AtomicNumber < out[j].AtomicNumber })
	return out, nil
}

// ratingPattern accepts plain decimal numbers only, so NaN, Inf and hex
// floats never reach the bounds check
var ratingPattern = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)

// validateValue applies the mode's constraint to one answer and returns
// the normalized value
func validateValue(mode model.Mode, r model.AnswerRecord) (string, error) {
	value := strings.TrimSpace(r.AnswerValue)

	switch m := mode.(type) {
	case model.Categorize:
		label, ok := m.MatchCategory(value)
		if !ok {
			return "", incomplete("atomic number %d has category %q, not one of the declared categories", r.AtomicNumber, r.AnswerValue)
		}
		return label, nil
	case model.Rate:
		if !ratingPattern.MatchString(value) {
			return "", incomplete("atomic number %d has non-numeric rating %q", r.AtomicNumber, r.AnswerValue)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", incomplete("atomic number %d has non-numeric rating %q", r.AtomicNumber, r.AnswerValue)
		}
		if v < float64(m.Min) || v > float64(m.Max) {
			return "", incomplete("atomic number %d has rating %s outside %d-%d", r.AtomicNumber, value, m.Min, m.Max)
		}
		return value, nil
	case model.OpenAnswer:
		return value, nil
	default:
		return "", fmt.Errorf("%w: unsupported mode %T", model.ErrInvalidMode, mode)
	}
}

// validateResultSet checks the merged answers cover 1..element.Count in order
func validateResultSet(answers []model.AnswerRecord) error {
	if len(answers) != element.Count {
		return incomplete("expected %d answers, got %d", element.Count, len(answers))
	}
	for i, a := range answers {
		if a.AtomicNumber != i+1 {
			return incomplete("answer %d has atomic number %d", i+1, a.AtomicNumber)
		}
	}
	return nil
}

// missing lists the atomic numbers of chunk not in seen
func missing(chunk model.ChunkRange, seen map[int]bool) string {
	var nums []string
	for n := chunk.First; n <= chunk.Last; n++ {
		if !seen[n] {
			nums = append(nums, strconv.Itoa(n))
		}
	}
	if len(nums) == 0 {
		return "none"
	}
	return strings.Join(nums, ", ")
}
