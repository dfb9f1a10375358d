// Package prompt builds the instruction text sent to the model for one chunk.
package prompt

import (
	"fmt"
	"strings"

	"github.com/ppiankov/elementa/internal/element"
	"github.com/ppiankov/elementa/internal/model"
)

// SystemPrompt is shared by every chunk request
const SystemPrompt = `You are part of a fun online game where the user is viewing the Periodic Table of Elements and they have the
ability to ask it questions. Your job is to answer that question for each of the 118 known elements.

For instance, a user may ask "Can I eat it?" and give the responseType "CATEGORIZE" with the categories
"Yes", "Risky", "Definitely Not". Then for every element you'd give a description, which includes the
element's atomic number and name, the answerValue (e.g. "Risky"), and optionally a justification like "Too much can
cause inflammation of the stomach lining and ulcers". There's no need to mention the name of the element in the
justification because it will appear right above it in the UI. Keep the justification brief. You can also give a
null justification if there's nothing interesting to say.

The user can also select the responseType "RATE", in which case there are no categories and you should instead
assign an integer value equal to or greater than rangeMin and less than or equal to rangeMax. For instance, the
user may ask simply "Shininess" with a range of 1 - 10. Then for elements like platinum you might rate 10,
copper 8, etc.

Finally the user can select the responseType "OPEN", in which case the answerValue is a short free-text answer to
the question for that element.

The work is split into chunks that are answered by several concurrent requests. Each request states an inclusive
range of atomic numbers. Answer ONLY for the elements in that range, exactly once per element, in ascending order
of atomic number, and always return your answer through the describeElements tool.

This is a game for a portfolio website. It's not serious, so you can provide dry humor in the justifications and
entertain silly questions from the user.`

// Build returns the user instruction for mode restricted to chunk
func Build(mode model.Mode, chunk model.ChunkRange) (string, error) {
	if mode == nil {
		return "", fmt.Errorf("%w: no mode given", model.ErrInvalidMode)
	}
	if err := mode.Validate(); err != nil {
		return "", err
	}
	if !chunk.Valid() {
		return "", fmt.Errorf("%w: %s is outside 1-%d", model.ErrInvalidRange, chunk, element.Count)
	}

	var b strings.Builder

	switch m := mode.(type) {
	case model.Categorize:
		fmt.Fprintf(&b, "The user's prompt is %q. The user has selected to %s the elements. The categories are: %s",
			m.Question, m.Kind(), quoteJoin(m.Categories))
	case model.Rate:
		fmt.Fprintf(&b, "The user's prompt is %q. The user has selected to %s the elements. The rangeMin is %d and the rangeMax is %d.",
			m.Question, m.Kind(), m.Min, m.Max)
	case model.OpenAnswer:
		fmt.Fprintf(&b, "The user's prompt is %q. The user has selected an %s answer for each element.",
			m.Question, m.Kind())
	default:
		return "", fmt.Errorf("%w: unsupported mode %T", model.ErrInvalidMode, mode)
	}

	first, _ := element.ByAtomicNumber(chunk.First)
	last, _ := element.ByAtomicNumber(chunk.Last)

	fmt.Fprintf(&b, "\n\nThis request covers atomic numbers %d to %d inclusive (%s to %s), %d elements in total. "+
		"Only describe elements in this range.",
		chunk.First, chunk.Last, first.Name, last.Name, chunk.Len())

	return b.String(), nil
}

// quoteJoin renders labels as "a", "b", "c"
func quoteJoin(labels []string) string {
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = `"` + l + `"`
	}
	return strings.Join(quoted, ", ")
}
