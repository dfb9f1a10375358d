package model

// AnswerRecord is the model's answer for one element
type AnswerRecord struct {
	AtomicNumber  int     `json:"atomicNumber"`
	Element       string  `json:"element"`
	AnswerValue   string  `json:"answerValue"`
	Justification *string `json:"justification"`
}

// ElementDescriptions is the structured payload returned for one chunk
type ElementDescriptions struct {
	ElementDescriptions []AnswerRecord `json:"elementDescriptions"`
}

// ResultSet holds the merged answers for one query, ordered by atomic number
type ResultSet struct {
	Mode     ModeKind       `json:"mode"`
	Question string         `json:"question"`
	Model    string         `json:"model,omitempty"`
	Answers  []AnswerRecord `json:"answers"`
}

// Len returns the number of answers
func (r ResultSet) Len() int {
	return len(r.Answers)
}

// Get returns the answer for atomic number n
func (r ResultSet) Get(n int) (AnswerRecord, bool) {
	// Answers are sorted, so the fast path is a direct index.
	if n >= 1 && n <= len(r.Answers) && r.Answers[n-1].AtomicNumber == n {
		return r.Answers[n-1], true
	}
	for _, a := range r.Answers {
		if a.AtomicNumber == n {
			return a, true
		}
	}
	return AnswerRecord{}, false
}

// Clone returns a deep copy so callers cannot mutate shared state
func (r ResultSet) Clone() ResultSet {
	out := r
	out.Answers = make([]AnswerRecord, len(r.Answers))
	for i, a := range r.Answers {
		if a.Justification != nil {
			j := *a.Justification
			a.Justification = &j
		}
		out.Answers[i] = a
	}
	return out
}

// JustificationText returns the justification or an empty string
func (a AnswerRecord) JustificationText() string {
	if a.Justification == nil {
		return ""
	}
	return *a.Justification
}
