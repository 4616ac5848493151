package question

// Type identifies how a question is answered and scored.
type Type string

const (
	// TypeMCQ is a multiple-choice question scored against CorrectOption.
	TypeMCQ Type = "mcq"
	// TypeSubjective is a free-text question scored by self-grading.
	TypeSubjective Type = "subjective"
)

// Option is a single labelled choice of a multiple-choice question.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Text  string `json:"text" yaml:"text"`
}

// Question is a parsed quiz question.
//
// IDs come from the document and are neither unique nor sequential.
type Question struct {
	ID            int      `json:"id" yaml:"id"`
	Text          string   `json:"text" yaml:"text"`
	Type          Type     `json:"type" yaml:"type"`
	Options       []Option `json:"options" yaml:"options"`
	CorrectOption string   `json:"correct_option,omitempty" yaml:"correct_option,omitempty"`
	ModelAnswer   string   `json:"model_answer,omitempty" yaml:"model_answer,omitempty"`
}

// IsMCQ reports whether the question is multiple choice.
func (q Question) IsMCQ() bool {
	return q.Type == TypeMCQ
}

// HasOption reports whether label names one of the question's options.
func (q Question) HasOption(label string) bool {
	for _, option := range q.Options {
		if option.Label == label {
			return true
		}
	}
	return false
}
