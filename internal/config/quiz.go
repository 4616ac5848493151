package config

import "quizdoc/internal/question"

// Default per-type settings applied when a config file omits them.
const (
	DefaultMCQTime         = 30
	DefaultMCQMarks        = 1
	DefaultSubjectiveTime  = 120
	DefaultSubjectiveMarks = 5
)

// Quiz holds per-type timing (seconds) and marks plus the derived total time.
//
// TotalTime is never edited directly; use WithTotalTime after changing the
// per-type times or the question set.
type Quiz struct {
	MCQTime         int
	MCQMarks        int
	SubjectiveTime  int
	SubjectiveMarks int
	TotalTime       int
}

// Default returns the built-in quiz settings with no questions counted.
func Default() Quiz {
	return Quiz{
		MCQTime:         DefaultMCQTime,
		MCQMarks:        DefaultMCQMarks,
		SubjectiveTime:  DefaultSubjectiveTime,
		SubjectiveMarks: DefaultSubjectiveMarks,
	}
}

// TimeFor returns the seconds allotted to a question of the given type.
func (cfg Quiz) TimeFor(kind question.Type) int {
	if kind == question.TypeMCQ {
		return cfg.MCQTime
	}
	return cfg.SubjectiveTime
}

// MarksFor returns the points awarded for a question of the given type.
func (cfg Quiz) MarksFor(kind question.Type) int {
	if kind == question.TypeMCQ {
		return cfg.MCQMarks
	}
	return cfg.SubjectiveMarks
}

// WithTotalTime returns cfg with TotalTime recomputed for questions.
func (cfg Quiz) WithTotalTime(questions []question.Question) Quiz {
	cfg.TotalTime = TotalTime(questions, cfg)
	return cfg
}

// TotalTime sums the per-type time of every question.
func TotalTime(questions []question.Question, cfg Quiz) int {
	total := 0
	for _, q := range questions {
		total += cfg.TimeFor(q.Type)
	}
	return total
}
