package session

import (
	"quizdoc/internal/config"
	"quizdoc/internal/question"
)

// Phase is the top-level state of a quiz session.
type Phase int

const (
	// PhaseUpload waits for a document.
	PhaseUpload Phase = iota
	// PhaseConfigure lets the user adjust per-type time and marks.
	PhaseConfigure
	// PhasePlaying runs the countdown and captures answers.
	PhasePlaying
	// PhaseResult shows the score and accepts self-grading.
	PhaseResult
)

// String returns the lower-case phase name.
func (phase Phase) String() string {
	switch phase {
	case PhaseUpload:
		return "upload"
	case PhaseConfigure:
		return "configure"
	case PhasePlaying:
		return "playing"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// State is the complete session state. Reduce returns new states and never
// mutates the maps of the state it was given.
type State struct {
	Phase        Phase
	Questions    []question.Question
	Config       config.Quiz
	CurrentIndex int
	// Answers maps question id to the chosen option label or free text.
	Answers map[int]string
	// SelfGrading maps subjective question id to the user's verdict.
	SelfGrading map[int]bool
	TimeLeft    int
	// Err holds the last rejected upload or config change.
	Err error
}

// New returns an Upload-phase state using cfg's per-type settings.
func New(cfg config.Quiz) State {
	cfg.TotalTime = 0
	return State{Phase: PhaseUpload, Config: cfg}
}

// Current returns the question at CurrentIndex.
func (s State) Current() (question.Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return question.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// IsLast reports whether the current question is the last one.
func (s State) IsLast() bool {
	return len(s.Questions) > 0 && s.CurrentIndex == len(s.Questions)-1
}

// Answer returns the captured answer for the current question.
func (s State) Answer() (string, bool) {
	current, ok := s.Current()
	if !ok {
		return "", false
	}
	value, answered := s.Answers[current.ID]
	return value, answered
}

// AnsweredCount counts questions whose id has a captured answer.
func (s State) AnsweredCount() int {
	count := 0
	for _, q := range s.Questions {
		if _, ok := s.Answers[q.ID]; ok {
			count++
		}
	}
	return count
}
