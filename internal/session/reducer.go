package session

import (
	"quizdoc/internal/config"
	"quizdoc/internal/question"
)

// Reduce applies a session event and returns the next state.
// Events that are not valid in the current phase leave the state unchanged.
func Reduce(state State, event Event) State {
	if event.Kind == EventReset {
		return reset(state)
	}
	switch state.Phase {
	case PhaseUpload:
		if event.Kind == EventUploaded {
			return applyUpload(state, event)
		}
	case PhaseConfigure:
		switch event.Kind {
		case EventConfigChanged:
			return applyConfig(state, event.Config)
		case EventStarted:
			return start(state)
		}
	case PhasePlaying:
		switch event.Kind {
		case EventAnswered:
			return applyAnswer(state, event.Value)
		case EventNavigated:
			return navigate(state, event.Delta)
		case EventTick:
			return tick(state)
		case EventSubmitted:
			if state.IsLast() {
				state.Phase = PhaseResult
			}
			return state
		}
	case PhaseResult:
		if event.Kind == EventGraded {
			return applyGrade(state, event.QuestionID, event.Correct)
		}
	}
	return state
}

// applyUpload parses the extracted text and enters Configure on success.
func applyUpload(state State, event Event) State {
	if event.Err != nil {
		state.Err = &ExtractionError{Source: event.Source, Err: event.Err}
		return state
	}
	questions, err := question.Parse(event.Text)
	if err != nil {
		state.Err = err
		return state
	}
	state.Questions = questions
	state.Config = state.Config.WithTotalTime(questions)
	state.Phase = PhaseConfigure
	state.CurrentIndex = 0
	state.Err = nil
	return state
}

// applyConfig validates cfg and re-derives the total time.
func applyConfig(state State, cfg config.Quiz) State {
	if err := config.Validate(cfg); err != nil {
		state.Err = err
		return state
	}
	state.Config = cfg.WithTotalTime(state.Questions)
	state.Err = nil
	return state
}

func start(state State) State {
	state.Config = state.Config.WithTotalTime(state.Questions)
	state.Phase = PhasePlaying
	state.TimeLeft = state.Config.TotalTime
	state.CurrentIndex = 0
	state.Answers = map[int]string{}
	state.SelfGrading = map[int]bool{}
	state.Err = nil
	return state
}

func applyAnswer(state State, value string) State {
	current, ok := state.Current()
	if !ok {
		return state
	}
	answers := make(map[int]string, len(state.Answers)+1)
	for id, answer := range state.Answers {
		answers[id] = answer
	}
	answers[current.ID] = value
	state.Answers = answers
	return state
}

// navigate moves by delta and clamps to the question range.
func navigate(state State, delta int) State {
	if len(state.Questions) == 0 {
		return state
	}
	next := state.CurrentIndex + delta
	if next < 0 {
		next = 0
	}
	if last := len(state.Questions) - 1; next > last {
		next = last
	}
	state.CurrentIndex = next
	return state
}

// tick consumes one second. The tick that reaches zero also ends the quiz.
func tick(state State) State {
	if state.TimeLeft <= 1 {
		state.TimeLeft = 0
		state.Phase = PhaseResult
		return state
	}
	state.TimeLeft--
	return state
}

func applyGrade(state State, id int, correct bool) State {
	if !hasSubjective(state.Questions, id) {
		return state
	}
	grading := make(map[int]bool, len(state.SelfGrading)+1)
	for key, value := range state.SelfGrading {
		grading[key] = value
	}
	grading[id] = correct
	state.SelfGrading = grading
	return state
}

func hasSubjective(questions []question.Question, id int) bool {
	for _, q := range questions {
		if q.ID == id && q.Type == question.TypeSubjective {
			return true
		}
	}
	return false
}

// reset returns to Upload and keeps only the per-type settings.
func reset(state State) State {
	return New(state.Config)
}
