package session

import "quizdoc/internal/config"

// EventKind identifies the type of session event.
type EventKind int

const (
	// EventUploaded delivers extracted document text or an extraction error.
	EventUploaded EventKind = iota
	// EventConfigChanged replaces the per-type time and marks.
	EventConfigChanged
	// EventStarted begins the timed quiz.
	EventStarted
	// EventAnswered captures an answer for the current question.
	EventAnswered
	// EventNavigated moves to the previous or next question.
	EventNavigated
	// EventTick is one elapsed second.
	EventTick
	// EventSubmitted finishes the quiz from the last question.
	EventSubmitted
	// EventGraded records a self-grading verdict.
	EventGraded
	// EventReset discards the session and returns to upload.
	EventReset
)

// String returns the event tag.
func (kind EventKind) String() string {
	switch kind {
	case EventUploaded:
		return "uploaded"
	case EventConfigChanged:
		return "configChanged"
	case EventStarted:
		return "started"
	case EventAnswered:
		return "answered"
	case EventNavigated:
		return "navigated"
	case EventTick:
		return "tick"
	case EventSubmitted:
		return "submitted"
	case EventGraded:
		return "graded"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event carries a session transition request.
type Event struct {
	Kind EventKind
	// Text is the extracted document for EventUploaded.
	Text string
	// Source names the uploaded document in errors.
	Source string
	// Err is the extraction failure for EventUploaded.
	Err error
	// Config is the requested configuration for EventConfigChanged.
	Config config.Quiz
	// Value is the option label or free text for EventAnswered.
	Value string
	// Delta is -1 or +1 for EventNavigated.
	Delta int
	// QuestionID and Correct describe EventGraded.
	QuestionID int
	Correct    bool
}

// Uploaded builds an upload event from extraction output.
func Uploaded(source, text string, err error) Event {
	return Event{Kind: EventUploaded, Source: source, Text: text, Err: err}
}

// ConfigChanged builds a configuration edit event.
func ConfigChanged(cfg config.Quiz) Event {
	return Event{Kind: EventConfigChanged, Config: cfg}
}

// Started builds the start event.
func Started() Event { return Event{Kind: EventStarted} }

// Answered builds an answer capture event.
func Answered(value string) Event { return Event{Kind: EventAnswered, Value: value} }

// Next builds a forward navigation event.
func Next() Event { return Event{Kind: EventNavigated, Delta: 1} }

// Previous builds a backward navigation event.
func Previous() Event { return Event{Kind: EventNavigated, Delta: -1} }

// Tick builds a one-second timer event.
func Tick() Event { return Event{Kind: EventTick} }

// Submitted builds the submit event.
func Submitted() Event { return Event{Kind: EventSubmitted} }

// Graded builds a self-grading event.
func Graded(questionID int, correct bool) Event {
	return Event{Kind: EventGraded, QuestionID: questionID, Correct: correct}
}

// Reset builds the reset event.
func Reset() Event { return Event{Kind: EventReset} }
