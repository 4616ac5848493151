package question

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind identifies the category of a classified line.
type LineKind int

const (
	// LineContinuation extends the most recently opened field.
	LineContinuation LineKind = iota
	// LineQuestionStart opens a new question.
	LineQuestionStart
	// LineOptionStart adds an option to the open question.
	LineOptionStart
	// LineAnswer supplies a model answer or answer key.
	LineAnswer
)

// String returns a readable name for the line kind.
func (kind LineKind) String() string {
	switch kind {
	case LineQuestionStart:
		return "question"
	case LineOptionStart:
		return "option"
	case LineAnswer:
		return "answer"
	default:
		return "continuation"
	}
}

// Line is a classified document line with its extracted fields.
type Line struct {
	Kind LineKind
	// ID is set for LineQuestionStart.
	ID int
	// Label is the lower-cased option letter for LineOptionStart.
	Label string
	// ForcedCorrect marks an option written with a leading '*'.
	ForcedCorrect bool
	// Text holds the captured text; for LineAnswer it is the raw answer value.
	Text string
}

var (
	answerPattern   = regexp.MustCompile(`(?i)^Answer:\s*(.+)$`)
	questionPattern = regexp.MustCompile(`^(\d+)[.)]\s+(.+)$`)
	optionPattern   = regexp.MustCompile(`^([a-zA-Z])[.)]\s+(.+)$`)
)

// Classify maps one trimmed, non-empty line to its category.
//
// Patterns are tried in a fixed order: answer, question, option, continuation.
func Classify(line string) Line {
	if match := answerPattern.FindStringSubmatch(line); match != nil {
		return Line{Kind: LineAnswer, Text: match[1]}
	}
	if match := questionPattern.FindStringSubmatch(line); match != nil {
		if id, err := strconv.Atoi(match[1]); err == nil {
			return Line{Kind: LineQuestionStart, ID: id, Text: match[2]}
		}
	}
	if option, ok := classifyOption(line); ok {
		return option
	}
	return Line{Kind: LineContinuation, Text: line}
}

// classifyOption matches option lines, including the "*b) text" marker form.
func classifyOption(line string) (Line, bool) {
	forced := false
	candidate := line
	if strings.HasPrefix(candidate, "*") {
		forced = true
		candidate = strings.TrimSpace(candidate[1:])
	}
	match := optionPattern.FindStringSubmatch(candidate)
	if match == nil {
		return Line{}, false
	}
	text := match[2]
	if strings.HasPrefix(text, "*") {
		forced = true
		text = strings.TrimSpace(text[1:])
	}
	return Line{
		Kind:          LineOptionStart,
		Label:         strings.ToLower(match[1]),
		ForcedCorrect: forced,
		Text:          text,
	}, true
}
