package question

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ErrEmptyParseResult indicates that a document yielded no questions.
var ErrEmptyParseResult = errors.New("no questions found in document")

// shortAnswerLimit is the length under which an answer line is read as an option key.
const shortAnswerLimit = 5

// Field names the part of the open question that continuation lines extend.
type Field int

const (
	// FieldNone means no question is open.
	FieldNone Field = iota
	// FieldQuestion extends the question text.
	FieldQuestion
	// FieldOption extends the last option text.
	FieldOption
	// FieldAnswer extends the model answer.
	FieldAnswer
)

// ParserState is the accumulator threaded through Step.
type ParserState struct {
	Field   Field
	Current *Question
}

// Step applies one classified line and returns the next state along with
// the question finalized by this line, if any. The input state is never
// modified.
func Step(state ParserState, line Line) (ParserState, *Question) {
	switch line.Kind {
	case LineQuestionStart:
		finished := finalize(state.Current)
		return ParserState{
			Field: FieldQuestion,
			Current: &Question{
				ID:      line.ID,
				Text:    line.Text,
				Type:    TypeMCQ,
				Options: []Option{},
			},
		}, finished
	case LineAnswer:
		if state.Current == nil {
			return state, nil
		}
		next := cloneQuestion(*state.Current)
		next.ModelAnswer = line.Text
		if key, ok := shortAnswerKey(line.Text); ok {
			next.CorrectOption = key
		}
		return ParserState{Field: FieldAnswer, Current: &next}, nil
	case LineOptionStart:
		if state.Current == nil {
			return state, nil
		}
		next := cloneQuestion(*state.Current)
		next.Options = append(next.Options, Option{Label: line.Label, Text: line.Text})
		if line.ForcedCorrect {
			next.CorrectOption = line.Label
		}
		return ParserState{Field: FieldOption, Current: &next}, nil
	default:
		if state.Current == nil || state.Field == FieldNone {
			return state, nil
		}
		next := cloneQuestion(*state.Current)
		switch state.Field {
		case FieldQuestion:
			next.Text = joinText(next.Text, line.Text)
		case FieldOption:
			if len(next.Options) > 0 {
				last := len(next.Options) - 1
				next.Options[last].Text = joinText(next.Options[last].Text, line.Text)
			}
		case FieldAnswer:
			next.ModelAnswer = joinText(next.ModelAnswer, line.Text)
		}
		return ParserState{Field: state.Field, Current: &next}, nil
	}
}

// Finish finalizes the open question at end of input.
func Finish(state ParserState) *Question {
	return finalize(state.Current)
}

// Parse segments raw document text into questions in encounter order.
func Parse(raw string) ([]Question, error) {
	return ParseReader(strings.NewReader(raw))
}

// ParseReader parses questions from a reader of newline-delimited text.
func ParseReader(r io.Reader) ([]Question, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	scanner.Split(scanLines)

	var (
		state     ParserState
		questions []Question
	)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var finished *Question
		state, finished = Step(state, Classify(line))
		if finished != nil {
			questions = append(questions, *finished)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if finished := Finish(state); finished != nil {
		questions = append(questions, *finished)
	}
	if len(questions) == 0 {
		return nil, ErrEmptyParseResult
	}
	return questions, nil
}

// finalize decides the question type; options make it mcq.
func finalize(current *Question) *Question {
	if current == nil {
		return nil
	}
	done := cloneQuestion(*current)
	if len(done.Options) == 0 {
		done.Type = TypeSubjective
	} else {
		done.Type = TypeMCQ
	}
	return &done
}

// shortAnswerKey reads short answer values such as "b" or "B." as option keys.
func shortAnswerKey(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || utf8.RuneCountInString(trimmed) >= shortAnswerLimit {
		return "", false
	}
	first := strings.ToLower(trimmed[:1])
	if first[0] < 'a' || first[0] > 'z' {
		return "", false
	}
	return first, true
}

func joinText(existing, addition string) string {
	if existing == "" {
		return addition
	}
	return existing + " " + addition
}

func cloneQuestion(q Question) Question {
	options := make([]Option, len(q.Options))
	copy(options, q.Options)
	q.Options = options
	return q
}

// scanLines splits on \n, \r\n and lone \r.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i, b := range data {
		switch b {
		case '\n':
			return i + 1, data[:i], nil
		case '\r':
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if atEOF {
				return i + 1, data[:i], nil
			}
			return 0, nil, nil
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
