package question

import (
	"fmt"
	"strings"
)

// Issue captures a suspicious construct in a parsed question set.
type Issue struct {
	Field   string
	Message string
}

// String renders the issue as "field: message".
func (issue Issue) String() string {
	return fmt.Sprintf("%s: %s", issue.Field, issue.Message)
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

// Lint reports questions that parse but are likely to score oddly.
// Parsing is best effort, so these are warnings rather than errors.
func Lint(questions []Question) []Issue {
	collector := &issueCollector{}
	seenIDs := map[int]int{}
	for i, q := range questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		if first, exists := seenIDs[q.ID]; exists {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %d (first at questions[%d]); answers will collide", q.ID, first))
		} else {
			seenIDs[q.ID] = i
		}
		if strings.TrimSpace(q.Text) == "" {
			collector.add(prefix+".text", "is empty")
		}
		switch q.Type {
		case TypeMCQ:
			if q.CorrectOption == "" {
				collector.add(prefix+".correct_option", "no answer key; question can never score")
			} else if !q.HasOption(q.CorrectOption) {
				collector.add(prefix+".correct_option", fmt.Sprintf("unknown option %q", q.CorrectOption))
			}
			labels := map[string]struct{}{}
			for optionIndex, option := range q.Options {
				if _, exists := labels[option.Label]; exists {
					collector.add(fmt.Sprintf("%s.options[%d]", prefix, optionIndex), fmt.Sprintf("duplicate label %q", option.Label))
				}
				labels[option.Label] = struct{}{}
			}
		case TypeSubjective:
			if q.ModelAnswer == "" {
				collector.add(prefix+".model_answer", "missing; self-grading has no reference")
			}
		}
	}
	return collector.issues
}
