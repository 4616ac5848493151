package config

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// issueCollector accumulates validation issues.
type issueCollector struct {
	issues []Issue
}

// add records a new validation issue.
func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

// result returns a ValidationError when issues are present.
func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks that every per-type setting is non-negative.
func Validate(cfg Quiz) error {
	collector := &issueCollector{}
	checkNonNegative(collector, "mcq.time", cfg.MCQTime)
	checkNonNegative(collector, "mcq.marks", cfg.MCQMarks)
	checkNonNegative(collector, "subjective.time", cfg.SubjectiveTime)
	checkNonNegative(collector, "subjective.marks", cfg.SubjectiveMarks)
	return collector.result()
}

func checkNonNegative(collector *issueCollector, field string, value int) {
	if value < 0 {
		collector.add(field, "must be >= 0")
	}
}
