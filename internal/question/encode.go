package question

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the serialized form of a parsed question set.
type Document struct {
	Version   int        `json:"version" yaml:"version"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Summary counts questions by type.
type Summary struct {
	Total        int
	MCQ          int
	Subjective   int
	MissingKeys  int
	DuplicateIDs int
}

// Summarize counts question types, unkeyed mcqs and repeated ids.
func Summarize(questions []Question) Summary {
	summary := Summary{Total: len(questions)}
	seen := map[int]struct{}{}
	for _, q := range questions {
		if _, exists := seen[q.ID]; exists {
			summary.DuplicateIDs++
		}
		seen[q.ID] = struct{}{}
		if q.IsMCQ() {
			summary.MCQ++
			if q.CorrectOption == "" {
				summary.MissingKeys++
			}
			continue
		}
		summary.Subjective++
	}
	return summary
}

// Encode writes questions in the requested format ("yaml" or "json").
func Encode(w io.Writer, questions []Question, format string) error {
	doc := Document{Version: 1, Questions: questions}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "yaml", "yml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return encoder.Close()
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected yaml|json)", format)
	}
}
