package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quizdoc/internal/question"
)

func sampleQuestions() []question.Question {
	return []question.Question{
		{ID: 1, Type: question.TypeMCQ, Options: []question.Option{{Label: "a", Text: "x"}}},
		{ID: 2, Type: question.TypeSubjective},
		{ID: 3, Type: question.TypeMCQ, Options: []question.Option{{Label: "a", Text: "y"}}},
	}
}

// TestTotalTime verifies the per-type time sum.
func TestTotalTime(t *testing.T) {
	cfg := Quiz{MCQTime: 10, SubjectiveTime: 45}
	if got := TotalTime(sampleQuestions(), cfg); got != 65 {
		t.Fatalf("expected 65, got %d", got)
	}
	if got := TotalTime(nil, cfg); got != 0 {
		t.Fatalf("expected 0 for no questions, got %d", got)
	}
}

// TestWithTotalTimeTracksChanges verifies the derived field follows edits.
func TestWithTotalTimeTracksChanges(t *testing.T) {
	questions := sampleQuestions()
	cfg := Default().WithTotalTime(questions)
	if cfg.TotalTime != 2*DefaultMCQTime+DefaultSubjectiveTime {
		t.Fatalf("unexpected total %d", cfg.TotalTime)
	}
	cfg.MCQTime = 5
	cfg = cfg.WithTotalTime(questions)
	if cfg.TotalTime != 10+DefaultSubjectiveTime {
		t.Fatalf("expected total to follow mcq time, got %d", cfg.TotalTime)
	}
	cfg = cfg.WithTotalTime(questions[:1])
	if cfg.TotalTime != 5 {
		t.Fatalf("expected total to follow question set, got %d", cfg.TotalTime)
	}
}

// TestMarksFor verifies per-type marks lookup.
func TestMarksFor(t *testing.T) {
	cfg := Quiz{MCQMarks: 2, SubjectiveMarks: 7}
	if cfg.MarksFor(question.TypeMCQ) != 2 || cfg.MarksFor(question.TypeSubjective) != 7 {
		t.Fatalf("unexpected marks lookup")
	}
}

// TestValidateRejectsNegative verifies negative settings are reported.
func TestValidateRejectsNegative(t *testing.T) {
	err := Validate(Quiz{MCQTime: -1, SubjectiveMarks: -3})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(validationErr.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %+v", validationErr.Issues)
	}
	if !strings.Contains(err.Error(), "mcq.time") {
		t.Fatalf("expected field name in error, got %q", err.Error())
	}
	if err := Validate(Default()); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

// TestLoadAppliesDefaults verifies omitted settings keep their defaults.
func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	payload := `version: 1
mcq:
  time: 15
subjective:
  marks: 10
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	expected := Quiz{MCQTime: 15, MCQMarks: DefaultMCQMarks, SubjectiveTime: DefaultSubjectiveTime, SubjectiveMarks: 10}
	if cfg != expected {
		t.Fatalf("expected %+v, got %+v", expected, cfg)
	}
}

// TestLoadErrors verifies invalid files are rejected.
func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    string
	}{
		{name: "unknown field", payload: "version: 1\nmcq:\n  seconds: 3\n", want: "seconds"},
		{name: "missing version", payload: "mcq:\n  time: 3\n", want: "version"},
		{name: "bad version", payload: "version: 2\n", want: "unsupported version"},
		{name: "negative", payload: "version: 1\nsubjective:\n  time: -5\n", want: "subjective.time"},
		{name: "multiple documents", payload: "version: 1\n---\nversion: 1\n", want: "multiple"},
		{name: "empty", payload: "", want: "empty"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			if err := os.WriteFile(path, []byte(tc.payload), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error, got %q", tc.want, err.Error())
			}
		})
	}
}

// TestScaffoldRoundTrip verifies the scaffold loads back to the defaults.
func TestScaffoldRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	if err := Scaffold(path); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load scaffold: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if err := Scaffold(path); err == nil {
		t.Fatalf("expected error when config exists")
	}
}

// TestFindConfigPath verifies upward search and the not-found sentinel.
func TestFindConfigPath(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := FindConfigPath(nested); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	path := filepath.Join(root, FileName)
	if err := os.WriteFile(path, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	found, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != path {
		t.Fatalf("expected %s, got %s", path, found)
	}
}

// TestApplyEnv verifies environment overrides and their validation.
func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvMCQTime:        "12",
		EnvSubjectiveTime: " ",
	}
	lookup := func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
	cfg, err := ApplyEnv(Default(), lookup)
	if err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.MCQTime != 12 || cfg.SubjectiveTime != DefaultSubjectiveTime {
		t.Fatalf("unexpected config %+v", cfg)
	}

	env[EnvMCQMarks] = "many"
	if _, err := ApplyEnv(Default(), lookup); err == nil {
		t.Fatalf("expected invalid integer error")
	}
	env[EnvMCQMarks] = "-1"
	if _, err := ApplyEnv(Default(), lookup); err == nil {
		t.Fatalf("expected negative value error")
	}
}

// TestLoadDotEnv verifies .env files populate the environment.
func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(EnvSubjectiveMarks+"=9\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv(EnvSubjectiveMarks, "")
	os.Unsetenv(EnvSubjectiveMarks)
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load env: %v", err)
	}
	cfg, err := ApplyEnv(Default(), nil)
	if err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.SubjectiveMarks != 9 {
		t.Fatalf("expected 9 from .env, got %d", cfg.SubjectiveMarks)
	}
}

// TestScaffoldConfigRendersSettings verifies the compiled template writes
// every per-type setting under a comment.
func TestScaffoldConfigRendersSettings(t *testing.T) {
	rendered, err := renderScaffoldConfig(Quiz{MCQTime: 45, MCQMarks: 3, SubjectiveTime: 240, SubjectiveMarks: 7})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, token := range []string{
		"version: 1\n",
		"# Seconds allotted and points awarded per multiple-choice question.\nmcq:\n  time: 45\n  marks: 3\n",
		"subjective:\n  time: 240\n  marks: 7\n",
	} {
		if !strings.Contains(rendered, token) {
			t.Fatalf("expected %q in scaffold:\n%s", token, rendered)
		}
	}
	file, err := ParseFile([]byte(rendered))
	if err != nil {
		t.Fatalf("parse rendered scaffold: %v", err)
	}
	cfg, err := Normalize(file)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.SubjectiveTime != 240 || cfg.MCQMarks != 3 {
		t.Fatalf("unexpected round trip %+v", cfg)
	}
}
