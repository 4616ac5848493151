package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override config file settings.
const (
	EnvMCQTime         = "QUIZDOC_MCQ_TIME"
	EnvMCQMarks        = "QUIZDOC_MCQ_MARKS"
	EnvSubjectiveTime  = "QUIZDOC_SUBJECTIVE_TIME"
	EnvSubjectiveMarks = "QUIZDOC_SUBJECTIVE_MARKS"
)

// LoadDotEnv loads variables from a .env file without overriding the
// process environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from lookup (os.LookupEnv in production).
func ApplyEnv(cfg Quiz, lookup func(string) (string, bool)) (Quiz, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	collector := &issueCollector{}
	overrides := []struct {
		name   string
		target *int
	}{
		{name: EnvMCQTime, target: &cfg.MCQTime},
		{name: EnvMCQMarks, target: &cfg.MCQMarks},
		{name: EnvSubjectiveTime, target: &cfg.SubjectiveTime},
		{name: EnvSubjectiveMarks, target: &cfg.SubjectiveMarks},
	}
	for _, override := range overrides {
		raw, ok := lookup(override.name)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			collector.add(override.name, fmt.Sprintf("invalid integer %q", raw))
			continue
		}
		*override.target = value
	}
	if err := collector.result(); err != nil {
		return Quiz{}, err
	}
	if err := Validate(cfg); err != nil {
		return Quiz{}, err
	}
	return cfg, nil
}
