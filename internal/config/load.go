package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the YAML schema of a quiz config file.
type File struct {
	Version    int          `yaml:"version"`
	MCQ        TypeSettings `yaml:"mcq"`
	Subjective TypeSettings `yaml:"subjective"`
}

// TypeSettings holds the optional time and marks of one question type.
type TypeSettings struct {
	Time  *int `yaml:"time"`
	Marks *int `yaml:"marks"`
}

// Load reads, parses, normalizes, and validates a config file.
func Load(path string) (Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Quiz{}, fmt.Errorf("read config: %w", err)
	}
	file, err := ParseFile(data)
	if err != nil {
		return Quiz{}, err
	}
	return Normalize(file)
}

// ParseFile decodes a single YAML document, rejecting unknown fields.
func ParseFile(data []byte) (File, error) {
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if err == io.EOF {
			return File{}, fmt.Errorf("parse config: empty document")
		}
		return File{}, fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return File{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return File{}, fmt.Errorf("parse config: %w", err)
	}
	return file, nil
}

// Normalize fills defaults for omitted settings and validates the result.
func Normalize(file File) (Quiz, error) {
	collector := &issueCollector{}
	if file.Version == 0 {
		collector.add("version", "is required")
	} else if file.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", file.Version))
	}
	if err := collector.result(); err != nil {
		return Quiz{}, err
	}

	cfg := Default()
	applySetting(&cfg.MCQTime, file.MCQ.Time)
	applySetting(&cfg.MCQMarks, file.MCQ.Marks)
	applySetting(&cfg.SubjectiveTime, file.Subjective.Time)
	applySetting(&cfg.SubjectiveMarks, file.Subjective.Marks)
	if err := Validate(cfg); err != nil {
		return Quiz{}, err
	}
	return cfg, nil
}

func applySetting(target *int, value *int) {
	if value != nil {
		*target = *value
	}
}
