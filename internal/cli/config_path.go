package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quizdoc/internal/config"
)

// resolveConfigPath normalizes a config path or finds it from CWD.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// envLookup is a test seam for environment overrides.
var envLookup = os.LookupEnv

// loadQuizConfig resolves the effective quiz settings: the config file (or
// the defaults when none is found and none was requested), then .env, then
// the process environment. It returns the file used, or "" for defaults.
func loadQuizConfig(configPath string) (config.Quiz, string, error) {
	cfg := config.Default()
	resolved, err := resolveConfigPath(configPath)
	switch {
	case err == nil:
		loaded, err := config.Load(resolved)
		if err != nil {
			return config.Quiz{}, "", err
		}
		cfg = loaded
	case strings.TrimSpace(configPath) == "" && errors.Is(err, config.ErrNotFound):
		resolved = ""
	default:
		return config.Quiz{}, "", err
	}
	if err := config.LoadDotEnv(".env"); err != nil {
		return config.Quiz{}, "", err
	}
	cfg, err = config.ApplyEnv(cfg, envLookup)
	if err != nil {
		return config.Quiz{}, "", err
	}
	return cfg, resolved, nil
}
