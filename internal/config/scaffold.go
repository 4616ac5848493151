package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// renderScaffoldConfig builds the scaffold YAML via the compiled template.
func renderScaffoldConfig(cfg Quiz) (string, error) {
	var builder strings.Builder
	if err := ScaffoldConfig(cfg).Render(context.Background(), &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// Scaffold writes a default config file, refusing to overwrite one.
func Scaffold(path string) error {
	return ScaffoldWith(path, Default())
}

// ScaffoldWith writes cfg as a new config file, refusing to overwrite one.
func ScaffoldWith(path string, cfg Quiz) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", path)
		}
		return fmt.Errorf("config file already exists at %q", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	rendered, err := renderScaffoldConfig(cfg)
	if err != nil {
		return fmt.Errorf("render config: %w", err)
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
