package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quizdoc/internal/results"
)

// RenderAttemptHTML renders a standalone HTML report for attempt.
func RenderAttemptHTML(ctx context.Context, attempt results.Attempt) (string, error) {
	var builder strings.Builder
	if err := AttemptPage(attempt).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// WriteAttemptHTML renders attempt to path, creating parent directories.
func WriteAttemptHTML(ctx context.Context, path string, attempt results.Attempt) error {
	html, err := RenderAttemptHTML(ctx, attempt)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
